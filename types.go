package imguisys

import "context"

// BuildResult contains the output and status of a build operation.
//
// After a build completes, this structure provides:
//   - Success status indicating if the build completed without errors
//   - Output lines captured from the compiler and archiver (stdout/stderr)
//   - Artifacts list of produced static libraries
//   - Metadata to hand to downstream build scripts
//   - Error information if the build failed
//
// Metadata is only populated when Success is true. A failed build never
// propagates a partial set of keys.
type BuildResult struct {
	Success        bool      // True if build completed successfully
	Output         []string  // Lines of output from the build process
	Artifacts      []string  // Absolute paths to built static libraries
	Metadata       *Metadata // Key/value facts for dependent build scripts
	Error          error     // Error if build failed, nil otherwise
	MissingSources []string  // Vendored marker files that were not found
}

// BuildConfig contains configuration for the build process.
//
// This structure controls all aspects of the native library build:
//
// Source paths define where files are located:
//   - ManifestDir: Root of the package holding third-party/ and the umbrella files
//   - OutDir: Build-scratch root receiving include/ and lib/
//
// Feature flags select the variant, see Features.
//
// Toolchain configuration:
//   - Compiler: C++ compiler command, may carry a wrapper ("ccache g++")
//   - Archiver: static library archiver, empty picks the toolchain default
//   - ExtraFlags: additional compiler flags (CXXFLAGS)
//   - CxxStdlib: C++ runtime to link, honoured only when CxxStdlibSet is true
//   - Target: target triple ("x86_64-unknown-linux-gnu")
//   - OptLevel: optimisation level ("0".."3", "s", "z")
//   - Debug: emit debug information
//   - PkgConfig: pkg-config binary used for native library discovery
//
// Build behavior:
//   - Env: Environment variables set for every subprocess
//   - Verbose: Record the commands that were run in the result output
type BuildConfig struct {
	// Source paths
	ManifestDir string // Root of the package with the vendored trees
	OutDir      string // Build-scratch root for include/ and lib/

	// Feature flags, resolved once per invocation
	Features Features

	// Toolchain
	Compiler     string   // C++ compiler command (CXX)
	Archiver     string   // Archiver command (AR)
	ExtraFlags   []string // Extra compiler flags (CXXFLAGS)
	CxxStdlib    string   // C++ runtime library to link (CXXSTDLIB)
	CxxStdlibSet bool     // True when CXXSTDLIB was given, even if empty
	Target       string   // Target triple
	OptLevel     string   // Optimisation level
	Debug        bool     // Emit debug info
	PkgConfig    string   // pkg-config binary

	// Subprocess environment
	Env map[string]string

	// Build options
	Verbose bool // Enable verbose output
}

// BuildPlan is the set of decisions derived from a BuildConfig before any
// step runs. It is created once and handed to every step so that compilation
// and metadata emission observe the same define set.
type BuildPlan struct {
	Layout     SourceLayout // Selected vendored tree
	Defines    DefineSet    // Defines shared by compilation and metadata
	IncludeDir string       // Absolute <OutDir>/include
	LibDir     string       // Absolute <OutDir>/lib

	// Filled in by the compile step.
	Compiled  bool
	Toolchain Toolchain
	FreeType  *PkgConfigLibrary
}

// CommonBuildSteps defines the standard 3-step build pattern of the orchestrator.
//
//  1. Vendor: Copy the selected source tree into the output root
//  2. Compile: Build the umbrella source into a static library
//  3. Find: Locate the produced artifacts
//
// Example usage:
//
//	return runCommonBuild(ctx, config, plan, CommonBuildSteps{
//	    VendorFunc:  o.vendorSources,
//	    CompileFunc: o.compileNative,
//	    FindFunc:    o.findArtifacts,
//	})
type CommonBuildSteps struct {
	// VendorFunc copies the vendored tree into place
	VendorFunc func(ctx context.Context, config *BuildConfig, plan *BuildPlan, result *BuildResult) error

	// CompileFunc compiles the library (may be a no-op, e.g. for wasm)
	CompileFunc func(ctx context.Context, config *BuildConfig, plan *BuildPlan, result *BuildResult) error

	// FindFunc locates the compiled artifacts after the compile step
	FindFunc func(plan *BuildPlan) ([]string, error)
}
