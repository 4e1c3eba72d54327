package imguisys

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/sh"
)

// LibraryName is the static library handed to the compile job.
const LibraryName = "libcimgui.a"

// FreeTypeDefine enables imgui's FreeType rasterizer.
const FreeTypeDefine = "IMGUI_ENABLE_FREETYPE"

// Orchestrator vendors, compiles and describes the imgui native library.
//
// A zero Orchestrator is not usable; create one with NewOrchestrator.
type Orchestrator struct {
	toolchains *ToolchainFactory
}

// NewOrchestrator creates an orchestrator with the standard toolchains.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{toolchains: NewToolchainFactory()}
}

// NewOrchestratorWithToolchains creates an orchestrator resolving compilers
// through factory.
func NewOrchestratorWithToolchains(factory *ToolchainFactory) *Orchestrator {
	return &Orchestrator{toolchains: factory}
}

// Plan derives the per-invocation decisions from config: the source tree,
// the define set and the output directories.
//
// The FreeType define is part of the set only when native compilation runs,
// since wasm builds never configure the rasterizer.
func (o *Orchestrator) Plan(config *BuildConfig) (*BuildPlan, error) {
	if config.OutDir == "" {
		return nil, &ConfigError{Variable: EnvOutDir}
	}
	if config.ManifestDir == "" {
		return nil, &ConfigError{Variable: EnvManifestDir}
	}

	outDir, err := filepath.Abs(config.OutDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}

	defines := BaseDefines()
	if config.Features.FreeType && !config.Features.Wasm {
		defines = defines.With(FreeTypeDefine, nil)
	}

	return &BuildPlan{
		Layout:     SelectSourceLayout(config.Features),
		Defines:    defines,
		IncludeDir: filepath.Join(outDir, "include"),
		LibDir:     filepath.Join(outDir, "lib"),
	}, nil
}

// Build runs the whole pipeline for config.
//
// # Process Flow
//
//  1. Plan the build (source tree, define set, directories)
//  2. Check the vendored marker files (native builds only)
//  3. Copy the tree to <OutDir>/include
//  4. Check tools, discover FreeType, compile and archive (native builds only)
//  5. Locate the library and assemble the metadata
//
// # Returns
//
// Returns:
//   - BuildResult with Success=true, Artifacts and Metadata on success
//   - BuildResult with Success=false and Error on failure; Metadata is nil
//
// A missing submodule is reported as a *MissingSourcesError before any
// subprocess is spawned.
func (o *Orchestrator) Build(ctx context.Context, config *BuildConfig) (*BuildResult, error) {
	plan, err := o.Plan(config)
	if err != nil {
		return &BuildResult{Output: []string{}, Error: err}, err
	}

	result, err := runCommonBuild(ctx, config, plan, CommonBuildSteps{
		VendorFunc:  o.vendorSources,
		CompileFunc: o.compileNative,
		FindFunc:    o.findArtifacts,
	})
	if err != nil {
		return result, err
	}

	result.Metadata = o.metadata(config, plan)
	return result, nil
}

// Clean removes the include and lib directories from the output root.
func (o *Orchestrator) Clean(ctx context.Context, config *BuildConfig) error {
	plan, err := o.Plan(config)
	if err != nil {
		return err
	}

	for _, dir := range []string{plan.IncludeDir, plan.LibDir} {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sh.Rm(dir); err != nil {
			return fmt.Errorf("clean %s: %w", dir, err)
		}
	}

	return nil
}

// vendorSources checks the markers for native builds and copies the tree
func (o *Orchestrator) vendorSources(_ context.Context, config *BuildConfig, plan *BuildPlan, result *BuildResult) error {
	if !config.Features.Wasm {
		if err := CheckVendoredSources(config.ManifestDir, plan.Layout); err != nil {
			var missing *MissingSourcesError
			if errors.As(err, &missing) {
				result.MissingSources = missing.Missing
			}
			return err
		}
	}

	src := filepath.Join(config.ManifestDir, plan.Layout.TreeDir)
	if err := CopyTree(src, plan.IncludeDir); err != nil {
		return err
	}

	if config.Verbose {
		result.Output = append(result.Output,
			fmt.Sprintf("Vendored %s sources: %s -> %s", plan.Layout.Variant, src, plan.IncludeDir))
	}

	return nil
}

// compileNative builds the umbrella file into the static library
func (o *Orchestrator) compileNative(ctx context.Context, config *BuildConfig, plan *BuildPlan, result *BuildResult) error {
	// lib/ never outlives the build that produced it
	if err := sh.Rm(plan.LibDir); err != nil {
		return fmt.Errorf("reset %s: %w", plan.LibDir, err)
	}

	if config.Features.Wasm {
		if config.Verbose {
			result.Output = append(result.Output, "WebAssembly target, skipping native compilation")
		}
		return nil
	}

	toolchain, err := o.toolchains.ToolchainFor(config.compilerCommand(), config.Env)
	if err != nil {
		return err
	}
	plan.Toolchain = toolchain

	if err := CheckRequiredTools(RequiredTools(config, toolchain)); err != nil {
		return fmt.Errorf("native toolchain unavailable: %w", err)
	}

	job := NewCompileJob(toolchain, config).
		OutDir(plan.LibDir).
		Defines(plan.Defines)

	if config.Features.FreeType {
		freetype, err := FindPkgConfigLibrary(config, FreeTypePackage)
		if err != nil {
			return err
		}
		plan.FreeType = freetype

		job.Include(freetype.IncludePaths...)
		// imgui_freetype.cpp includes "imgui.h"
		job.Include(filepath.Join(plan.IncludeDir, "imgui"))
	}

	// GCC and Clang only
	family := toolchain.Family()
	if family.IsLikeGNU() || family.IsLikeClang() {
		job.Flag("-fno-exceptions", "-fno-rtti")
	}

	if config.Verbose {
		result.Output = append(result.Output,
			fmt.Sprintf("Using %s toolchain for %s", toolchain.Name(), plan.Layout.Umbrella))
	}

	_, err = job.Warnings(false).
		File(filepath.Join(config.ManifestDir, plan.Layout.Umbrella)).
		Compile(ctx, result, LibraryName)
	if err != nil {
		return err
	}

	plan.Compiled = true
	return nil
}

// findArtifacts locates static libraries in the lib directory
func (o *Orchestrator) findArtifacts(plan *BuildPlan) ([]string, error) {
	if !plan.Compiled {
		return nil, nil
	}

	entries, err := os.ReadDir(plan.LibDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", plan.LibDir, err)
	}

	var artifacts []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && MatchesExtension(entry.Name(), ".a", ".lib") {
			artifacts = append(artifacts, filepath.Join(plan.LibDir, entry.Name()))
		}
	}

	if len(artifacts) == 0 {
		return nil, fmt.Errorf("no static library found in %s", plan.LibDir)
	}

	return artifacts, nil
}

// metadata assembles the facts dependents read, in a fixed order: the
// include tree, the defines, then link directives when a library was built.
func (o *Orchestrator) metadata(config *BuildConfig, plan *BuildPlan) *Metadata {
	md := NewMetadata()
	md.Add(KeyThirdParty, plan.IncludeDir)
	md.AddDefines(plan.Defines)

	if !plan.Compiled {
		return md
	}

	md.Add(KeyLinkSearch, "native="+plan.LibDir)
	md.Add(KeyLinkLib, "static=cimgui")

	if plan.FreeType != nil {
		for _, dir := range plan.FreeType.LinkPaths {
			md.Add(KeyLinkSearch, "native="+dir)
		}
		for _, lib := range plan.FreeType.Libs {
			md.Add(KeyLinkLib, lib)
		}
	}

	if stdlib := config.cxxStdlib(); stdlib != "" {
		md.Add(KeyLinkLib, stdlib)
	}

	return md
}
