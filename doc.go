// Package imguisys builds the cimgui static library that the imgui bindings
// link against.
//
// It is the Go equivalent of a Cargo build script for an imgui -sys crate:
// it vendors Dear ImGui (through cimgui) into the build-scratch directory,
// compiles it as a single translation unit and reports where the headers and
// the library live, so that dependent build scripts (implot bindings, for
// example) compile against exactly the same sources and defines.
//
// # Basic Usage
//
//	config, err := imguisys.LoadConfig(os.LookupEnv)
//	if err != nil {
//	    return err
//	}
//
//	result, err := imguisys.NewOrchestrator().Build(ctx, config)
//	if err != nil {
//	    return err
//	}
//	result.Metadata.WriteTo(os.Stdout)
//
// # Pipeline
//
//	Orchestrator.Build
//	├── Plan             source tree, define set, include/ and lib/
//	├── Vendor           marker check, recursive copy to <OUT_DIR>/include
//	├── Compile          toolchain detection, pkg-config, compile + archive
//	└── Find + Metadata  THIRD_PARTY, DEFINE_*, link directives
//
// Native compilation is skipped for WebAssembly targets; the sources are
// still vendored and the metadata still emitted.
//
// # Feature Flags
//
//   - CARGO_FEATURE_DOCKING selects third-party/imgui-docking instead of imgui-master
//   - CARGO_FEATURE_WASM skips native compilation
//   - CARGO_FEATURE_FREETYPE compiles the FreeType rasterizer, found with pkg-config
//
// # Platform Support
//
// GCC, Clang and MSVC (cl, clang-cl) toolchains are recognised by name or by
// their --version banner. Other compilers get generic -c/-I/-D/-o flags.
package imguisys
