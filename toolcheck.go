package imguisys

import (
	"fmt"
	"os/exec"
	"strings"
)

// execLookPath resolves binaries on PATH. Tests replace it.
var execLookPath = exec.LookPath

// ToolRequirement describes a build tool dependency.
//
// This structure allows the orchestrator to declare:
//   - Required tools (must be available)
//   - Alternative tools (any one of several tools can satisfy the requirement)
//
// # Examples
//
// Required tool:
//
//	ToolRequirement{
//	    Name: "pkg-config",
//	    Purpose: "FreeType discovery",
//	}
//
// Tool with alternatives:
//
//	ToolRequirement{
//	    Name: "ar",
//	    Alternatives: []string{"llvm-ar", "gcc-ar"},
//	    Purpose: "Static library archiver",
//	}
type ToolRequirement struct {
	// Name is the primary tool binary name (e.g., "c++", "ar").
	Name string

	// Alternatives are alternative tool names that can satisfy this requirement.
	// If any tool in Alternatives is found, the requirement is satisfied.
	Alternatives []string

	// Purpose is a human-readable description of why this tool is needed.
	Purpose string
}

// archiverAlternatives lists drop-in replacements for a default archiver,
// tried in order when it is not on PATH.
var archiverAlternatives = map[string][]string{
	arProgram: {"llvm-ar", "gcc-ar"},
}

// RequiredTools returns the tools a native build of config needs.
//
// Nothing is required for wasm builds. Otherwise the compiler and the
// archiver are required (and the real driver when a wrapper such as ccache
// is configured), plus pkg-config when FreeType is enabled. Without AR, any
// of the toolchain's archiver alternatives will do.
func RequiredTools(config *BuildConfig, toolchain Toolchain) []ToolRequirement {
	if config.Features.Wasm {
		return nil
	}

	compiler := config.compilerCommand()
	tools := []ToolRequirement{{Name: compiler[0], Purpose: "C++ compiler"}}

	if fields := strings.Fields(config.Archiver); len(fields) > 0 {
		tools = append(tools, ToolRequirement{Name: fields[0], Purpose: "Static library archiver"})
	} else {
		archiver := toolchain.DefaultArchiver()
		tools = append(tools, ToolRequirement{
			Name:         archiver,
			Alternatives: archiverAlternatives[archiver],
			Purpose:      "Static library archiver",
		})
	}

	if driver := compilerDriver(compiler); driver != compiler[0] {
		tools = append(tools, ToolRequirement{Name: driver, Purpose: "C++ compiler behind " + compiler[0]})
	}

	if config.Features.FreeType {
		tools = append(tools, ToolRequirement{Name: config.pkgConfigCommand(), Purpose: "FreeType discovery"})
	}

	return tools
}

// resolveTool returns name when it is on PATH, else the first alternative
// that is, else name unchanged.
func resolveTool(name string, alternatives []string) string {
	if CheckToolAvailable(name) == nil {
		return name
	}
	for _, alt := range alternatives {
		if CheckToolAvailable(alt) == nil {
			return alt
		}
	}
	return name
}

// CheckToolAvailable checks if a tool is available in the system PATH.
//
// This is a simple wrapper around exec.LookPath that provides
// consistent error messages.
//
// # Example
//
//	if err := CheckToolAvailable("pkg-config"); err != nil {
//	    return fmt.Errorf("pkg-config is required: %w", err)
//	}
func CheckToolAvailable(tool string) error {
	_, err := execLookPath(tool)
	if err != nil {
		return fmt.Errorf("%s not found in PATH", tool)
	}
	return nil
}

// CheckRequiredTools verifies all required tools are available.
//
// # Behavior
//
//   - Checks the primary tool name first
//   - If not found, tries each alternative tool in order
//   - Returns all missing required tools in a single error
//
// # Error Format
//
// Single missing tool:
//
//	c++ (C++ compiler) not found in PATH
//
// Multiple missing tools:
//
//	missing required tools: c++ (C++ compiler), ar (Static library archiver)
//
// # Thread Safety
//
// This function is thread-safe as long as execLookPath is not being replaced.
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missingTools []string

	for _, req := range requirements {
		// Try the primary tool
		found := CheckToolAvailable(req.Name) == nil

		// If not found, try alternatives
		if !found && len(req.Alternatives) > 0 {
			for _, alt := range req.Alternatives {
				if CheckToolAvailable(alt) == nil {
					found = true
					break
				}
			}
		}

		// If still not found, record it
		if !found {
			if req.Purpose != "" {
				missingTools = append(missingTools, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
			} else {
				missingTools = append(missingTools, req.Name)
			}
		}
	}

	if len(missingTools) == 0 {
		return nil
	}

	if len(missingTools) == 1 {
		return fmt.Errorf("%s not found in PATH", missingTools[0])
	}

	return fmt.Errorf("missing required tools: %s", strings.Join(missingTools, ", "))
}
