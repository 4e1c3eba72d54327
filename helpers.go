package imguisys

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchesPattern checks if a name matches any of the given regex patterns.
//
// Toolchains use it to recognise compiler executables by name.
//
// # Parameters
//
//   - name: The string to check (typically a compiler base name)
//   - patterns: One or more regex patterns to match against
//
// # Returns
//
// Returns true if the name matches any pattern, false otherwise.
// If a pattern is invalid regex, it is silently skipped.
//
// # Example
//
//	if MatchesPattern("x86_64-linux-gnu-g++-13", `g\+\+(-\d+)?$`) {
//	    // GNU C++ driver
//	}
//
// # Thread Safety
//
// This function is thread-safe and can be called concurrently.
func MatchesPattern(name string, patterns ...string) bool {
	for _, pattern := range patterns {
		if matched, _ := regexp.MatchString(pattern, name); matched {
			return true
		}
	}
	return false
}

// MatchesExtension checks if a filename has any of the given extensions.
//
// This is a case-insensitive suffix check, used to recognise static
// libraries (.a, .lib) in the output directory.
//
// # Example
//
//	if MatchesExtension(filename, ".a", ".lib") {
//	    // This is a static library
//	}
//
// # Thread Safety
//
// This function is thread-safe and can be called concurrently.
func MatchesExtension(filename string, extensions ...string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// BuildError creates a standardized build error with output context.
//
// This helper formats step failures consistently, including the captured
// compiler output for debugging.
//
// # Parameters
//
//   - step: Name of the failing step (e.g., "Compile", "Archive")
//   - output: Lines of output from the build process
//   - err: The underlying error (can be nil)
//
// # Format
//
// With error and output:
//
//	Compile build failed: running "c++" failed with exit code 1
//
//	Build output:
//	imgui.cpp:12:1: error: expected ';'
//
// With error but no output:
//
//	Compile build failed: running "c++" failed with exit code 1
//
// # Thread Safety
//
// This function is thread-safe and can be called concurrently.
func BuildError(step string, output []string, err error) error {
	outputStr := strings.Join(output, "\n")

	var prefix string
	if err != nil {
		prefix = fmt.Sprintf("%s build failed: %v", step, err)
	} else {
		prefix = fmt.Sprintf("%s build failed", step)
	}

	if outputStr != "" {
		return fmt.Errorf("%s\n\nBuild output:\n%s", prefix, outputStr)
	}

	return fmt.Errorf("%s", prefix)
}

// splitOutput turns captured subprocess output into lines, dropping the
// trailing newline.
func splitOutput(output string) []string {
	output = strings.TrimRight(output, "\r\n")
	if output == "" {
		return nil
	}
	return strings.Split(output, "\n")
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{})
	var result []string

	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}

	return result
}
