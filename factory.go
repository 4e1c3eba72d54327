package imguisys

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/sh"
)

// shOutputWith runs a command and returns its trimmed stdout.
var shOutputWith = sh.OutputWith

// ToolchainFactory manages the registration and selection of toolchains.
//
// The factory maintains a registry of Toolchain implementations and provides
// methods to:
//   - Register new toolchains
//   - Find the toolchain for a compiler command
//
// # Usage
//
// Create a factory with all standard toolchains:
//
//	factory := imguisys.NewToolchainFactory()
//	tc, err := factory.ToolchainFor([]string{"g++"}, nil)
//
// # Toolchain Selection
//
// When resolving a compiler, the factory:
//  1. Reduces the command to its base name ("/usr/bin/g++-13" -> "g++-13")
//  2. Calls CanCompile() on each registered toolchain in order
//  3. If none match, runs `<compiler> --version` once and calls
//     RecognizesVersion() on each toolchain in order
//  4. Falls back to the fallback toolchain, or returns an error if none is set
//
// Name matching comes first because probing spawns a process.
//
// # Thread Safety
//
// ToolchainFactory is NOT thread-safe for registration.
// Register all toolchains before concurrent use.
type ToolchainFactory struct {
	toolchains []Toolchain
	fallback   Toolchain
}

// NewToolchainFactory creates a factory with all standard toolchains registered.
//
// The standard toolchains are registered in this order:
//  1. MSVCToolchain - cl, clang-cl
//  2. ClangToolchain - clang++, clang
//  3. GNUToolchain - g++, gcc
//
// GenericToolchain is the fallback.
func NewToolchainFactory() *ToolchainFactory {
	factory := &ToolchainFactory{}

	// clang-cl must be seen by MSVC before Clang claims it
	factory.Register(&MSVCToolchain{})
	factory.Register(&ClangToolchain{})
	factory.Register(&GNUToolchain{})
	factory.SetFallback(&GenericToolchain{})

	return factory
}

// Register adds a new toolchain to the factory.
//
// Toolchains are checked in the order they are registered.
// Not thread-safe. Register all toolchains before concurrent use.
func (f *ToolchainFactory) Register(toolchain Toolchain) {
	f.toolchains = append(f.toolchains, toolchain)
}

// SetFallback sets the toolchain used when nothing else matches.
func (f *ToolchainFactory) SetFallback(toolchain Toolchain) {
	f.fallback = toolchain
}

// ListToolchains returns a copy of all registered toolchains.
func (f *ToolchainFactory) ListToolchains() []Toolchain {
	return append([]Toolchain{}, f.toolchains...)
}

// ToolchainFor returns the toolchain for the given compiler command.
//
// command is the compiler split into fields; wrappers such as ccache are
// allowed in front of the real driver. env is passed to the version probe.
func (f *ToolchainFactory) ToolchainFor(command []string, env map[string]string) (Toolchain, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("no compiler command given")
	}

	name := compilerBaseName(command)
	for _, toolchain := range f.toolchains {
		if toolchain.CanCompile(name) {
			return toolchain, nil
		}
	}

	args := append(append([]string{}, command[1:]...), "--version")
	if out, err := shOutputWith(env, command[0], args...); err == nil {
		for _, toolchain := range f.toolchains {
			if toolchain.RecognizesVersion(out) {
				return toolchain, nil
			}
		}
	}

	if f.fallback != nil {
		return f.fallback, nil
	}

	return nil, fmt.Errorf("no toolchain found for compiler: %s", strings.Join(command, " "))
}
