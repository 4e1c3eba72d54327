package imguisys

import (
	"path/filepath"
	"strings"
)

// Build tool constants
const (
	arProgram  = "ar"
	libProgram = "lib"
)

// version suffix accepted after driver names, e.g. g++-13 or clang++-17.0
const versionSuffix = `(-\d+(\.\d+)*)?$`

// GNUToolchain handles g++ and gcc drivers
type GNUToolchain struct{}

// Name returns the toolchain name
func (t *GNUToolchain) Name() string {
	return "GNU"
}

// Family returns FamilyGNU
func (t *GNUToolchain) Family() Family {
	return FamilyGNU
}

// CanCompile matches g++, gcc and their cross/versioned variants
func (t *GNUToolchain) CanCompile(compiler string) bool {
	return MatchesPattern(compiler, `(^|-)g\+\+`+versionSuffix, `(^|-)gcc`+versionSuffix)
}

// RecognizesVersion matches the GCC version banner
func (t *GNUToolchain) RecognizesVersion(versionOutput string) bool {
	return strings.Contains(versionOutput, "Free Software Foundation") ||
		strings.Contains(versionOutput, "(GCC)")
}

// DefaultArchiver returns ar
func (t *GNUToolchain) DefaultArchiver() string {
	return arProgram
}

// LibraryFile keeps the name unchanged
func (t *GNUToolchain) LibraryFile(name string) string {
	return name
}

// ObjectExt returns .o
func (t *GNUToolchain) ObjectExt() string {
	return ".o"
}

// CompileArgs assembles a gcc-style command line
func (t *GNUToolchain) CompileArgs(opts CompileOptions, source, object string) []string {
	return gccStyleCompileArgs(FamilyGNU, opts, source, object)
}

// ArchiveArgs assembles an ar command line
func (t *GNUToolchain) ArchiveArgs(library string, objects []string) []string {
	return arArchiveArgs(library, objects)
}

// ClangToolchain handles clang++ and clang drivers
type ClangToolchain struct{}

// Name returns the toolchain name
func (t *ClangToolchain) Name() string {
	return "Clang"
}

// Family returns FamilyClang
func (t *ClangToolchain) Family() Family {
	return FamilyClang
}

// CanCompile matches clang++, clang and their cross/versioned variants
func (t *ClangToolchain) CanCompile(compiler string) bool {
	return MatchesPattern(compiler, `(^|-)clang(\+\+)?`+versionSuffix)
}

// RecognizesVersion matches "clang version" and "Apple clang version"
func (t *ClangToolchain) RecognizesVersion(versionOutput string) bool {
	return strings.Contains(versionOutput, "clang version")
}

// DefaultArchiver returns ar
func (t *ClangToolchain) DefaultArchiver() string {
	return arProgram
}

// LibraryFile keeps the name unchanged
func (t *ClangToolchain) LibraryFile(name string) string {
	return name
}

// ObjectExt returns .o
func (t *ClangToolchain) ObjectExt() string {
	return ".o"
}

// CompileArgs assembles a gcc-style command line
func (t *ClangToolchain) CompileArgs(opts CompileOptions, source, object string) []string {
	return gccStyleCompileArgs(FamilyClang, opts, source, object)
}

// ArchiveArgs assembles an ar command line
func (t *ClangToolchain) ArchiveArgs(library string, objects []string) []string {
	return arArchiveArgs(library, objects)
}

// MSVCToolchain handles cl.exe and clang-cl
type MSVCToolchain struct{}

// Name returns the toolchain name
func (t *MSVCToolchain) Name() string {
	return "MSVC"
}

// Family returns FamilyMSVC
func (t *MSVCToolchain) Family() Family {
	return FamilyMSVC
}

// CanCompile matches cl and clang-cl
func (t *MSVCToolchain) CanCompile(compiler string) bool {
	return MatchesPattern(compiler, `^cl$`, `^clang-cl$`)
}

// RecognizesVersion matches the Microsoft compiler banner
func (t *MSVCToolchain) RecognizesVersion(versionOutput string) bool {
	return strings.Contains(versionOutput, "Microsoft (R) C/C++")
}

// DefaultArchiver returns lib
func (t *MSVCToolchain) DefaultArchiver() string {
	return libProgram
}

// LibraryFile turns libname.a into name.lib
func (t *MSVCToolchain) LibraryFile(name string) string {
	name = strings.TrimSuffix(strings.TrimPrefix(name, "lib"), ".a")
	return name + ".lib"
}

// ObjectExt returns .obj
func (t *MSVCToolchain) ObjectExt() string {
	return ".obj"
}

// CompileArgs assembles a cl-style command line
func (t *MSVCToolchain) CompileArgs(opts CompileOptions, source, object string) []string {
	args := []string{"/nologo", "/c", "/TP", "/MD"}

	switch opts.OptLevel {
	case "":
	case "0":
		args = append(args, "/Od")
	case "s", "z":
		args = append(args, "/O1")
	default:
		args = append(args, "/O2")
	}

	if opts.Debug {
		args = append(args, "/Z7")
	}

	for _, dir := range opts.Includes {
		args = append(args, "/I"+dir)
	}

	for _, d := range opts.Defines {
		args = append(args, "/D"+defineArg(d))
	}

	if !opts.Warnings {
		args = append(args, "/W0")
	}

	args = append(args, opts.Flags...)
	return append(args, "/Fo"+object, source)
}

// ArchiveArgs assembles a lib.exe command line
func (t *MSVCToolchain) ArchiveArgs(library string, objects []string) []string {
	args := []string{"/NOLOGO", "/OUT:" + library}
	return append(args, objects...)
}

// GenericToolchain is the fallback for compilers that could not be identified.
//
// It assumes the common -c/-I/-D/-o conventions but never adds
// family-specific flags.
type GenericToolchain struct{}

// Name returns the toolchain name
func (t *GenericToolchain) Name() string {
	return "Generic"
}

// Family returns FamilyGeneric
func (t *GenericToolchain) Family() Family {
	return FamilyGeneric
}

// CanCompile never matches by name
func (t *GenericToolchain) CanCompile(string) bool {
	return false
}

// RecognizesVersion never matches
func (t *GenericToolchain) RecognizesVersion(string) bool {
	return false
}

// DefaultArchiver returns ar
func (t *GenericToolchain) DefaultArchiver() string {
	return arProgram
}

// LibraryFile keeps the name unchanged
func (t *GenericToolchain) LibraryFile(name string) string {
	return name
}

// ObjectExt returns .o
func (t *GenericToolchain) ObjectExt() string {
	return ".o"
}

// CompileArgs assembles a gcc-style command line
func (t *GenericToolchain) CompileArgs(opts CompileOptions, source, object string) []string {
	return gccStyleCompileArgs(FamilyGeneric, opts, source, object)
}

// ArchiveArgs assembles an ar command line
func (t *GenericToolchain) ArchiveArgs(library string, objects []string) []string {
	return arArchiveArgs(library, objects)
}

func gccStyleCompileArgs(family Family, opts CompileOptions, source, object string) []string {
	args := []string{"-c"}

	switch opts.OptLevel {
	case "":
	case "z":
		// gcc has no -Oz before 12
		if family == FamilyClang {
			args = append(args, "-Oz")
		} else {
			args = append(args, "-Os")
		}
	default:
		args = append(args, "-O"+opts.OptLevel)
	}

	if opts.Debug {
		args = append(args, "-g")
	}

	if opts.PIC {
		args = append(args, "-fPIC")
	}

	for _, dir := range opts.Includes {
		args = append(args, "-I"+dir)
	}

	for _, d := range opts.Defines {
		args = append(args, "-D"+defineArg(d))
	}

	if !opts.Warnings {
		args = append(args, "-w")
	}

	args = append(args, opts.Flags...)
	return append(args, "-o", object, source)
}

func arArchiveArgs(library string, objects []string) []string {
	args := []string{"crs", library}
	return append(args, objects...)
}

func defineArg(d Define) string {
	if d.HasValue {
		return d.Name + "=" + d.Value
	}
	return d.Name
}

// compilerWrappers are launchers that take the real driver as their first
// argument.
var compilerWrappers = []string{"ccache", "sccache", "distcc", "buildcache"}

func toolBaseName(path string) string {
	return strings.TrimSuffix(strings.ToLower(filepath.Base(path)), ".exe")
}

// compilerDriver returns the real compiler in command: the second field when
// the first is a known wrapper, the first field otherwise. Any later fields
// are arguments, as in CXX="ccache g++ -m32".
func compilerDriver(command []string) string {
	if len(command) == 0 {
		return ""
	}
	if len(command) > 1 {
		for _, wrapper := range compilerWrappers {
			if toolBaseName(command[0]) == wrapper {
				return command[1]
			}
		}
	}
	return command[0]
}

// compilerBaseName reduces a compiler command to the name toolchains match
// on: "ccache /usr/bin/x86_64-linux-gnu-g++-13 -m32" becomes
// "x86_64-linux-gnu-g++-13".
func compilerBaseName(command []string) string {
	driver := compilerDriver(command)
	if driver == "" {
		return ""
	}
	return toolBaseName(driver)
}
