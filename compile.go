package imguisys

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
)

// shExec runs a subprocess with the given environment, streaming its output
// to the writers. Tests replace it to observe and fake invocations.
var shExec = sh.Exec

// CompileOptions is the toolchain-independent description of one compile
// invocation handed to Toolchain.CompileArgs.
type CompileOptions struct {
	Defines  []Define
	Includes []string
	Flags    []string
	Warnings bool
	OptLevel string
	Debug    bool
	PIC      bool
}

// CompileJob collects everything needed to build a static library from C++
// sources: defines, include paths, flags and files. Setters return the job
// so calls can be chained.
//
//	job := NewCompileJob(toolchain, config).
//	    OutDir(libDir).
//	    Defines(plan.Defines).
//	    Warnings(false).
//	    File(umbrella)
//	library, err := job.Compile(ctx, result, "libcimgui.a")
type CompileJob struct {
	toolchain  Toolchain
	compiler   []string
	archiver   []string
	defines    DefineSet
	includes   []string
	flags      []string
	extraFlags []string
	files      []string
	outDir     string
	warnings   bool
	optLevel   string
	debug      bool
	pic        bool
	env        map[string]string
	verbose    bool
}

// NewCompileJob creates a C++ compile job for toolchain, taking compiler,
// archiver, optimisation and environment settings from config.
func NewCompileJob(toolchain Toolchain, config *BuildConfig) *CompileJob {
	archiver := strings.Fields(config.Archiver)
	if len(archiver) == 0 {
		def := toolchain.DefaultArchiver()
		archiver = []string{resolveTool(def, archiverAlternatives[def])}
	}

	return &CompileJob{
		toolchain:  toolchain,
		compiler:   config.compilerCommand(),
		archiver:   archiver,
		extraFlags: append([]string(nil), config.ExtraFlags...),
		warnings:   true,
		optLevel:   config.OptLevel,
		debug:      config.Debug,
		pic:        toolchain.Family() != FamilyMSVC && config.targetOS() != "windows",
		env:        config.Env,
		verbose:    config.Verbose,
	}
}

// Defines applies every define of set, after any already applied.
func (j *CompileJob) Defines(set DefineSet) *CompileJob {
	j.defines = NewDefineSet(append(j.defines.All(), set.All()...)...)
	return j
}

// Define applies a single define. A nil value means no value.
func (j *CompileJob) Define(name string, value *string) *CompileJob {
	j.defines = j.defines.With(name, value)
	return j
}

// Include adds include directories.
func (j *CompileJob) Include(dirs ...string) *CompileJob {
	j.includes = append(j.includes, dirs...)
	return j
}

// Flag adds raw compiler flags.
func (j *CompileJob) Flag(flags ...string) *CompileJob {
	j.flags = append(j.flags, flags...)
	return j
}

// Warnings enables or disables compiler warnings.
func (j *CompileJob) Warnings(enabled bool) *CompileJob {
	j.warnings = enabled
	return j
}

// File adds a source file.
func (j *CompileJob) File(path string) *CompileJob {
	j.files = append(j.files, path)
	return j
}

// OutDir sets where objects and the library are written.
func (j *CompileJob) OutDir(dir string) *CompileJob {
	j.outDir = dir
	return j
}

// Options returns the compile options as the toolchain sees them. Flags
// from CXXFLAGS come last so they can override anything set by the job.
func (j *CompileJob) Options() CompileOptions {
	return CompileOptions{
		Defines:  j.defines.All(),
		Includes: uniqueStrings(j.includes),
		Flags:    append(append([]string(nil), j.flags...), j.extraFlags...),
		Warnings: j.warnings,
		OptLevel: j.optLevel,
		Debug:    j.debug,
		PIC:      j.pic,
	}
}

// Compile compiles every file to an object in the output directory and
// archives the objects into a static library called name (mapped through
// Toolchain.LibraryFile). It returns the absolute library path.
//
// Subprocess output is appended to result.Output. The first failing
// command aborts the job with a BuildError carrying that output.
func (j *CompileJob) Compile(ctx context.Context, result *BuildResult, name string) (string, error) {
	if len(j.files) == 0 {
		return "", fmt.Errorf("compile %s: no source files", name)
	}
	if j.outDir == "" {
		return "", fmt.Errorf("compile %s: no output directory", name)
	}

	if err := os.MkdirAll(j.outDir, 0o755); err != nil {
		return "", fmt.Errorf("compile %s: %w", name, err)
	}

	opts := j.Options()
	var objects []string

	for _, source := range j.files {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		object := filepath.Join(j.outDir, stem+j.toolchain.ObjectExt())

		args := append(append([]string{}, j.compiler[1:]...), j.toolchain.CompileArgs(opts, source, object)...)
		if err := j.run(result, "Compile", j.compiler[0], args); err != nil {
			return "", err
		}
		objects = append(objects, object)
	}

	library := filepath.Join(j.outDir, j.toolchain.LibraryFile(name))

	// ar appends to an existing archive
	if err := sh.Rm(library); err != nil {
		return "", fmt.Errorf("compile %s: %w", name, err)
	}

	args := append(append([]string{}, j.archiver[1:]...), j.toolchain.ArchiveArgs(library, objects)...)
	if err := j.run(result, "Archive", j.archiver[0], args); err != nil {
		return "", err
	}

	return library, nil
}

func (j *CompileJob) run(result *BuildResult, step, cmd string, args []string) error {
	if j.verbose {
		result.Output = append(result.Output,
			fmt.Sprintf("Running: %s %s", cmd, strings.Join(args, " ")),
			fmt.Sprintf("Output directory: %s", j.outDir))
	}

	var output bytes.Buffer
	_, err := shExec(j.env, &output, &output, cmd, args...)
	result.Output = append(result.Output, splitOutput(output.String())...)

	if err != nil {
		return BuildError(step, result.Output, err)
	}

	return nil
}
