package imguisys

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func newTestJob(t *testing.T, config *BuildConfig) (*CompileJob, string) {
	t.Helper()

	outDir := filepath.Join(t.TempDir(), "lib")
	job := NewCompileJob(&GNUToolchain{}, config).
		OutDir(outDir).
		File("/src/include_imgui_master.cpp")

	return job, outDir
}

func TestCompileJobRunsCompilerThenArchiver(t *testing.T) {
	fake := stubExec(t)
	allToolsPresent(t)

	job, outDir := newTestJob(t, &BuildConfig{Target: testLinuxTarget, Compiler: "g++"})
	result := &BuildResult{}

	library, err := job.Compile(context.Background(), result, LibraryName)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if library != filepath.Join(outDir, LibraryName) {
		t.Errorf("unexpected library path %s", library)
	}

	if len(fake.calls) != 2 {
		t.Fatalf("expected 2 calls, got %+v", fake.calls)
	}

	object := filepath.Join(outDir, "include_imgui_master.o")
	if !containsArg(fake.calls[0].args, object) {
		t.Errorf("expected object %s in %v", object, fake.calls[0].args)
	}

	archive := fake.calls[1]
	if archive.cmd != "ar" || !reflect.DeepEqual(archive.args, []string{"crs", library, object}) {
		t.Errorf("unexpected archive call %+v", archive)
	}
}

func TestCompileJobExtraFlagsComeLast(t *testing.T) {
	fake := stubExec(t)

	config := &BuildConfig{Target: testLinuxTarget, Compiler: "g++", ExtraFlags: []string{"-fexceptions"}}
	job, _ := newTestJob(t, config)
	job.Flag("-fno-exceptions")

	if _, err := job.Compile(context.Background(), &BuildResult{}, LibraryName); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	args := fake.calls[0].args
	var noExc, exc int
	for i, arg := range args {
		switch arg {
		case "-fno-exceptions":
			noExc = i
		case "-fexceptions":
			exc = i
		}
	}
	if exc <= noExc {
		t.Errorf("CXXFLAGS must follow job flags: %v", args)
	}
}

func TestCompileJobCompilerWrapper(t *testing.T) {
	fake := stubExec(t)

	job, _ := newTestJob(t, &BuildConfig{Target: testLinuxTarget, Compiler: "ccache g++"})
	if _, err := job.Compile(context.Background(), &BuildResult{}, LibraryName); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	call := fake.calls[0]
	if call.cmd != "ccache" || call.args[0] != "g++" || call.args[1] != "-c" {
		t.Errorf("expected ccache g++ -c ..., got %s %v", call.cmd, call.args)
	}
}

func TestCompileJobCustomArchiver(t *testing.T) {
	fake := stubExec(t)

	job, _ := newTestJob(t, &BuildConfig{Target: testLinuxTarget, Compiler: "g++", Archiver: "llvm-ar"})
	if _, err := job.Compile(context.Background(), &BuildResult{}, LibraryName); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if fake.calls[1].cmd != "llvm-ar" {
		t.Errorf("expected llvm-ar, got %s", fake.calls[1].cmd)
	}
}

func TestCompileJobRemovesStaleLibrary(t *testing.T) {
	fake := stubExec(t)
	fake.skipArchive = true

	job, outDir := newTestJob(t, &BuildConfig{Target: testLinuxTarget, Compiler: "g++"})
	stale := filepath.Join(outDir, LibraryName)
	writeFile(t, stale, "old archive")

	if _, err := job.Compile(context.Background(), &BuildResult{}, LibraryName); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected stale library to be removed before archiving, got %v", err)
	}
}

func TestCompileJobFailureCarriesOutput(t *testing.T) {
	fake := stubExec(t)
	fake.output = "imgui.cpp:1:10: fatal error: imgui.h: No such file or directory\n"
	fake.fail = map[string]error{"g++": errors.New("exit status 1")}

	job, _ := newTestJob(t, &BuildConfig{Target: testLinuxTarget, Compiler: "g++"})
	result := &BuildResult{}

	_, err := job.Compile(context.Background(), result, LibraryName)
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !strings.Contains(err.Error(), "Compile build failed") || !strings.Contains(err.Error(), "imgui.h") {
		t.Errorf("unexpected error %q", err.Error())
	}
	if len(fake.calls) != 1 {
		t.Errorf("archiver must not run after a failed compile: %+v", fake.calls)
	}
	if len(result.Output) == 0 {
		t.Error("expected compiler output in result")
	}
}

func TestCompileJobWithoutFiles(t *testing.T) {
	stubExec(t)

	job := NewCompileJob(&GNUToolchain{}, &BuildConfig{}).OutDir(t.TempDir())
	if _, err := job.Compile(context.Background(), &BuildResult{}, LibraryName); err == nil {
		t.Error("expected error without source files")
	}

	job = NewCompileJob(&GNUToolchain{}, &BuildConfig{}).File("a.cpp")
	if _, err := job.Compile(context.Background(), &BuildResult{}, LibraryName); err == nil {
		t.Error("expected error without output directory")
	}
}

func TestCompileJobVerbose(t *testing.T) {
	stubExec(t)

	job, outDir := newTestJob(t, &BuildConfig{Target: testLinuxTarget, Compiler: "g++", Verbose: true})
	result := &BuildResult{}
	if _, err := job.Compile(context.Background(), result, LibraryName); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if len(result.Output) < 2 || !strings.HasPrefix(result.Output[0], "Running: g++ -c") {
		t.Errorf("expected the command line first, got %v", result.Output)
	}
	if result.Output[1] != "Output directory: "+outDir {
		t.Errorf("unexpected output directory line %q", result.Output[1])
	}
}

func TestCompileJobPIC(t *testing.T) {
	testCases := []struct {
		target   string
		expected bool
	}{
		{testLinuxTarget, true},
		{"aarch64-apple-darwin", true},
		{"x86_64-pc-windows-gnu", false},
	}

	for _, tc := range testCases {
		t.Run(tc.target, func(t *testing.T) {
			job := NewCompileJob(&GNUToolchain{}, &BuildConfig{Target: tc.target})
			if job.Options().PIC != tc.expected {
				t.Errorf("expected PIC=%v for %s", tc.expected, tc.target)
			}
		})
	}

	if NewCompileJob(&MSVCToolchain{}, &BuildConfig{}).Options().PIC {
		t.Error("MSVC never takes -fPIC")
	}
}

func TestCompileJobOptions(t *testing.T) {
	one := "1"
	job := NewCompileJob(&GNUToolchain{}, &BuildConfig{OptLevel: "3", Debug: true}).
		Defines(BaseDefines()).
		Define("EXTRA", &one).
		Include("/a", "/b", "/a")

	opts := job.Options()
	if len(opts.Defines) != 5 || opts.Defines[4] != (Define{Name: "EXTRA", Value: "1", HasValue: true}) {
		t.Errorf("unexpected defines %v", opts.Defines)
	}
	if !reflect.DeepEqual(opts.Includes, []string{"/a", "/b"}) {
		t.Errorf("expected deduplicated includes, got %v", opts.Includes)
	}
	if opts.OptLevel != "3" || !opts.Debug || !opts.Warnings {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestCompileJobFallsBackToArchiverAlternative(t *testing.T) {
	fake := stubExec(t)
	pathWith(t, "g++", "llvm-ar")

	job, _ := newTestJob(t, &BuildConfig{Target: testLinuxTarget, Compiler: "g++"})
	if _, err := job.Compile(context.Background(), &BuildResult{}, LibraryName); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if fake.calls[1].cmd != "llvm-ar" {
		t.Errorf("expected llvm-ar when ar is missing, got %s", fake.calls[1].cmd)
	}
}

func TestCompileJobDriverFlags(t *testing.T) {
	fake := stubExec(t)
	allToolsPresent(t)

	job, _ := newTestJob(t, &BuildConfig{Target: testLinuxTarget, Compiler: "ccache g++ -m32"})
	if _, err := job.Compile(context.Background(), &BuildResult{}, LibraryName); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	call := fake.calls[0]
	if call.cmd != "ccache" || !reflect.DeepEqual(call.args[:3], []string{"g++", "-m32", "-c"}) {
		t.Errorf("expected ccache g++ -m32 -c ..., got %s %v", call.cmd, call.args)
	}
}
