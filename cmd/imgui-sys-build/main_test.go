package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/magefile/mage/mg"

	imguisys "github.com/contriboss/imgui-sys-go"
)

func TestRunMissingOutDir(t *testing.T) {
	var stdout, stderr bytes.Buffer
	lookup := imguisys.MapLookup(map[string]string{imguisys.EnvManifestDir: t.TempDir()})

	err := run(context.Background(), lookup, &stdout, &stderr)
	if code := mg.ExitStatus(err); code != exitConfig {
		t.Errorf("expected exit code %d, got %d (%v)", exitConfig, code, err)
	}
	if !strings.Contains(stderr.String(), imguisys.EnvOutDir) {
		t.Errorf("expected OUT_DIR in diagnostics, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no metadata, got %q", stdout.String())
	}
}

func TestRunMissingSources(t *testing.T) {
	var stdout, stderr bytes.Buffer
	lookup := imguisys.MapLookup(map[string]string{
		imguisys.EnvOutDir:      t.TempDir(),
		imguisys.EnvManifestDir: t.TempDir(),
	})

	err := run(context.Background(), lookup, &stdout, &stderr)
	if code := mg.ExitStatus(err); code != exitMissingSources {
		t.Errorf("expected exit code %d, got %d (%v)", exitMissingSources, code, err)
	}
	if n := strings.Count(stderr.String(), imguisys.FetchHint); n != 1 {
		t.Errorf("expected the fetch hint once, got %d times in %q", n, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no metadata, got %q", stdout.String())
	}
}

func TestRunWasmPrintsMetadata(t *testing.T) {
	manifestDir := t.TempDir()
	outDir := t.TempDir()

	header := filepath.Join(manifestDir, "third-party", "imgui-master", "cimgui.h")
	if err := os.MkdirAll(filepath.Dir(header), 0o755); err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}
	if err := os.WriteFile(header, []byte("// cimgui\n"), 0o644); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}

	var stdout, stderr bytes.Buffer
	lookup := imguisys.MapLookup(map[string]string{
		imguisys.EnvOutDir:          outDir,
		imguisys.EnvManifestDir:     manifestDir,
		imguisys.EnvFeatureWasm:     "1",
		imguisys.EnvFeatureFreeType: "1",
	})

	if err := run(context.Background(), lookup, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v\n%s", err, stderr.String())
	}

	expected := "cargo:THIRD_PARTY=" + filepath.Join(outDir, "include") + "\n" +
		"cargo:DEFINE_IMGUI_USE_WCHAR32=\n" +
		"cargo:DEFINE_CIMGUI_NO_EXPORT=\n" +
		"cargo:DEFINE_IMGUI_DISABLE_WIN32_FUNCTIONS=\n" +
		"cargo:DEFINE_IMGUI_DISABLE_OSX_FUNCTIONS=\n"
	if stdout.String() != expected {
		t.Errorf("unexpected metadata\nexpected:\n%s\ngot:\n%s", expected, stdout.String())
	}

	if _, err := os.Stat(filepath.Join(outDir, "include", "cimgui.h")); err != nil {
		t.Errorf("expected vendored header: %v", err)
	}
}
