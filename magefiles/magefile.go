//go:build mage

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	imguisys "github.com/contriboss/imgui-sys-go"
)

// defaultOutDir is used when OUT_DIR is not set.
var defaultOutDir = filepath.Join("target", "imgui-sys")

// Fetch checks out the vendored imgui submodules.
func Fetch() error {
	return sh.RunV("git", "submodule", "update", "--init", "--recursive")
}

// Verify checks that both vendored trees are present.
func Verify() error {
	root, err := os.Getwd()
	if err != nil {
		return err
	}

	for _, features := range []imguisys.Features{{}, {Docking: true}} {
		layout := imguisys.SelectSourceLayout(features)
		if err := imguisys.CheckVendoredSources(root, layout); err != nil {
			return err
		}
		if mg.Verbose() {
			fmt.Println(color.Green.Sprintf("%s sources present", layout.Variant))
		}
	}

	return nil
}

// Build compiles cimgui into $OUT_DIR (default target/imgui-sys) and prints the metadata.
func Build(ctx context.Context) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := imguisys.NewOrchestrator().Build(ctx, config)
	if config.Verbose && result != nil {
		for _, line := range result.Output {
			fmt.Println(line)
		}
	}
	if err != nil {
		return err
	}

	for _, artifact := range result.Artifacts {
		fmt.Println(color.Green.Sprintf("built %s", artifact))
	}
	_, err = result.Metadata.WriteTo(os.Stdout)
	return err
}

// All fetches the sources, then builds.
func All(ctx context.Context) error {
	mg.SerialDeps(Fetch)
	return Build(ctx)
}

// Clean removes the vendored include tree and the built library.
func Clean(ctx context.Context) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	return imguisys.NewOrchestrator().Clean(ctx, config)
}

// loadConfig reads the usual build script environment, filling in OUT_DIR
// and CARGO_MANIFEST_DIR for runs outside the host build system.
func loadConfig() (*imguisys.BuildConfig, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	defaults := map[string]string{
		imguisys.EnvOutDir:      defaultOutDir,
		imguisys.EnvManifestDir: root,
	}

	config, err := imguisys.LoadConfig(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := defaults[key]
		return v, ok
	})
	if err != nil {
		return nil, err
	}

	config.Verbose = config.Verbose || mg.Verbose()
	return config, nil
}
