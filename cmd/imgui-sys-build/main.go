// Command imgui-sys-build is the build script of the imgui-sys package.
//
// The host build system runs it with OUT_DIR, CARGO_MANIFEST_DIR and the
// CARGO_FEATURE_* variables set. Metadata lines are printed on stdout;
// diagnostics go to stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/magefile/mage/mg"

	imguisys "github.com/contriboss/imgui-sys-go"
)

// Exit codes.
const (
	exitConfig         = 2
	exitMissingSources = 3
)

func main() {
	err := run(context.Background(), os.LookupEnv, os.Stdout, os.Stderr)
	os.Exit(mg.ExitStatus(err))
}

func run(ctx context.Context, lookup imguisys.LookupFunc, stdout, stderr io.Writer) error {
	config, err := imguisys.LoadConfig(lookup)
	if err != nil {
		return report(stderr, err)
	}

	result, err := imguisys.NewOrchestrator().Build(ctx, config)
	if config.Verbose && result != nil {
		for _, line := range result.Output {
			fmt.Fprintln(stderr, line)
		}
	}
	if err != nil {
		return report(stderr, err)
	}

	if _, err := result.Metadata.WriteTo(stdout); err != nil {
		return report(stderr, fmt.Errorf("write metadata: %w", err))
	}

	return nil
}

// report prints err and returns it with the exit code matching its kind.
func report(stderr io.Writer, err error) error {
	var configErr *imguisys.ConfigError

	code := 1
	switch {
	case errors.As(err, &configErr):
		code = exitConfig
	case errors.Is(err, imguisys.ErrMissingVendoredSources):
		code = exitMissingSources
	}

	fmt.Fprintln(stderr, color.Red.Sprintf("error: %v", err))
	return mg.Fatal(code, err)
}
