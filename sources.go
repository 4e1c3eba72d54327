package imguisys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source tree variants.
const (
	VariantMaster  = "master"
	VariantDocking = "docking"
)

// FetchHint is the corrective action printed when vendored sources are missing.
const FetchHint = "git submodule update --init --recursive"

// SourceLayout describes one vendored imgui tree. Paths are relative to the
// manifest directory.
type SourceLayout struct {
	Variant  string // VariantMaster or VariantDocking
	TreeDir  string // Vendored tree copied to include/
	Umbrella string // Single translation unit including the whole library
}

// SelectSourceLayout picks exactly one tree based on the docking flag.
func SelectSourceLayout(features Features) SourceLayout {
	variant := VariantMaster
	if features.Docking {
		variant = VariantDocking
	}

	return SourceLayout{
		Variant:  variant,
		TreeDir:  filepath.Join("third-party", "imgui-"+variant),
		Umbrella: "include_imgui_" + variant + ".cpp",
	}
}

// Markers returns the files that must exist before compiling: the cimgui
// integration source at the root of the tree and imgui's own main source.
func (l SourceLayout) Markers() []string {
	return []string{
		filepath.Join(l.TreeDir, "cimgui.cpp"),
		filepath.Join(l.TreeDir, "imgui", "imgui.cpp"),
	}
}

// ErrMissingVendoredSources is matched by every *MissingSourcesError.
var ErrMissingVendoredSources = errors.New("vendored imgui sources are missing")

// MissingSourcesError reports marker files absent from the vendored tree,
// usually because the git submodules were never fetched.
type MissingSourcesError struct {
	Tree    string   // Vendored tree that was checked
	Missing []string // Marker files that do not exist
}

func (e *MissingSourcesError) Error() string {
	return fmt.Sprintf("%v in %s (missing %s); fetch them with `%s` or `mage fetch`",
		ErrMissingVendoredSources, e.Tree, strings.Join(e.Missing, ", "), FetchHint)
}

// Is makes errors.Is(err, ErrMissingVendoredSources) succeed.
func (e *MissingSourcesError) Is(target error) bool {
	return target == ErrMissingVendoredSources
}

// CheckVendoredSources verifies the marker files of layout exist under
// manifestDir.
//
// Returns a *MissingSourcesError naming every absent marker, or a wrapped
// filesystem error when a marker cannot be inspected for another reason.
func CheckVendoredSources(manifestDir string, layout SourceLayout) error {
	var missing []string

	for _, marker := range layout.Markers() {
		_, err := os.Stat(filepath.Join(manifestDir, marker))
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist):
			missing = append(missing, filepath.ToSlash(marker))
		default:
			return fmt.Errorf("check vendored source %s: %w", marker, err)
		}
	}

	if len(missing) > 0 {
		return &MissingSourcesError{
			Tree:    filepath.ToSlash(layout.TreeDir),
			Missing: missing,
		}
	}

	return nil
}
