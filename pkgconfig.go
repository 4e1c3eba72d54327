package imguisys

import (
	"fmt"
	"strings"
)

// FreeTypePackage is the pkg-config name of the FreeType library.
const FreeTypePackage = "freetype2"

// PkgConfigLibrary is what pkg-config reports for one package.
type PkgConfigLibrary struct {
	Name         string
	IncludePaths []string // from -I
	LinkPaths    []string // from -L
	Libs         []string // from -l
}

// PkgConfigError reports a failed pkg-config lookup.
type PkgConfigError struct {
	Package string
	Command string
	Err     error
}

func (e *PkgConfigError) Error() string {
	return fmt.Sprintf("pkg-config could not find %s (ran %s): %v", e.Package, e.Command, e.Err)
}

func (e *PkgConfigError) Unwrap() error {
	return e.Err
}

// FindPkgConfigLibrary discovers pkg through the host's pkg-config.
//
// There is no fallback to a bundled copy: any failure is returned as a
// *PkgConfigError and aborts the build.
func FindPkgConfigLibrary(config *BuildConfig, pkg string) (*PkgConfigLibrary, error) {
	bin := config.pkgConfigCommand()

	cflags, err := shOutputWith(config.Env, bin, "--cflags-only-I", pkg)
	if err != nil {
		return nil, &PkgConfigError{Package: pkg, Command: bin + " --cflags-only-I " + pkg, Err: err}
	}

	libs, err := shOutputWith(config.Env, bin, "--libs", pkg)
	if err != nil {
		return nil, &PkgConfigError{Package: pkg, Command: bin + " --libs " + pkg, Err: err}
	}

	lib := &PkgConfigLibrary{Name: pkg}
	lib.IncludePaths = uniqueStrings(flagValues(cflags, "-I"))
	lib.LinkPaths = uniqueStrings(flagValues(libs, "-L"))
	lib.Libs = uniqueStrings(flagValues(libs, "-l"))

	return lib, nil
}

// flagValues extracts the values of a single-letter flag from pkg-config
// output, accepting both "-I/usr/include" and "-I /usr/include".
func flagValues(output, flag string) []string {
	fields := strings.Fields(output)
	var values []string

	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if !strings.HasPrefix(field, flag) {
			continue
		}

		value := strings.TrimPrefix(field, flag)
		if value == "" && i+1 < len(fields) {
			i++
			value = fields[i]
		}
		values = append(values, value)
	}

	return values
}
