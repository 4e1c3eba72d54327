package imguisys

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Environment variables read by LoadConfig.
const (
	EnvOutDir          = "OUT_DIR"
	EnvManifestDir     = "CARGO_MANIFEST_DIR"
	EnvFeatureDocking  = "CARGO_FEATURE_DOCKING"
	EnvFeatureWasm     = "CARGO_FEATURE_WASM"
	EnvFeatureFreeType = "CARGO_FEATURE_FREETYPE"
	EnvCompiler        = "CXX"
	EnvArchiver        = "AR"
	EnvCxxFlags        = "CXXFLAGS"
	EnvCxxStdlib       = "CXXSTDLIB"
	EnvTarget          = "TARGET"
	EnvOptLevel        = "OPT_LEVEL"
	EnvDebug           = "DEBUG"
	EnvPkgConfig       = "PKG_CONFIG"
	EnvVerbose         = "IMGUI_SYS_VERBOSE"
)

// LookupFunc reads one environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// MapLookup adapts a map to a LookupFunc.
func MapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// Features are the build-time toggles of one invocation.
type Features struct {
	Docking  bool // Build the docking branch of imgui
	Wasm     bool // Target WebAssembly, no native compilation
	FreeType bool // Rasterize fonts with FreeType
}

// ResolveFeatures reads the feature flags. Presence of the variable enables
// the feature, its value is ignored.
func ResolveFeatures(lookup LookupFunc) Features {
	present := func(key string) bool {
		_, ok := lookup(key)
		return ok
	}

	return Features{
		Docking:  present(EnvFeatureDocking),
		Wasm:     present(EnvFeatureWasm),
		FreeType: present(EnvFeatureFreeType),
	}
}

// ConfigError reports a required environment variable that was not set.
type ConfigError struct {
	Variable string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("required environment variable %s is not set", e.Variable)
}

// LoadConfig builds a BuildConfig from the environment exposed by the host
// build system.
//
// OUT_DIR and CARGO_MANIFEST_DIR are required; relative values are made
// absolute. Every other input is optional.
func LoadConfig(lookup LookupFunc) (*BuildConfig, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	outDir := get(EnvOutDir)
	if outDir == "" {
		return nil, &ConfigError{Variable: EnvOutDir}
	}

	manifestDir := get(EnvManifestDir)
	if manifestDir == "" {
		return nil, &ConfigError{Variable: EnvManifestDir}
	}

	var err error
	if outDir, err = filepath.Abs(outDir); err != nil {
		return nil, fmt.Errorf("resolve %s: %w", EnvOutDir, err)
	}
	if manifestDir, err = filepath.Abs(manifestDir); err != nil {
		return nil, fmt.Errorf("resolve %s: %w", EnvManifestDir, err)
	}

	config := &BuildConfig{
		ManifestDir: manifestDir,
		OutDir:      outDir,
		Features:    ResolveFeatures(lookup),
		Compiler:    strings.TrimSpace(get(EnvCompiler)),
		Archiver:    strings.TrimSpace(get(EnvArchiver)),
		ExtraFlags:  strings.Fields(get(EnvCxxFlags)),
		Target:      get(EnvTarget),
		OptLevel:    get(EnvOptLevel),
		Debug:       isTruthy(get(EnvDebug)),
		PkgConfig:   get(EnvPkgConfig),
		Verbose:     isTruthy(get(EnvVerbose)),
	}

	if stdlib, ok := lookup(EnvCxxStdlib); ok {
		config.CxxStdlib = strings.TrimSpace(stdlib)
		config.CxxStdlibSet = true
	}

	return config, nil
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// compilerCommand returns the compiler split into fields, defaulting to cl
// for MSVC targets and c++ otherwise.
func (c *BuildConfig) compilerCommand() []string {
	if fields := strings.Fields(c.Compiler); len(fields) > 0 {
		return fields
	}
	if c.isMSVCTarget() {
		return []string{"cl"}
	}
	return []string{"c++"}
}

func (c *BuildConfig) isMSVCTarget() bool {
	return strings.Contains(c.Target, "-msvc")
}

// targetOS maps the target triple to a GOOS-style name. Without a triple the
// host is assumed.
func (c *BuildConfig) targetOS() string {
	t := c.Target
	switch {
	case t == "":
		return runtime.GOOS
	case strings.Contains(t, "-windows"):
		return "windows"
	case strings.Contains(t, "-android"):
		return "android"
	case strings.Contains(t, "-apple-"):
		return "darwin"
	case strings.Contains(t, "-freebsd"):
		return "freebsd"
	case strings.Contains(t, "-openbsd"):
		return "openbsd"
	case strings.Contains(t, "-netbsd"):
		return "netbsd"
	case strings.HasPrefix(t, "wasm32"), strings.HasPrefix(t, "wasm64"):
		return "wasm"
	default:
		return "linux"
	}
}

// cxxStdlib returns the C++ runtime to link, or "" for none.
func (c *BuildConfig) cxxStdlib() string {
	if c.CxxStdlibSet {
		return c.CxxStdlib
	}
	if c.isMSVCTarget() {
		return ""
	}

	switch c.targetOS() {
	case "darwin", "freebsd", "openbsd":
		return "c++"
	case "android":
		return "c++_shared"
	case "wasm":
		return ""
	default:
		return "stdc++"
	}
}

func (c *BuildConfig) pkgConfigCommand() string {
	if c.PkgConfig != "" {
		return c.PkgConfig
	}
	return "pkg-config"
}
