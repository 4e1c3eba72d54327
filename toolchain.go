package imguisys

// Family identifies the flag dialect a C++ compiler speaks.
type Family int

// Compiler families.
const (
	FamilyGeneric Family = iota
	FamilyGNU
	FamilyClang
	FamilyMSVC
)

func (f Family) String() string {
	switch f {
	case FamilyGNU:
		return "GNU"
	case FamilyClang:
		return "Clang"
	case FamilyMSVC:
		return "MSVC"
	default:
		return "Generic"
	}
}

// IsLikeGNU reports whether the family accepts GCC-style flags.
func (f Family) IsLikeGNU() bool {
	return f == FamilyGNU
}

// IsLikeClang reports whether the family is a Clang driver.
func (f Family) IsLikeClang() bool {
	return f == FamilyClang
}

// Toolchain defines the interface every compiler family must implement.
//
// A toolchain turns CompileOptions into concrete command lines. It never runs
// anything itself; CompileJob.Compile executes what the toolchain assembles.
//
// # Toolchain Lifecycle
//
//  1. CanCompile() - Factory calls this with the compiler base name
//  2. RecognizesVersion() - Factory falls back to this with `--version` output
//  3. CompileArgs() / ArchiveArgs() - CompileJob calls these per source and per library
//
// # Example Implementation
//
//	type ZigToolchain struct{}
//
//	func (t *ZigToolchain) Name() string { return "Zig" }
//
//	func (t *ZigToolchain) CanCompile(compiler string) bool {
//	    return compiler == "zig"
//	}
//
// # Thread Safety
//
// Toolchain implementations should be stateless and thread-safe.
type Toolchain interface {
	// Name returns the human-readable name of this toolchain.
	Name() string

	// Family returns the flag dialect of the compiler.
	Family() Family

	// CanCompile checks if this toolchain handles the compiler with the given
	// base name (no directory, no ".exe", lower case).
	CanCompile(compiler string) bool

	// RecognizesVersion checks the output of `<compiler> --version`.
	RecognizesVersion(versionOutput string) bool

	// DefaultArchiver is the archiver used when AR is not set.
	DefaultArchiver() string

	// LibraryFile maps a library name such as "libcimgui.a" to the file
	// name this toolchain produces.
	LibraryFile(name string) string

	// ObjectExt is the object file extension including the dot.
	ObjectExt() string

	// CompileArgs returns the arguments compiling source into object.
	CompileArgs(opts CompileOptions, source, object string) []string

	// ArchiveArgs returns the archiver arguments packing objects into library.
	ArchiveArgs(library string, objects []string) []string
}
