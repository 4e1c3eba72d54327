package imguisys

// Define is one preprocessor symbol. HasValue distinguishes "-DNAME" from
// "-DNAME=".
type Define struct {
	Name     string
	Value    string
	HasValue bool
}

// DefineSet is an ordered, immutable list of defines.
//
// The same DefineSet value is handed to the compile step and to metadata
// emission, so the library and its consumers agree on every symbol.
type DefineSet struct {
	defines []Define
}

// NewDefineSet returns a set holding defs in order.
func NewDefineSet(defs ...Define) DefineSet {
	return DefineSet{defines: append([]Define(nil), defs...)}
}

// BaseDefines returns the defines every build uses.
func BaseDefines() DefineSet {
	return NewDefineSet(
		// Rust char is a 32-bit unicode scalar value.
		Define{Name: "IMGUI_USE_WCHAR32"},
		// Exporting symbols breaks static linking.
		Define{Name: "CIMGUI_NO_EXPORT"},
		Define{Name: "IMGUI_DISABLE_WIN32_FUNCTIONS"},
		Define{Name: "IMGUI_DISABLE_OSX_FUNCTIONS"},
	)
}

// With returns a new set with name appended. A nil value means no value.
func (s DefineSet) With(name string, value *string) DefineSet {
	d := Define{Name: name}
	if value != nil {
		d.Value = *value
		d.HasValue = true
	}

	out := make([]Define, 0, len(s.defines)+1)
	out = append(out, s.defines...)
	out = append(out, d)
	return DefineSet{defines: out}
}

// All returns a copy of the defines in order.
func (s DefineSet) All() []Define {
	return append([]Define(nil), s.defines...)
}

// Len returns the number of defines.
func (s DefineSet) Len() int {
	return len(s.defines)
}

// Has reports whether name is defined.
func (s DefineSet) Has(name string) bool {
	for _, d := range s.defines {
		if d.Name == name {
			return true
		}
	}
	return false
}
