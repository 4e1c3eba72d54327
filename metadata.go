package imguisys

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Metadata keys.
const (
	KeyThirdParty   = "THIRD_PARTY"
	KeyDefinePrefix = "DEFINE_"
	KeyLinkSearch   = "rustc-link-search"
	KeyLinkLib      = "rustc-link-lib"
)

// Links is the name the host build system prefixes metadata with when handing
// it to dependents (DEP_IMGUI_THIRD_PARTY).
const Links = "imgui"

// MetadataEntry is one key/value fact.
type MetadataEntry struct {
	Key   string
	Value string
}

// Metadata is an ordered list of facts for dependent build scripts. Keys may
// repeat (several link libraries).
type Metadata struct {
	entries []MetadataEntry
}

// NewMetadata returns empty metadata.
func NewMetadata() *Metadata {
	return &Metadata{}
}

// Add appends one entry.
func (m *Metadata) Add(key, value string) {
	m.entries = append(m.entries, MetadataEntry{Key: key, Value: value})
}

// AddDefines appends DEFINE_<NAME>=<value> for every define in order. A
// define without value is emitted with an empty value.
func (m *Metadata) AddDefines(set DefineSet) {
	for _, d := range set.All() {
		m.Add(KeyDefinePrefix+d.Name, d.Value)
	}
}

// Entries returns a copy of the entries in order.
func (m *Metadata) Entries() []MetadataEntry {
	return append([]MetadataEntry(nil), m.entries...)
}

// Lookup returns the first value stored under key.
func (m *Metadata) Lookup(key string) (string, bool) {
	for _, e := range m.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Lines renders the entries as cargo:KEY=VALUE lines.
func (m *Metadata) Lines() []string {
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		lines = append(lines, fmt.Sprintf("cargo:%s=%s", e.Key, e.Value))
	}
	return lines
}

// WriteTo writes one line per entry to w.
func (m *Metadata) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	for _, line := range m.Lines() {
		written, err := bw.WriteString(line + "\n")
		n += int64(written)
		if err != nil {
			return n, err
		}
	}

	return n, bw.Flush()
}

// DependencyMetadata is what a dependent build script sees of this build.
type DependencyMetadata struct {
	ThirdParty string    // Absolute path of the vendored include tree
	Defines    DefineSet // Defines, sorted by name
}

// LoadDependencyMetadata reads the metadata a dependent build script receives
// from the host build system as DEP_<LINKS>_* variables.
//
// environ is a list of KEY=VALUE strings such as os.Environ(). The host does
// not preserve emission order, so defines are sorted by name. A define with
// an empty value is returned without value.
func LoadDependencyMetadata(links string, environ []string) (*DependencyMetadata, error) {
	prefix := "DEP_" + strings.ToUpper(strings.ReplaceAll(links, "-", "_")) + "_"
	thirdPartyKey := prefix + KeyThirdParty
	definePrefix := prefix + KeyDefinePrefix

	meta := &DependencyMetadata{}
	var defines []Define
	var found bool

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}

		switch {
		case key == thirdPartyKey:
			meta.ThirdParty = value
			found = true
		case strings.HasPrefix(key, definePrefix):
			name := strings.TrimPrefix(key, definePrefix)
			if name == "" {
				continue
			}
			defines = append(defines, Define{Name: name, Value: value, HasValue: value != ""})
		}
	}

	if !found {
		return nil, fmt.Errorf("%s is not set; metadata of %s was not propagated", thirdPartyKey, links)
	}

	sort.Slice(defines, func(a, b int) bool {
		return defines[a].Name < defines[b].Name
	})
	meta.Defines = NewDefineSet(defines...)

	return meta, nil
}
