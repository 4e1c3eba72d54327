package imguisys

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestMetadataLines(t *testing.T) {
	one := "1"
	meta := NewMetadata()
	meta.Add(KeyThirdParty, "/out/include")
	meta.AddDefines(NewDefineSet(Define{Name: "CIMGUI_NO_EXPORT"}).With("IMGUI_USER_CONFIG", &one))
	meta.Add(KeyLinkLib, "static=cimgui")

	expected := []string{
		"cargo:THIRD_PARTY=/out/include",
		"cargo:DEFINE_CIMGUI_NO_EXPORT=",
		"cargo:DEFINE_IMGUI_USER_CONFIG=1",
		"cargo:rustc-link-lib=static=cimgui",
	}
	if got := meta.Lines(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	var buf bytes.Buffer
	n, err := meta.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	want := strings.Join(expected, "\n") + "\n"
	if buf.String() != want || n != int64(len(want)) {
		t.Errorf("unexpected output (%d bytes):\n%s", n, buf.String())
	}
}

func TestMetadataLookup(t *testing.T) {
	meta := NewMetadata()
	meta.Add(KeyLinkSearch, "native=/a")
	meta.Add(KeyLinkSearch, "native=/b")

	if v, ok := meta.Lookup(KeyLinkSearch); !ok || v != "native=/a" {
		t.Errorf("expected first value, got %q, %v", v, ok)
	}
	if _, ok := meta.Lookup(KeyThirdParty); ok {
		t.Error("unexpected THIRD_PARTY")
	}
	if len(meta.Entries()) != 2 {
		t.Errorf("repeated keys must be kept: %v", meta.Entries())
	}
}

func TestLoadDependencyMetadata(t *testing.T) {
	environ := []string{
		"PATH=/usr/bin",
		"DEP_IMGUI_DEFINE_IMGUI_USE_WCHAR32=",
		"DEP_IMGUI_THIRD_PARTY=/out/include",
		"DEP_IMGUI_DEFINE_CIMGUI_NO_EXPORT=",
		"DEP_IMGUI_DEFINE_IMGUI_USER_CONFIG=\"my_config.h\"",
		"DEP_OTHER_THIRD_PARTY=/elsewhere",
	}

	meta, err := LoadDependencyMetadata(Links, environ)
	if err != nil {
		t.Fatalf("LoadDependencyMetadata failed: %v", err)
	}

	if meta.ThirdParty != "/out/include" {
		t.Errorf("unexpected THIRD_PARTY %s", meta.ThirdParty)
	}

	expected := []Define{
		{Name: "CIMGUI_NO_EXPORT"},
		{Name: "IMGUI_USER_CONFIG", Value: "\"my_config.h\"", HasValue: true},
		{Name: "IMGUI_USE_WCHAR32"},
	}
	if got := meta.Defines.All(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestLoadDependencyMetadataMissing(t *testing.T) {
	_, err := LoadDependencyMetadata(Links, []string{"DEP_IMGUI_DEFINE_CIMGUI_NO_EXPORT="})
	if err == nil || !strings.Contains(err.Error(), "DEP_IMGUI_THIRD_PARTY") {
		t.Errorf("expected missing THIRD_PARTY error, got %v", err)
	}
}
