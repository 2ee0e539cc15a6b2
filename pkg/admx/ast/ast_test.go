package ast

import "testing"

func TestParsePolicyClass(t *testing.T) {
	tests := []struct {
		raw    string
		want   PolicyClass
		wantOK bool
	}{
		{"Machine", ClassMachine, true},
		{"User", ClassUser, true},
		{"Both", ClassBoth, true},
		{"machine", ClassBoth, false},
		{"", ClassBoth, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParsePolicyClass(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParsePolicyClass(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRegistryData_ValuePair(t *testing.T) {
	one, zero := int64(1), int64(0)

	full := &RegistryData{EnabledValue: &one, DisabledValue: &zero}
	if !full.HasValuePair() || full.HasPartialValuePair() {
		t.Error("pair with both values should be complete, not partial")
	}

	partial := &RegistryData{EnabledValue: &one}
	if partial.HasValuePair() || !partial.HasPartialValuePair() {
		t.Error("pair with one value should be partial, not complete")
	}

	empty := &RegistryData{}
	if empty.HasValuePair() || empty.HasPartialValuePair() {
		t.Error("pair with no values should be neither complete nor partial")
	}
}

func TestArena_ResolveSupportedOn(t *testing.T) {
	arena := NewArena()
	arena.SupportedOn["SUPPORTED_Win10"] = &SupportedOnDefinition{
		Name:             "SUPPORTED_Win10",
		DisplayNameToken: "$(string.SUPPORTED_Win10)",
	}

	if got := arena.ResolveSupportedOn("SUPPORTED_Win10"); got != "$(string.SUPPORTED_Win10)" {
		t.Errorf("ResolveSupportedOn(known) = %q, want display token", got)
	}
	// Unknown refs pass through as symbolic tokens for later resolution.
	if got := arena.ResolveSupportedOn("SUPPORTED_Missing"); got != "SUPPORTED_Missing" {
		t.Errorf("ResolveSupportedOn(unknown) = %q, want raw ref", got)
	}
}

func TestCategory_IsTopLevel(t *testing.T) {
	c := &Category{UniqueID: "ns::Child", ParentRefRaw: "gone:Parent"}
	if !c.IsTopLevel() {
		t.Error("category without resolved parent should be top-level")
	}
	if !c.HasDeclaredParent() {
		t.Error("category with raw ref should report a declared parent")
	}

	c.ParentID = "ns::Parent"
	if c.IsTopLevel() {
		t.Error("category with resolved parent should not be top-level")
	}
}
