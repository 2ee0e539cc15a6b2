package hierarchy

import (
	"slices"
	"testing"

	"github.com/dooblpls/json-gpo/internal/admxtest"
	"github.com/dooblpls/json-gpo/pkg/admx/ast"
	"github.com/dooblpls/json-gpo/pkg/admx/collector"
	"github.com/dooblpls/json-gpo/pkg/admx/errors"
	"github.com/dooblpls/json-gpo/pkg/telemetry/logging"
)

func resolvedFixtures(t *testing.T) *ast.Arena {
	t.Helper()

	dir := t.TempDir()
	admxtest.WriteTree(t, dir)

	arena := ast.NewArena()
	if _, err := collector.New(arena, logging.Discard()).CollectDir(dir); err != nil {
		t.Fatalf("CollectDir() failed: %v", err)
	}
	New(arena, logging.Discard()).Resolve()
	return arena
}

func TestResolver_CategoryLinks(t *testing.T) {
	arena := resolvedFixtures(t)

	system := arena.Categories["Vendor.Policies.Firewall::System"]
	logCat := arena.Categories["Vendor.Policies.Firewall::Logging"]

	if logCat.ParentID != system.UniqueID {
		t.Errorf("Logging.ParentID = %q, want %q", logCat.ParentID, system.UniqueID)
	}
	if !slices.Contains(system.ChildrenIDs, logCat.UniqueID) {
		t.Errorf("System.ChildrenIDs = %v, want to contain Logging", system.ChildrenIDs)
	}
	if !system.IsTopLevel() {
		t.Error("firewall System should be top-level")
	}
}

func TestResolver_CrossNamespaceAssociation(t *testing.T) {
	arena := resolvedFixtures(t)

	// NotifyUser's parent ref is "windows:System", defined in firewall.admx;
	// it must resolve through that file's prefix map into the windows
	// namespace, not the policy's own.
	pol := arena.Policies["Vendor.Policies.Firewall::NotifyUser"]
	if pol.CategoryID != "Vendor.Policies.Windows::System" {
		t.Errorf("CategoryID = %q, want windows System", pol.CategoryID)
	}
	winSystem := arena.Categories["Vendor.Policies.Windows::System"]
	if !slices.Contains(winSystem.PolicyIDs, pol.UniqueID) {
		t.Errorf("windows System PolicyIDs = %v, want to contain NotifyUser", winSystem.PolicyIDs)
	}
}

func TestResolver_DanglingPolicyParent(t *testing.T) {
	arena := resolvedFixtures(t)

	// Orphan's parent points at a nonexistent category: the policy stays in
	// the global map with no category, and a warning is recorded.
	pol := arena.Policies["Vendor.Policies.Firewall::Orphan"]
	if pol == nil {
		t.Fatal("orphaned policy must be retained")
	}
	if !pol.IsOrphaned() {
		t.Errorf("CategoryID = %q, want empty", pol.CategoryID)
	}
	if !arena.Report.HasType(errors.WarningUnresolvedReference) {
		t.Error("expected an unresolved_reference warning")
	}
}

func TestResolver_DanglingCategoryParent(t *testing.T) {
	arena := ast.NewArena()
	arena.Categories["ns::Child"] = &ast.Category{
		UniqueID:          "ns::Child",
		Name:              "Child",
		NamespaceURI:      "ns",
		ParentRefRaw:      "Gone",
		ParentRefResolved: "ns::Gone",
	}

	New(arena, logging.Discard()).Resolve()

	child := arena.Categories["ns::Child"]
	if !child.IsTopLevel() {
		t.Errorf("ParentID = %q, want empty (degrade to top-level)", child.ParentID)
	}
	if !arena.Report.HasType(errors.WarningUnresolvedReference) {
		t.Error("expected an unresolved_reference warning")
	}
}

func TestResolver_Idempotent(t *testing.T) {
	arena := resolvedFixtures(t)

	system := arena.Categories["Vendor.Policies.Firewall::System"]
	children := slices.Clone(system.ChildrenIDs)
	policies := slices.Clone(system.PolicyIDs)

	// A second full pass must not duplicate any link.
	New(arena, logging.Discard()).Resolve()

	if !slices.Equal(system.ChildrenIDs, children) {
		t.Errorf("ChildrenIDs changed on rerun: %v != %v", system.ChildrenIDs, children)
	}
	if !slices.Equal(system.PolicyIDs, policies) {
		t.Errorf("PolicyIDs changed on rerun: %v != %v", system.PolicyIDs, policies)
	}
}

func TestResolver_BreakCycles(t *testing.T) {
	arena := ast.NewArena()
	// A <-> B parent cycle.
	arena.Categories["ns::A"] = &ast.Category{
		UniqueID: "ns::A", Name: "A", NamespaceURI: "ns",
		ParentRefRaw: "B", ParentRefResolved: "ns::B",
	}
	arena.Categories["ns::B"] = &ast.Category{
		UniqueID: "ns::B", Name: "B", NamespaceURI: "ns",
		ParentRefRaw: "A", ParentRefResolved: "ns::A",
	}

	New(arena, logging.Discard()).Resolve()

	a := arena.Categories["ns::A"]
	b := arena.Categories["ns::B"]

	// Exactly one of the two links is cut; the other survives.
	topLevel := 0
	if a.IsTopLevel() {
		topLevel++
	}
	if b.IsTopLevel() {
		topLevel++
	}
	if topLevel != 1 {
		t.Errorf("top-level count after cycle break = %d, want 1 (a=%+v b=%+v)", topLevel, a, b)
	}
	if !arena.Report.HasType(errors.WarningStructuralAmbiguity) {
		t.Error("expected a structural_ambiguity warning for the cycle")
	}
}

func TestResolver_SelfParent(t *testing.T) {
	arena := ast.NewArena()
	arena.Categories["ns::Self"] = &ast.Category{
		UniqueID: "ns::Self", Name: "Self", NamespaceURI: "ns",
		ParentRefRaw: "Self", ParentRefResolved: "ns::Self",
	}

	New(arena, logging.Discard()).Resolve()

	if !arena.Categories["ns::Self"].IsTopLevel() {
		t.Error("self-parent cycle must be cut")
	}
}

func TestResolver_MaxDepth(t *testing.T) {
	arena := ast.NewArena()
	// Chain deeper than the limit: C0 <- C1 <- C2 <- C3.
	ids := []string{"ns::C0", "ns::C1", "ns::C2", "ns::C3"}
	for i, id := range ids {
		cat := &ast.Category{UniqueID: id, NamespaceURI: "ns"}
		if i > 0 {
			cat.ParentRefResolved = ids[i-1]
		}
		arena.Categories[id] = cat
	}

	New(arena, logging.Discard()).WithMaxDepth(2).Resolve()

	if !arena.Report.HasType(errors.WarningStructuralAmbiguity) {
		t.Error("expected a depth warning")
	}
}
