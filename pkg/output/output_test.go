package output

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dooblpls/json-gpo/internal/admxtest"
	"github.com/dooblpls/json-gpo/pkg/adml"
	"github.com/dooblpls/json-gpo/pkg/admx/ast"
	"github.com/dooblpls/json-gpo/pkg/admx/collector"
	"github.com/dooblpls/json-gpo/pkg/admx/errors"
	"github.com/dooblpls/json-gpo/pkg/admx/hierarchy"
	"github.com/dooblpls/json-gpo/pkg/projector"
	"github.com/dooblpls/json-gpo/pkg/telemetry/logging"
)

func fixtureSet(t *testing.T, lang string) (*ast.Arena, *projector.LanguageSet) {
	t.Helper()

	dir := t.TempDir()
	admxtest.WriteTree(t, dir)

	arena := ast.NewArena()
	if _, err := collector.New(arena, logging.Discard()).CollectDir(dir); err != nil {
		t.Fatalf("CollectDir() failed: %v", err)
	}
	hierarchy.New(arena, logging.Discard()).Resolve()

	res, ok := adml.NewLoader(arena, logging.Discard()).LoadLanguage(dir, lang)
	if !ok {
		t.Fatalf("LoadLanguage(%s) failed", lang)
	}
	return arena, projector.New(arena, logging.Discard()).Project(res)
}

func TestJSONWriter_RoundTrip(t *testing.T) {
	arena, set := fixtureSet(t, "en-US")

	out := t.TempDir()
	path, err := NewJSONWriter(out, arena.Report, logging.Discard()).Write(set)
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if path != filepath.Join(out, "en-US.json") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var got projector.LanguageSet
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.Language != "en-US" {
		t.Errorf("Language = %q", got.Language)
	}
	if len(got.AllCategories) != len(set.AllCategories) || len(got.AllPolicies) != len(set.AllPolicies) {
		t.Errorf("round-trip sizes = (%d, %d), want (%d, %d)",
			len(got.AllCategories), len(got.AllPolicies),
			len(set.AllCategories), len(set.AllPolicies))
	}
	if got.AllCategories[0].ID != projector.RootCategoryID {
		t.Errorf("first category = %q, want ROOT", got.AllCategories[0].ID)
	}
}

func TestJSONWriter_DepthCheck(t *testing.T) {
	arena, set := fixtureSet(t, "en-US")

	// The fixture tree nests two levels deep, so a limit of 1 must trip the
	// ancestry check without affecting the written output.
	out := t.TempDir()
	w := NewJSONWriter(out, arena.Report, logging.Discard()).WithMaxDepth(1)
	if _, err := w.Write(set); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if !arena.Report.HasType(errors.WarningStructuralAmbiguity) {
		t.Error("expected a depth warning")
	}
}

func TestSQLiteWriter_WriteSet(t *testing.T) {
	_, set := fixtureSet(t, "en-US")

	dbPath := filepath.Join(t.TempDir(), "policies.db")
	w, err := NewSQLiteWriter(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteWriter() failed: %v", err)
	}
	defer w.Close()

	ctx := context.Background()
	if err := w.WriteSet(ctx, set); err != nil {
		t.Fatalf("WriteSet() failed: %v", err)
	}
	// Upserts keyed by (language, id): a rerun must not duplicate rows.
	if err := w.WriteSet(ctx, set); err != nil {
		t.Fatalf("second WriteSet() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("reopening database: %v", err)
	}
	defer db.Close()

	var categories, policies int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories WHERE language = ?`, "en-US").Scan(&categories); err != nil {
		t.Fatalf("counting categories: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM policies WHERE language = ?`, "en-US").Scan(&policies); err != nil {
		t.Fatalf("counting policies: %v", err)
	}
	if categories != len(set.AllCategories) || policies != len(set.AllPolicies) {
		t.Errorf("row counts = (%d, %d), want (%d, %d)",
			categories, policies, len(set.AllCategories), len(set.AllPolicies))
	}

	var display string
	err = db.QueryRow(`SELECT display_name FROM policies WHERE language = ? AND id = ?`,
		"en-US", "Vendor.Policies.Firewall::EnableFirewall").Scan(&display)
	if err != nil {
		t.Fatalf("reading policy row: %v", err)
	}
	if display != "Enable firewall" {
		t.Errorf("display_name = %q", display)
	}
}

func TestSQLiteWriter_MultipleLanguages(t *testing.T) {
	_, en := fixtureSet(t, "en-US")
	_, de := fixtureSet(t, "de-DE")

	dbPath := filepath.Join(t.TempDir(), "policies.db")
	w, err := NewSQLiteWriter(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteWriter() failed: %v", err)
	}
	defer w.Close()

	ctx := context.Background()
	for _, set := range []*projector.LanguageSet{en, de} {
		if err := w.WriteSet(ctx, set); err != nil {
			t.Fatalf("WriteSet(%s) failed: %v", set.Language, err)
		}
	}
	w.Close()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var languages int
	if err := db.QueryRow(`SELECT COUNT(DISTINCT language) FROM policies`).Scan(&languages); err != nil {
		t.Fatal(err)
	}
	if languages != 2 {
		t.Errorf("distinct languages = %d, want 2", languages)
	}
}
