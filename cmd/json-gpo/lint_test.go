package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dooblpls/json-gpo/internal/admxtest"
)

func runLintCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Reset flag state between runs; cobra keeps it in package vars.
	lintFlags.source = ""
	lintFlags.strict = false
	lintFlags.format = "text"
	lintFlags.maxDepth = 0

	cmd := lintCmd
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	err := runLint(cmd, nil)
	return buf.String(), err
}

func TestLint_TextOutput(t *testing.T) {
	source := t.TempDir()
	admxtest.WriteTree(t, source)

	out, err := runLintCommand(t, "--source", source)
	if err != nil {
		t.Fatalf("lint failed: %v", err)
	}
	if !strings.Contains(out, "Checked 2 definition file(s)") {
		t.Errorf("output = %q", out)
	}
	// The fixture tree contains deliberate dangling references.
	if !strings.Contains(out, "unresolved_reference") {
		t.Errorf("output missing expected warning:\n%s", out)
	}
}

func TestLint_StrictFailsOnWarnings(t *testing.T) {
	source := t.TempDir()
	admxtest.WriteTree(t, source)

	if _, err := runLintCommand(t, "--source", source, "--strict"); err == nil {
		t.Fatal("strict mode must fail on warnings")
	}
}

func TestLint_JSONOutput(t *testing.T) {
	source := t.TempDir()
	admxtest.WriteTree(t, source)

	out, err := runLintCommand(t, "--source", source, "--format", "json")
	if err != nil {
		t.Fatalf("lint failed: %v", err)
	}

	var report lintReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if report.Files != 2 || report.Policies != 4 {
		t.Errorf("report = %+v", report)
	}
	if len(report.Warnings) == 0 {
		t.Error("expected warnings in the report")
	}
}

func TestLint_EmptySourceFails(t *testing.T) {
	if _, err := runLintCommand(t, "--source", t.TempDir()); err == nil {
		t.Fatal("an empty source tree must fail the lint")
	}
}
