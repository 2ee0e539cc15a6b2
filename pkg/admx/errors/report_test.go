package errors

import (
	"strings"
	"testing"
)

func TestReport_Addf(t *testing.T) {
	report := NewReport()

	w := report.Addf(WarningDuplicateIdentifier, "a.admx", "category %q redefined", "ns::System")

	if report.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", report.Count())
	}
	if w.Type != WarningDuplicateIdentifier {
		t.Errorf("Type = %q, want %q", w.Type, WarningDuplicateIdentifier)
	}
	if w.Message != `category "ns::System" redefined` {
		t.Errorf("Message = %q", w.Message)
	}
	if w.File != "a.admx" {
		t.Errorf("File = %q, want %q", w.File, "a.admx")
	}
}

func TestReport_ByType(t *testing.T) {
	report := NewReport()
	report.Addf(WarningMissingIdentifier, "a.admx", "nameless policy")
	report.Addf(WarningUnresolvedReference, "a.admx", "no such parent")
	report.Addf(WarningUnresolvedReference, "b.admx", "no such presentation")

	if got := len(report.ByType(WarningUnresolvedReference)); got != 2 {
		t.Errorf("len(ByType(unresolved)) = %d, want 2", got)
	}
	if !report.HasType(WarningMissingIdentifier) {
		t.Error("HasType(missing_identifier) = false, want true")
	}
	if report.HasType(WarningSourceFileError) {
		t.Error("HasType(source_file_error) = true, want false")
	}

	counts := report.CountsByType()
	if counts[WarningUnresolvedReference] != 2 {
		t.Errorf("CountsByType[unresolved] = %d, want 2", counts[WarningUnresolvedReference])
	}
}

func TestReport_ToError(t *testing.T) {
	report := NewReport()
	if err := report.ToError(); err != nil {
		t.Errorf("ToError() on empty report = %v, want nil", err)
	}

	report.Addf(WarningSourceFileError, "broken.admx", "XML parsing failed")
	err := report.ToError()
	if err == nil {
		t.Fatal("ToError() = nil, want error")
	}
	if !strings.Contains(err.Error(), "broken.admx") {
		t.Errorf("Error() = %q, want it to mention the file", err.Error())
	}
}

func TestWarning_Error(t *testing.T) {
	w := &Warning{Type: WarningMissingIdentifier, Message: "nameless category", File: "x.admx"}
	want := "[missing_identifier] nameless category (x.admx)"
	if got := w.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	w = &Warning{Type: WarningMissingLanguageResources, Message: "no resources for fr-FR"}
	want = "[missing_language_resources] no resources for fr-FR"
	if got := w.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
