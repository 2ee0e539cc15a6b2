// Package errors provides the warning taxonomy and accumulating report for
// template conversion runs.
//
// Nothing the pipeline encounters in a single source file is fatal: malformed
// files are skipped, duplicate identifiers are overwritten, and unresolvable
// references degrade to unresolved fields. Every such event is recorded as a
// Warning in a Report and surfaced to the operator at the end of the run.
//
// # Warning Types
//
// WarningMissingIdentifier: a definition lacks its required name (skipped)
//
// WarningDuplicateIdentifier: two definitions share a unique id (last write wins)
//
// WarningUnresolvedReference: a parent, supported-on, or presentation
// reference cannot be found (dependent field left unresolved)
//
// WarningStructuralAmbiguity: a policy carries both a top-level value and
// elements, a partial enabled/disabled pair, or a parent cycle
//
// WarningSourceFileError: a source file fails to parse (file skipped)
//
// WarningMissingLanguageResources: no resource files exist for a requested
// language (language skipped)
//
// # Basic Usage
//
// Accumulate warnings during a run:
//
//	report := errors.NewReport()
//	report.Addf(errors.WarningDuplicateIdentifier, "firewall.admx",
//	    "category %q redefined, keeping later definition", id)
//
//	if report.HasWarnings() {
//	    fmt.Println(report.Summary())
//	}
package errors
