package ast

// SupportedOnDefinition names a platform requirement that policies reference
// by bare name. By source convention these are keyed globally by Name, not
// namespace-qualified, and the first definition wins on duplicates.
type SupportedOnDefinition struct {
	Name             string
	DisplayNameToken string
	SourceFile       string
}

// PresentationTemplate is the structural form of a presentation collected
// from a source file, keyed by "namespaceURI::presentationID". Label text is
// symbolic; the per-language stage produces the resolved display form.
type PresentationTemplate struct {
	ID           string
	NamespaceURI string
	Elements     []PresentationElement
}

// PresentationElement is one typed entry of a presentation template.
type PresentationElement struct {
	Type       string // dropdownList, textBox, checkBox, decimalTextBox, ...
	RefID      string // Element this entry parameterizes (may be empty for literal text)
	LabelToken string // Symbolic label, resolved per language
	Default    string // Default value as written in the source
}
