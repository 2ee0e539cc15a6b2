package ast

// RegistryData is the language-neutral registry shape of a policy: where the
// policy writes and what values it writes. Option display text stays symbolic
// until projection.
//
// A policy may carry both a top-level ValueName (a simple on/off switch) and
// a non-empty Elements list (parameterized controls). That is a valid, if
// ambiguous, source state; it is preserved as-is and flagged during
// projection, never merged away.
type RegistryData struct {
	Key       string
	ValueName string

	// EnabledValue/DisabledValue are the paired numeric values written for
	// the on/off switch. Either may be absent; the pair is only meaningful
	// when both are present.
	EnabledValue  *int64
	DisabledValue *int64

	Elements []RegistryElement
}

// HasValuePair returns true if both the enabled and disabled values are
// present.
func (r *RegistryData) HasValuePair() bool {
	return r.EnabledValue != nil && r.DisabledValue != nil
}

// HasPartialValuePair returns true if exactly one of the pair is present.
func (r *RegistryData) HasPartialValuePair() bool {
	return (r.EnabledValue != nil) != (r.DisabledValue != nil)
}

// ElementKind identifies the control type of a registry element.
type ElementKind string

const (
	ElementEnum      ElementKind = "enum"
	ElementDecimal   ElementKind = "decimal"
	ElementText      ElementKind = "text"
	ElementBoolean   ElementKind = "boolean"
	ElementMultiText ElementKind = "multiText"
)

// RegistryElement is one child control of a parameterized policy.
// Fields are nullable by construction: absence in the source is represented
// as nil, never as a zero value guess.
type RegistryElement struct {
	ID        string
	ValueName string
	Kind      ElementKind

	Options []RegistryOption // enum/boolean only

	MinValue  *int64 // decimal only
	MaxValue  *int64 // decimal only
	MaxLength *int64 // text only

	Required bool
}

// RegistryOption is one selectable value of an enum or boolean element.
// DisplayToken is symbolic until projection.
type RegistryOption struct {
	Value        int64
	DisplayToken string
}
