package parser

// File is the parsed structure of one ADMX source file. All values are kept
// exactly as written; nothing is resolved or validated beyond XML
// well-formedness.
type File struct {
	Path string

	// Namespace declarations. TargetNamespace may be empty, in which case
	// the file cannot be processed and the collector skips it.
	TargetPrefix    string
	TargetNamespace string
	Using           []NamespaceUse

	SupportedOn []SupportedOnDef
	Categories  []CategoryDef
	Policies    []PolicyDef
}

// NamespaceUse is one "using" namespace import.
type NamespaceUse struct {
	Prefix string
	URI    string
}

// SupportedOnDef is one supported-on definition as written.
type SupportedOnDef struct {
	Name        string
	DisplayName string
}

// CategoryDef is one category definition as written.
type CategoryDef struct {
	Name        string
	DisplayName string
	ParentRef   string // empty when no parentCategory element is present
}

// PolicyDef is one policy definition as written. Numeric attributes stay as
// strings; the collector parses them and warns on malformed present values.
type PolicyDef struct {
	Name         string
	Class        string
	DisplayName  string
	ExplainText  string
	Presentation string
	Key          string
	ValueName    string

	ParentRef      string
	SupportedOnRef string

	EnabledValue  string // decimal value attribute, empty when absent
	DisabledValue string

	Elements []ElementDef
}

// ElementDef is one registry element as written. Kind is the source element
// name; fields not applicable to a kind are empty.
type ElementDef struct {
	Kind      string
	ID        string
	ValueName string
	Required  string

	Items []EnumItemDef // enum

	MinValue  string // decimal
	MaxValue  string // decimal
	MaxLength string // text

	TrueValue  string // boolean
	FalseValue string // boolean
}

// EnumItemDef is one enum item as written.
type EnumItemDef struct {
	DisplayName string
	Value       string
}
