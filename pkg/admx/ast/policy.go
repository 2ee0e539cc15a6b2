package ast

// PolicyClass is the registry hive scope of a policy.
type PolicyClass string

const (
	ClassMachine PolicyClass = "Machine"
	ClassUser    PolicyClass = "User"
	ClassBoth    PolicyClass = "Both"
)

// ParsePolicyClass maps a source class attribute to a PolicyClass. Unknown
// values map to Both with ok=false; the source convention is permissive and
// an odd class must not drop the policy.
func ParsePolicyClass(raw string) (PolicyClass, bool) {
	switch raw {
	case "Machine":
		return ClassMachine, true
	case "User":
		return ClassUser, true
	case "Both":
		return ClassBoth, true
	default:
		return ClassBoth, false
	}
}

// Policy is a single policy definition. Display, explanation, supported-on
// and presentation fields are symbolic tokens resolved per language.
type Policy struct {
	UniqueID     string // NamespaceURI + "::" + Name
	Name         string
	NamespaceURI string
	Class        PolicyClass

	DisplayNameToken  string // e.g. "$(string.X)"
	ExplainTextToken  string // e.g. "$(string.X_Help)"
	SupportedOnRef    string // Raw ref into the supported-on definitions
	PresentationToken string // e.g. "$(presentation.X)"

	// ParentCategoryRefRaw is the parent reference exactly as written; it is
	// resolved during association against the prefix map of the defining
	// file. CategoryID stays empty when the reference cannot be resolved;
	// the policy is then orphaned from the tree but remains discoverable.
	ParentCategoryRefRaw string
	CategoryID           string

	Registry *RegistryData // nil when the policy carries no registry data

	SourceFile string
}

// IsOrphaned returns true if the policy could not be attached to a category.
func (p *Policy) IsOrphaned() bool {
	return p.CategoryID == ""
}
