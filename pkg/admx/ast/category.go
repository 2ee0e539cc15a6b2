package ast

// Category is a node in the policy hierarchy. Categories form a forest:
// a category with an empty ParentID is top-level, including when its declared
// parent reference could not be resolved.
type Category struct {
	UniqueID         string // NamespaceURI + "::" + Name
	Name             string // Local name from the source file
	NamespaceURI     string // Target namespace of the defining file
	DisplayNameToken string // Symbolic display name, e.g. "$(string.X)"

	// Parent linkage. ParentRefRaw is the reference exactly as written,
	// ParentRefResolved is its namespace-qualified form (empty when the
	// prefix could not be resolved), and ParentID is set by hierarchy
	// resolution only when the resolved parent actually exists.
	ParentRefRaw      string
	ParentRefResolved string
	ParentID          string

	ChildrenIDs []string // Filled by hierarchy resolution
	PolicyIDs   []string // Filled by policy association

	SourceFile string // Path of the defining file
}

// IsTopLevel returns true if the category has no resolved parent and will
// therefore become a child of the synthetic root.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == ""
}

// HasDeclaredParent returns true if the source declared any parent reference,
// resolvable or not.
func (c *Category) HasDeclaredParent() bool {
	return c.ParentRefRaw != ""
}
