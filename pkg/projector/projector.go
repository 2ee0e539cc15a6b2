// Package projector produces the per-language output form of a resolved
// policy graph. Projection is read-only over the arena: every language reads
// the same immutable graph and owns its own resolved records, so projections
// can run back to back without shared mutable state.
package projector

import (
	"sort"

	"github.com/dooblpls/json-gpo/pkg/adml"
	"github.com/dooblpls/json-gpo/pkg/admx/ast"
	"github.com/dooblpls/json-gpo/pkg/admx/errors"
	"github.com/dooblpls/json-gpo/pkg/admx/namespace"
	"github.com/dooblpls/json-gpo/pkg/telemetry/logging"
)

// Display fallbacks for policies whose resource strings cannot be resolved.
const (
	fallbackExplainText = "no description"
	fallbackSupportedOn = "not specified"
)

// RootCategoryID is the id of the synthetic root node that parents every
// top-level category.
const RootCategoryID = "ROOT"

// LanguageSet is the complete projection of one language.
type LanguageSet struct {
	Language      string             `json:"language"`
	AllCategories []ResolvedCategory `json:"allCategories"`
	AllPolicies   []ResolvedPolicy   `json:"allPolicies"`
}

// ResolvedCategory is one category with display text for a single language.
type ResolvedCategory struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Parent      string   `json:"parent,omitempty"`
	Children    []string `json:"children,omitempty"`
	Policies    []string `json:"policies,omitempty"`
}

// ResolvedPolicy is one policy with display text for a single language.
type ResolvedPolicy struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Class        string                `json:"class"`
	DisplayName  string                `json:"displayName"`
	ExplainText  string                `json:"explainText"`
	SupportedOn  string                `json:"supportedOn"`
	CategoryID   string                `json:"categoryId,omitempty"`
	Registry     *ResolvedRegistry     `json:"registry,omitempty"`
	Presentation *ResolvedPresentation `json:"presentation,omitempty"`
}

// ResolvedRegistry mirrors the language-neutral registry data with a
// classified value type and display text on every option.
type ResolvedRegistry struct {
	Key           string            `json:"key,omitempty"`
	ValueName     string            `json:"valueName,omitempty"`
	Type          string            `json:"type,omitempty"`
	EnabledValue  *int64            `json:"enabledValue,omitempty"`
	DisabledValue *int64            `json:"disabledValue,omitempty"`
	Options       []ResolvedOption  `json:"options,omitempty"`
	Elements      []ResolvedElement `json:"elements,omitempty"`
}

// ResolvedOption is one selectable value with its display text.
type ResolvedOption struct {
	Value   int64  `json:"value"`
	Display string `json:"display"`
}

// ResolvedElement is one parameterized control of a policy.
type ResolvedElement struct {
	ID        string           `json:"id"`
	ValueName string           `json:"valueName,omitempty"`
	Kind      string           `json:"kind"`
	Type      string           `json:"type"`
	Options   []ResolvedOption `json:"options,omitempty"`
	MinValue  *int64           `json:"minValue,omitempty"`
	MaxValue  *int64           `json:"maxValue,omitempty"`
	MaxLength *int64           `json:"maxLength,omitempty"`
	Required  bool             `json:"required,omitempty"`
}

// ResolvedPresentation is the display layout of a parameterized policy.
type ResolvedPresentation struct {
	ID       string                `json:"id"`
	Elements []PresentationControl `json:"elements"`
}

// PresentationControl is one entry of a resolved presentation, in source
// order.
type PresentationControl struct {
	Type    string `json:"type"`
	RefID   string `json:"refId,omitempty"`
	Label   string `json:"label,omitempty"`
	Default string `json:"default,omitempty"`
}

// Projector projects one arena into per-language sets.
type Projector struct {
	arena  *ast.Arena
	logger *logging.Logger
}

// New creates a projector over a resolved arena.
func New(arena *ast.Arena, logger *logging.Logger) *Projector {
	return &Projector{arena: arena, logger: logger}
}

// Project produces the full output set for one language. The result is
// deterministic: categories are ordered as the synthetic root followed by all
// categories sorted by id, policies sorted by id.
func (p *Projector) Project(res *adml.Resources) *LanguageSet {
	set := &LanguageSet{Language: res.Language}

	root := ResolvedCategory{
		ID:          RootCategoryID,
		Name:        RootCategoryID,
		DisplayName: RootCategoryID,
	}

	catIDs := make([]string, 0, len(p.arena.Categories))
	for id := range p.arena.Categories {
		catIDs = append(catIDs, id)
	}
	sort.Strings(catIDs)

	for _, id := range catIDs {
		cat := p.arena.Categories[id]
		if cat.IsTopLevel() {
			root.Children = append(root.Children, id)
		}
	}

	set.AllCategories = append(set.AllCategories, root)
	for _, id := range catIDs {
		set.AllCategories = append(set.AllCategories, p.projectCategory(p.arena.Categories[id], res))
	}

	polIDs := make([]string, 0, len(p.arena.Policies))
	for id := range p.arena.Policies {
		polIDs = append(polIDs, id)
	}
	sort.Strings(polIDs)
	for _, id := range polIDs {
		set.AllPolicies = append(set.AllPolicies, p.projectPolicy(p.arena.Policies[id], res))
	}

	p.logger.Info("language projected",
		"language", res.Language,
		"categories", len(set.AllCategories),
		"policies", len(set.AllPolicies))
	return set
}

func (p *Projector) projectCategory(cat *ast.Category, res *adml.Resources) ResolvedCategory {
	parent := cat.ParentID
	if parent == "" {
		parent = RootCategoryID
	}
	return ResolvedCategory{
		ID:          cat.UniqueID,
		Name:        cat.Name,
		DisplayName: displayText(res, cat.DisplayNameToken, cat.Name),
		Parent:      parent,
		Children:    cat.ChildrenIDs,
		Policies:    cat.PolicyIDs,
	}
}

func (p *Projector) projectPolicy(pol *ast.Policy, res *adml.Resources) ResolvedPolicy {
	out := ResolvedPolicy{
		ID:          pol.UniqueID,
		Name:        pol.Name,
		Class:       string(pol.Class),
		DisplayName: displayText(res, pol.DisplayNameToken, pol.Name),
		ExplainText: displayText(res, pol.ExplainTextToken, fallbackExplainText),
		SupportedOn: p.supportedOnText(pol, res),
		CategoryID:  pol.CategoryID,
	}
	if pol.Registry != nil {
		out.Registry = p.projectRegistry(pol, res)
	}
	out.Presentation = p.projectPresentation(pol, res)
	return out
}

// displayText resolves a symbolic token with a fallback that also covers the
// token being absent entirely.
func displayText(res *adml.Resources, token, fallback string) string {
	if token == "" {
		return fallback
	}
	return res.Strings.Resolve(token, fallback)
}

// supportedOnText resolves a policy's platform requirement to display text.
// The reference is first routed through the collected definitions; an unknown
// definition falls back to looking the raw reference up as a string id before
// degrading to the neutral fallback.
func (p *Projector) supportedOnText(pol *ast.Policy, res *adml.Resources) string {
	ref := pol.SupportedOnRef
	if ref == "" {
		return fallbackSupportedOn
	}
	token := p.arena.ResolveSupportedOn(ref)
	if token != ref {
		return res.Strings.Resolve(token, fallbackSupportedOn)
	}
	if text, ok := res.Strings[ref]; ok {
		return text
	}
	if text := res.Strings.Resolve(ref, fallbackSupportedOn); text != ref {
		return text
	}
	return fallbackSupportedOn
}

func (p *Projector) projectRegistry(pol *ast.Policy, res *adml.Resources) *ResolvedRegistry {
	reg := pol.Registry
	out := &ResolvedRegistry{
		Key:           reg.Key,
		ValueName:     reg.ValueName,
		EnabledValue:  reg.EnabledValue,
		DisabledValue: reg.DisabledValue,
	}

	if reg.ValueName != "" {
		switch {
		case reg.HasValuePair():
			out.Type = "REG_DWORD"
			out.Options = []ResolvedOption{
				{Value: *reg.EnabledValue, Display: res.Strings.Resolve("$(string.Enabled)", "Enabled")},
				{Value: *reg.DisabledValue, Display: res.Strings.Resolve("$(string.Disabled)", "Disabled")},
			}
		default:
			// A switch without a complete on/off pair cannot be classified.
			out.Type = "Unknown"
			p.warnf(errors.WarningStructuralAmbiguity, pol.SourceFile,
				"policy %q: value name %q has an incomplete enabled/disabled pair, type is unknown",
				pol.UniqueID, reg.ValueName)
		}
	}

	for _, el := range reg.Elements {
		out.Elements = append(out.Elements, p.projectElement(el, res))
	}
	return out
}

// projectElement maps an element kind to its registry value type and resolves
// option display text.
func (p *Projector) projectElement(el ast.RegistryElement, res *adml.Resources) ResolvedElement {
	out := ResolvedElement{
		ID:        el.ID,
		ValueName: el.ValueName,
		Kind:      string(el.Kind),
		MinValue:  el.MinValue,
		MaxValue:  el.MaxValue,
		MaxLength: el.MaxLength,
		Required:  el.Required,
	}

	switch el.Kind {
	case ast.ElementText:
		out.Type = "REG_SZ"
	case ast.ElementMultiText:
		out.Type = "REG_MULTI_SZ"
	default:
		// enum, decimal, boolean all write numeric values.
		out.Type = "REG_DWORD"
	}

	if el.Kind == ast.ElementBoolean && len(el.Options) == 2 {
		// Synthesized on/off options: let a language override the labels
		// through the Enabled/Disabled string ids, like the top-level pair.
		out.Options = []ResolvedOption{
			{Value: el.Options[0].Value, Display: res.Strings.Resolve("$(string.Enabled)", el.Options[0].DisplayToken)},
			{Value: el.Options[1].Value, Display: res.Strings.Resolve("$(string.Disabled)", el.Options[1].DisplayToken)},
		}
		return out
	}

	for _, opt := range el.Options {
		out.Options = append(out.Options, ResolvedOption{
			Value:   opt.Value,
			Display: res.Strings.Resolve(opt.DisplayToken, opt.DisplayToken),
		})
	}
	return out
}

// projectPresentation looks the policy's presentation up under the policy's
// own namespace. A policy without a presentation token, or whose template was
// never loaded for this language, projects without one.
func (p *Projector) projectPresentation(pol *ast.Policy, res *adml.Resources) *ResolvedPresentation {
	id, ok := adml.ParsePresentationRef(pol.PresentationToken)
	if !ok {
		return nil
	}

	key := namespace.Qualified(pol.NamespaceURI, id)
	tmpl, ok := res.Presentations[key]
	if !ok {
		p.warnf(errors.WarningUnresolvedReference, pol.SourceFile,
			"policy %q: presentation %q not found for language %s", pol.UniqueID, key, res.Language)
		return nil
	}

	out := &ResolvedPresentation{ID: tmpl.ID}
	for _, el := range tmpl.Elements {
		out.Elements = append(out.Elements, PresentationControl{
			Type:    el.Type,
			RefID:   el.RefID,
			Label:   res.Strings.Resolve(el.LabelToken),
			Default: el.Default,
		})
	}
	return out
}

func (p *Projector) warnf(warnType errors.WarningType, file string, format string, args ...any) {
	w := p.arena.Report.Addf(warnType, file, format, args...)
	p.logger.Warn(w.Message, "type", string(w.Type), "file", w.File)
}
