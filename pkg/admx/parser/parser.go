// Package parser reads ADMX policy-template files into their parsed
// structure. It handles XML decoding only; reference resolution, duplicate
// detection, and registry interpretation happen in the collector.
package parser

import (
	"encoding/xml"
	"fmt"
	"os"
)

// Parser parses ADMX source files.
type Parser struct {
	maxFileSize int64 // Maximum file size in bytes (default: 10MB)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: 10 * 1024 * 1024, // 10MB
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// ParseFile parses the ADMX file at the given path. It returns an error if
// the file cannot be read, exceeds the size limit, or is not well-formed XML.
// The caller treats any error as a source-file warning and skips the file.
func (p *Parser) ParseFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access file: %w", err)
	}
	if info.Size() > p.maxFileSize {
		return nil, fmt.Errorf("file size %d exceeds maximum %d bytes", info.Size(), p.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return p.ParseBytes(data, path)
}

// ParseBytes parses ADMX content from a byte slice. This is useful for
// testing or parsing definitions from memory.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*File, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, fmt.Errorf("data size %d exceeds maximum %d bytes", len(data), p.maxFileSize)
	}

	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("XML parsing failed: %w", err)
	}

	return buildFile(&doc, sourcePath), nil
}

// buildFile flattens the decoded document into the exported File shape.
func buildFile(doc *xmlDocument, path string) *File {
	f := &File{
		Path:            path,
		TargetPrefix:    doc.PolicyNamespaces.Target.Prefix,
		TargetNamespace: doc.PolicyNamespaces.Target.Namespace,
	}

	for _, u := range doc.PolicyNamespaces.Using {
		f.Using = append(f.Using, NamespaceUse{Prefix: u.Prefix, URI: u.Namespace})
	}

	for _, d := range doc.SupportedOn.Definitions {
		f.SupportedOn = append(f.SupportedOn, SupportedOnDef{
			Name:        d.Name,
			DisplayName: d.DisplayName,
		})
	}

	for _, c := range doc.Categories {
		def := CategoryDef{Name: c.Name, DisplayName: c.DisplayName}
		if c.Parent != nil {
			def.ParentRef = c.Parent.Ref
		}
		f.Categories = append(f.Categories, def)
	}

	for _, pol := range doc.Policies {
		def := PolicyDef{
			Name:         pol.Name,
			Class:        pol.Class,
			DisplayName:  pol.DisplayName,
			ExplainText:  pol.ExplainText,
			Presentation: pol.Presentation,
			Key:          pol.Key,
			ValueName:    pol.ValueName,
		}
		if pol.Parent != nil {
			def.ParentRef = pol.Parent.Ref
		}
		if pol.SupportedOn != nil {
			def.SupportedOnRef = pol.SupportedOn.Ref
		}
		def.EnabledValue = decimalValue(pol.EnabledValue)
		def.DisabledValue = decimalValue(pol.DisabledValue)
		if pol.Elements != nil {
			def.Elements = buildElements(pol.Elements)
		}
		f.Policies = append(f.Policies, def)
	}

	return f
}

func decimalValue(v *xmlValue) string {
	if v == nil || v.Decimal == nil {
		return ""
	}
	return v.Decimal.Value
}

// buildElements flattens every element kind into ElementDef records. The
// "list" kind is carried through so the collector can report it as
// unsupported rather than silently dropping it.
func buildElements(els *xmlElements) []ElementDef {
	var defs []ElementDef

	for _, e := range els.Enums {
		def := ElementDef{
			Kind:      "enum",
			ID:        e.ID,
			ValueName: e.ValueName,
			Required:  e.Required,
		}
		for _, item := range e.Items {
			def.Items = append(def.Items, EnumItemDef{
				DisplayName: item.DisplayName,
				Value:       decimalValue(item.Value),
			})
		}
		defs = append(defs, def)
	}

	for _, e := range els.Decimals {
		defs = append(defs, ElementDef{
			Kind:      "decimal",
			ID:        e.ID,
			ValueName: e.ValueName,
			MinValue:  e.MinValue,
			MaxValue:  e.MaxValue,
			Required:  e.Required,
		})
	}

	for _, e := range els.Texts {
		defs = append(defs, ElementDef{
			Kind:      "text",
			ID:        e.ID,
			ValueName: e.ValueName,
			MaxLength: e.MaxLength,
			Required:  e.Required,
		})
	}

	for _, e := range els.Booleans {
		defs = append(defs, ElementDef{
			Kind:       "boolean",
			ID:         e.ID,
			ValueName:  e.ValueName,
			TrueValue:  decimalValue(e.TrueValue),
			FalseValue: decimalValue(e.FalseValue),
		})
	}

	for _, e := range els.MultiTexts {
		defs = append(defs, ElementDef{
			Kind:      "multiText",
			ID:        e.ID,
			ValueName: e.ValueName,
			Required:  e.Required,
		})
	}

	for _, e := range els.Lists {
		defs = append(defs, ElementDef{
			Kind: "list",
			ID:   e.ID,
		})
	}

	return defs
}
