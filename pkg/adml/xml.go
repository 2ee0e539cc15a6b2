package adml

import (
	"encoding/xml"
	"strings"
)

// xmlResourceFile mirrors the ADML document structure for decoding.
type xmlResourceFile struct {
	XMLName       xml.Name          `xml:"policyDefinitionResources"`
	DisplayName   string            `xml:"displayName"`
	Description   string            `xml:"description"`
	Strings       []xmlString       `xml:"resources>stringTable>string"`
	Presentations []xmlPresentation `xml:"resources>presentationTable>presentation"`
}

type xmlString struct {
	ID    string `xml:"id,attr"`
	Value string `xml:",chardata"`
}

// xmlPresentation decodes one presentation with its children in document
// order. The element kinds are heterogeneous, so decoding walks the token
// stream instead of relying on per-kind struct fields, which would lose the
// ordering.
type xmlPresentation struct {
	ID       string
	Elements []xmlPresentationElement
}

type xmlPresentationElement struct {
	Type    string
	RefID   string
	Label   string
	Default string
}

func (p *xmlPresentation) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "id" {
			p.ID = attr.Value
		}
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el, err := decodePresentationElement(d, t)
			if err != nil {
				return err
			}
			p.Elements = append(p.Elements, el)
		case xml.EndElement:
			return nil
		}
	}
}

func decodePresentationElement(d *xml.Decoder, start xml.StartElement) (xmlPresentationElement, error) {
	el := xmlPresentationElement{Type: start.Name.Local}

	switch start.Name.Local {
	case "text":
		// Literal text between controls; no reference, no default.
		var content string
		if err := d.DecodeElement(&content, &start); err != nil {
			return el, err
		}
		el.Label = strings.TrimSpace(content)

	case "textBox", "multiTextBox":
		// Label and default live in child elements.
		var box struct {
			RefID   string `xml:"refId,attr"`
			Label   string `xml:"label"`
			Default string `xml:"defaultValue"`
		}
		if err := d.DecodeElement(&box, &start); err != nil {
			return el, err
		}
		el.RefID = box.RefID
		el.Label = strings.TrimSpace(box.Label)
		el.Default = box.Default

	default:
		// dropdownList, decimalTextBox, checkBox, comboBox, listBox: the
		// label is character data and the default is one of several
		// kind-specific attributes.
		var generic struct {
			RefID          string `xml:"refId,attr"`
			DefaultValue   string `xml:"defaultValue,attr"`
			DefaultItem    string `xml:"defaultItem,attr"`
			DefaultChecked string `xml:"defaultChecked,attr"`
			Label          string `xml:",chardata"`
		}
		if err := d.DecodeElement(&generic, &start); err != nil {
			return el, err
		}
		el.RefID = generic.RefID
		el.Label = strings.TrimSpace(generic.Label)
		switch {
		case generic.DefaultValue != "":
			el.Default = generic.DefaultValue
		case generic.DefaultItem != "":
			el.Default = generic.DefaultItem
		case generic.DefaultChecked != "":
			el.Default = generic.DefaultChecked
		}
	}

	return el, nil
}
