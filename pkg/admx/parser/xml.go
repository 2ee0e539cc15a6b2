package parser

import "encoding/xml"

// xmlDocument mirrors the ADMX document structure for decoding. Attributes
// are kept as written; interpretation (number parsing, class mapping,
// reference resolution) belongs to the collector, which can warn on
// malformed values without aborting the file.
type xmlDocument struct {
	XMLName          xml.Name            `xml:"policyDefinitions"`
	Revision         string              `xml:"revision,attr"`
	SchemaVersion    string              `xml:"schemaVersion,attr"`
	PolicyNamespaces xmlPolicyNamespaces `xml:"policyNamespaces"`
	SupportedOn      xmlSupportedOn      `xml:"supportedOn"`
	Categories       []xmlCategory       `xml:"categories>category"`
	Policies         []xmlPolicy         `xml:"policies>policy"`
}

type xmlPolicyNamespaces struct {
	Target xmlNamespaceDecl   `xml:"target"`
	Using  []xmlNamespaceDecl `xml:"using"`
}

type xmlNamespaceDecl struct {
	Prefix    string `xml:"prefix,attr"`
	Namespace string `xml:"namespace,attr"`
}

type xmlSupportedOn struct {
	Definitions []xmlSupportedOnDef `xml:"definitions>definition"`
}

type xmlSupportedOnDef struct {
	Name        string `xml:"name,attr"`
	DisplayName string `xml:"displayName,attr"`
}

type xmlCategory struct {
	Name        string  `xml:"name,attr"`
	DisplayName string  `xml:"displayName,attr"`
	Parent      *xmlRef `xml:"parentCategory"`
}

// xmlRef is a reference element carrying only a ref attribute, used for
// parentCategory and supportedOn.
type xmlRef struct {
	Ref string `xml:"ref,attr"`
}

type xmlPolicy struct {
	Name         string `xml:"name,attr"`
	Class        string `xml:"class,attr"`
	DisplayName  string `xml:"displayName,attr"`
	ExplainText  string `xml:"explainText,attr"`
	Presentation string `xml:"presentation,attr"`
	Key          string `xml:"key,attr"`
	ValueName    string `xml:"valueName,attr"`

	Parent      *xmlRef `xml:"parentCategory"`
	SupportedOn *xmlRef `xml:"supportedOn"`

	EnabledValue  *xmlValue    `xml:"enabledValue"`
	DisabledValue *xmlValue    `xml:"disabledValue"`
	Elements      *xmlElements `xml:"elements"`
}

// xmlValue wraps the typed value node inside enabledValue/disabledValue.
// Only decimal values participate in the on/off switch convention.
type xmlValue struct {
	Decimal *xmlDecimalValue `xml:"decimal"`
}

type xmlDecimalValue struct {
	Value string `xml:"value,attr"`
}

type xmlElements struct {
	Enums      []xmlEnumElement      `xml:"enum"`
	Decimals   []xmlDecimalElement   `xml:"decimal"`
	Texts      []xmlTextElement      `xml:"text"`
	Booleans   []xmlBooleanElement   `xml:"boolean"`
	MultiTexts []xmlMultiTextElement `xml:"multiText"`
	Lists      []xmlListElement      `xml:"list"`
}

type xmlEnumElement struct {
	ID        string        `xml:"id,attr"`
	ValueName string        `xml:"valueName,attr"`
	Required  string        `xml:"required,attr"`
	Items     []xmlEnumItem `xml:"item"`
}

type xmlEnumItem struct {
	DisplayName string    `xml:"displayName,attr"`
	Value       *xmlValue `xml:"value"`
}

type xmlDecimalElement struct {
	ID        string `xml:"id,attr"`
	ValueName string `xml:"valueName,attr"`
	MinValue  string `xml:"minValue,attr"`
	MaxValue  string `xml:"maxValue,attr"`
	Required  string `xml:"required,attr"`
}

type xmlTextElement struct {
	ID        string `xml:"id,attr"`
	ValueName string `xml:"valueName,attr"`
	MaxLength string `xml:"maxLength,attr"`
	Required  string `xml:"required,attr"`
}

type xmlBooleanElement struct {
	ID         string    `xml:"id,attr"`
	ValueName  string    `xml:"valueName,attr"`
	TrueValue  *xmlValue `xml:"trueValue"`
	FalseValue *xmlValue `xml:"falseValue"`
}

type xmlMultiTextElement struct {
	ID        string `xml:"id,attr"`
	ValueName string `xml:"valueName,attr"`
	Required  string `xml:"required,attr"`
}

type xmlListElement struct {
	ID  string `xml:"id,attr"`
	Key string `xml:"key,attr"`
}
