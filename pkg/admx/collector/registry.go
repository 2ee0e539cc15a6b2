package collector

import (
	"strconv"

	"github.com/dooblpls/json-gpo/pkg/admx/ast"
	"github.com/dooblpls/json-gpo/pkg/admx/errors"
	"github.com/dooblpls/json-gpo/pkg/admx/parser"
)

// buildRegistry extracts the language-neutral registry shape from a policy
// definition. Absent attributes stay nil; malformed present values are warned
// about and dropped, never guessed at. A policy carrying both a top-level
// value name and elements is preserved as-is with a warning.
func (c *Collector) buildRegistry(def *parser.PolicyDef, policyID, file string) *ast.RegistryData {
	if def.Key == "" && def.ValueName == "" && len(def.Elements) == 0 {
		return nil
	}

	reg := &ast.RegistryData{
		Key:       def.Key,
		ValueName: def.ValueName,
	}
	reg.EnabledValue = c.parseOptionalInt(def.EnabledValue, policyID, "enabledValue", file)
	reg.DisabledValue = c.parseOptionalInt(def.DisabledValue, policyID, "disabledValue", file)

	for _, el := range def.Elements {
		if element, ok := c.buildElement(&el, policyID, file); ok {
			reg.Elements = append(reg.Elements, element)
		}
	}

	if reg.ValueName != "" && len(reg.Elements) > 0 {
		c.warnf(errors.WarningStructuralAmbiguity, file,
			"policy %q carries both a top-level value name and %d element(s)",
			policyID, len(reg.Elements))
	}

	return reg
}

func (c *Collector) buildElement(el *parser.ElementDef, policyID, file string) (ast.RegistryElement, bool) {
	element := ast.RegistryElement{
		ID:        el.ID,
		ValueName: el.ValueName,
		Required:  el.Required == "true" || el.Required == "1",
	}

	switch el.Kind {
	case "enum":
		element.Kind = ast.ElementEnum
		for _, item := range el.Items {
			value := c.parseOptionalInt(item.Value, policyID, "enum item value", file)
			if value == nil {
				c.warnf(errors.WarningStructuralAmbiguity, file,
					"policy %q: enum item %q has no numeric value, skipped",
					policyID, item.DisplayName)
				continue
			}
			element.Options = append(element.Options, ast.RegistryOption{
				Value:        *value,
				DisplayToken: item.DisplayName,
			})
		}
	case "decimal":
		element.Kind = ast.ElementDecimal
		element.MinValue = c.parseOptionalInt(el.MinValue, policyID, "minValue", file)
		element.MaxValue = c.parseOptionalInt(el.MaxValue, policyID, "maxValue", file)
	case "text":
		element.Kind = ast.ElementText
		element.MaxLength = c.parseOptionalInt(el.MaxLength, policyID, "maxLength", file)
	case "boolean":
		element.Kind = ast.ElementBoolean
		trueValue := int64(1)
		falseValue := int64(0)
		if v := c.parseOptionalInt(el.TrueValue, policyID, "trueValue", file); v != nil {
			trueValue = *v
		}
		if v := c.parseOptionalInt(el.FalseValue, policyID, "falseValue", file); v != nil {
			falseValue = *v
		}
		element.Options = []ast.RegistryOption{
			{Value: trueValue, DisplayToken: "Enabled"},
			{Value: falseValue, DisplayToken: "Disabled"},
		}
	case "multiText":
		element.Kind = ast.ElementMultiText
	default:
		c.warnf(errors.WarningStructuralAmbiguity, file,
			"policy %q: unsupported element kind %q skipped", policyID, el.Kind)
		return ast.RegistryElement{}, false
	}

	return element, true
}

// parseOptionalInt parses a numeric attribute that may be absent. Absence is
// nil without comment; a present but non-numeric value is warned about and
// treated as absent.
func (c *Collector) parseOptionalInt(raw, policyID, attr, file string) *int64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.warnf(errors.WarningStructuralAmbiguity, file,
			"policy %q: %s %q is not a number, ignored", policyID, attr, raw)
		return nil
	}
	return &v
}
