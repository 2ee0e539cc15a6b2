package parser

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleADMX = `<?xml version="1.0" encoding="utf-8"?>
<policyDefinitions revision="1.0" schemaVersion="1.0">
  <policyNamespaces>
    <target prefix="firewall" namespace="Vendor.Policies.Firewall"/>
    <using prefix="windows" namespace="Vendor.Policies.Windows"/>
  </policyNamespaces>
  <supportedOn>
    <definitions>
      <definition name="SUPPORTED_Win10" displayName="$(string.SUPPORTED_Win10)"/>
    </definitions>
  </supportedOn>
  <categories>
    <category name="Logging" displayName="$(string.Logging)">
      <parentCategory ref="windows:System"/>
    </category>
  </categories>
  <policies>
    <policy name="EnableFirewall" class="Machine" displayName="$(string.EnableFirewall)"
            explainText="$(string.EnableFirewall_Help)"
            key="Software\Policies\Vendor\Firewall" valueName="EnableFirewall">
      <parentCategory ref="Logging"/>
      <supportedOn ref="SUPPORTED_Win10"/>
      <enabledValue><decimal value="1"/></enabledValue>
      <disabledValue><decimal value="0"/></disabledValue>
    </policy>
    <policy name="LogLevel" class="Both" displayName="$(string.LogLevel)"
            explainText="$(string.LogLevel_Help)" presentation="$(presentation.LogLevel)"
            key="Software\Policies\Vendor\Firewall\Logging">
      <parentCategory ref="Logging"/>
      <supportedOn ref="SUPPORTED_Win10"/>
      <elements>
        <enum id="LogLevelSelect" valueName="LogLevel" required="true">
          <item displayName="$(string.LogLevel_Off)"><value><decimal value="0"/></value></item>
          <item displayName="$(string.LogLevel_Verbose)"><value><decimal value="2"/></value></item>
        </enum>
        <decimal id="LogSizeLimit" valueName="LogSizeLimit" minValue="1" maxValue="32767"/>
        <text id="LogPath" valueName="LogPath" maxLength="260" required="false"/>
        <list id="AllowedPorts" key="Software\Policies\Vendor\Firewall\Ports"/>
      </elements>
    </policy>
  </policies>
</policyDefinitions>`

func TestParser_ParseBytes(t *testing.T) {
	p := NewParser()
	file, err := p.ParseBytes([]byte(sampleADMX), "memory://firewall.admx")
	if err != nil {
		t.Fatalf("ParseBytes() failed: %v", err)
	}

	if file.TargetNamespace != "Vendor.Policies.Firewall" {
		t.Errorf("TargetNamespace = %q, want %q", file.TargetNamespace, "Vendor.Policies.Firewall")
	}
	if len(file.Using) != 1 || file.Using[0].Prefix != "windows" {
		t.Fatalf("Using = %+v, want one windows import", file.Using)
	}

	if len(file.SupportedOn) != 1 {
		t.Fatalf("len(SupportedOn) = %d, want 1", len(file.SupportedOn))
	}
	if file.SupportedOn[0].Name != "SUPPORTED_Win10" {
		t.Errorf("SupportedOn name = %q, want %q", file.SupportedOn[0].Name, "SUPPORTED_Win10")
	}

	if len(file.Categories) != 1 {
		t.Fatalf("len(Categories) = %d, want 1", len(file.Categories))
	}
	if file.Categories[0].ParentRef != "windows:System" {
		t.Errorf("Category parent ref = %q, want %q", file.Categories[0].ParentRef, "windows:System")
	}
}

func TestParser_ParseBytes_Policies(t *testing.T) {
	p := NewParser()
	file, err := p.ParseBytes([]byte(sampleADMX), "memory://firewall.admx")
	if err != nil {
		t.Fatalf("ParseBytes() failed: %v", err)
	}

	if len(file.Policies) != 2 {
		t.Fatalf("len(Policies) = %d, want 2", len(file.Policies))
	}

	onOff := file.Policies[0]
	if onOff.ValueName != "EnableFirewall" {
		t.Errorf("ValueName = %q, want %q", onOff.ValueName, "EnableFirewall")
	}
	if onOff.EnabledValue != "1" || onOff.DisabledValue != "0" {
		t.Errorf("value pair = (%q, %q), want (1, 0)", onOff.EnabledValue, onOff.DisabledValue)
	}
	if onOff.SupportedOnRef != "SUPPORTED_Win10" {
		t.Errorf("SupportedOnRef = %q, want %q", onOff.SupportedOnRef, "SUPPORTED_Win10")
	}

	params := file.Policies[1]
	if params.Presentation != "$(presentation.LogLevel)" {
		t.Errorf("Presentation = %q", params.Presentation)
	}
	if len(params.Elements) != 4 {
		t.Fatalf("len(Elements) = %d, want 4", len(params.Elements))
	}

	enum := params.Elements[0]
	if enum.Kind != "enum" || len(enum.Items) != 2 {
		t.Errorf("first element = %+v, want enum with 2 items", enum)
	}
	if enum.Items[1].Value != "2" {
		t.Errorf("enum item value = %q, want %q", enum.Items[1].Value, "2")
	}

	dec := params.Elements[1]
	if dec.Kind != "decimal" || dec.MinValue != "1" || dec.MaxValue != "32767" {
		t.Errorf("decimal element = %+v", dec)
	}

	// The unsupported list kind is carried through for the collector to warn on.
	if params.Elements[3].Kind != "list" {
		t.Errorf("last element kind = %q, want %q", params.Elements[3].Kind, "list")
	}
}

func TestParser_ParseBytes_InvalidXML(t *testing.T) {
	p := NewParser()
	_, err := p.ParseBytes([]byte("<policyDefinitions><unclosed></policyDefinitions>"), "memory://broken.admx")
	if err == nil {
		t.Error("ParseBytes() should fail on malformed XML")
	}
}

func TestParser_WithMaxFileSize(t *testing.T) {
	p := NewParser().WithMaxFileSize(16)
	_, err := p.ParseBytes([]byte(sampleADMX), "memory://large.admx")
	if err == nil {
		t.Error("ParseBytes() should fail when data exceeds size limit")
	}
}

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "firewall.admx")
	if err := os.WriteFile(path, []byte(sampleADMX), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewParser()
	file, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}
	if file.Path != path {
		t.Errorf("Path = %q, want %q", file.Path, path)
	}

	if _, err := p.ParseFile(filepath.Join(dir, "missing.admx")); err == nil {
		t.Error("ParseFile() should fail on missing file")
	}
}
