// Package admxtest provides shared ADMX/ADML fixtures for pipeline tests.
//
// The fixture tree models a small vendor template set: a firewall template
// importing the base windows namespace, the windows template itself, and
// resource files for en-US and de-DE. fr-FR is deliberately absent so tests
// can exercise the missing-language path.
package admxtest

import (
	"os"
	"path/filepath"
	"testing"
)

// FirewallADMX defines the firewall namespace. It contains an on/off policy,
// a parameterized policy with a presentation, and a policy whose parent lives
// in the imported windows namespace.
const FirewallADMX = `<?xml version="1.0" encoding="utf-8"?>
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
    <category name="System" displayName="$(string.FirewallSystem)"/>
    <category name="Logging" displayName="$(string.Logging)">
      <parentCategory ref="System"/>
    </category>
  </categories>
  <policies>
    <policy name="EnableFirewall" class="Machine" displayName="$(string.EnableFirewall)"
            explainText="$(string.EnableFirewall_Help)"
            key="Software\Policies\Vendor\Firewall" valueName="EnableFirewall">
      <parentCategory ref="System"/>
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
      </elements>
    </policy>
    <policy name="NotifyUser" class="User" displayName="$(string.NotifyUser)"
            explainText="$(string.NotifyUser_Help)"
            key="Software\Policies\Vendor\Firewall" valueName="NotifyUser">
      <parentCategory ref="windows:System"/>
      <supportedOn ref="SUPPORTED_Win10"/>
      <enabledValue><decimal value="1"/></enabledValue>
      <disabledValue><decimal value="0"/></disabledValue>
    </policy>
    <policy name="Orphan" class="Machine" displayName="$(string.Orphan)"
            explainText="$(string.Orphan_Help)"
            key="Software\Policies\Vendor\Firewall" valueName="Orphan">
      <parentCategory ref="windows:DoesNotExist"/>
      <supportedOn ref="SUPPORTED_Missing"/>
      <enabledValue><decimal value="1"/></enabledValue>
      <disabledValue><decimal value="0"/></disabledValue>
    </policy>
  </policies>
</policyDefinitions>`

// WindowsADMX defines the base windows namespace with its own "System"
// category, identically named to the firewall one but under a different
// namespace.
const WindowsADMX = `<?xml version="1.0" encoding="utf-8"?>
<policyDefinitions revision="1.0" schemaVersion="1.0">
  <policyNamespaces>
    <target prefix="windows" namespace="Vendor.Policies.Windows"/>
  </policyNamespaces>
  <categories>
    <category name="System" displayName="$(string.WindowsSystem)"/>
  </categories>
  <policies/>
</policyDefinitions>`

// FirewallADMLEnUS is the English resource file for FirewallADMX.
const FirewallADMLEnUS = `<?xml version="1.0" encoding="utf-8"?>
<policyDefinitionResources revision="1.0" schemaVersion="1.0">
  <displayName>Firewall</displayName>
  <description>Firewall policy resources</description>
  <resources>
    <stringTable>
      <string id="FirewallSystem">Firewall System</string>
      <string id="Logging">Logging</string>
      <string id="EnableFirewall">Enable firewall</string>
      <string id="EnableFirewall_Help">Turns the firewall on or off.</string>
      <string id="LogLevel">Log level</string>
      <string id="LogLevel_Help">Controls how much is logged.</string>
      <string id="LogLevel_Off">Off</string>
      <string id="LogLevel_Verbose">Verbose</string>
      <string id="NotifyUser">Notify user</string>
      <string id="NotifyUser_Help">Shows a notification on blocked traffic.</string>
      <string id="Orphan">Orphaned policy</string>
      <string id="SUPPORTED_Win10">At least Windows 10</string>
    </stringTable>
    <presentationTable>
      <presentation id="LogLevel">
        <dropdownList refId="LogLevelSelect" defaultItem="0">Log level:</dropdownList>
        <decimalTextBox refId="LogSizeLimit" defaultValue="4096">Maximum log size (KB):</decimalTextBox>
        <textBox refId="LogPath"><label>Log file path:</label><defaultValue>C:\logs</defaultValue></textBox>
      </presentation>
    </presentationTable>
  </resources>
</policyDefinitionResources>`

// FirewallADMLDeDE is the German resource file. It also overrides the
// Enabled/Disabled option labels used for synthesized on/off options.
const FirewallADMLDeDE = `<?xml version="1.0" encoding="utf-8"?>
<policyDefinitionResources revision="1.0" schemaVersion="1.0">
  <displayName>Firewall</displayName>
  <description>Firewall-Richtlinienressourcen</description>
  <resources>
    <stringTable>
      <string id="FirewallSystem">Firewallsystem</string>
      <string id="Logging">Protokollierung</string>
      <string id="EnableFirewall">Firewall aktivieren</string>
      <string id="EnableFirewall_Help">Schaltet die Firewall ein oder aus.</string>
      <string id="LogLevel">Protokollstufe</string>
      <string id="LogLevel_Help">Legt den Protokollumfang fest.</string>
      <string id="LogLevel_Off">Aus</string>
      <string id="LogLevel_Verbose">Ausfuehrlich</string>
      <string id="NotifyUser">Benutzer benachrichtigen</string>
      <string id="NotifyUser_Help">Zeigt eine Benachrichtigung bei blockiertem Verkehr.</string>
      <string id="Orphan">Verwaiste Richtlinie</string>
      <string id="SUPPORTED_Win10">Mindestens Windows 10</string>
      <string id="Enabled">Aktiviert</string>
      <string id="Disabled">Deaktiviert</string>
    </stringTable>
    <presentationTable>
      <presentation id="LogLevel">
        <dropdownList refId="LogLevelSelect" defaultItem="0">Protokollstufe:</dropdownList>
        <decimalTextBox refId="LogSizeLimit" defaultValue="4096">Maximale Protokollgroesse (KB):</decimalTextBox>
        <textBox refId="LogPath"><label>Protokollpfad:</label><defaultValue>C:\logs</defaultValue></textBox>
      </presentation>
    </presentationTable>
  </resources>
</policyDefinitionResources>`

// WindowsADMLEnUS is the English resource file for WindowsADMX.
const WindowsADMLEnUS = `<?xml version="1.0" encoding="utf-8"?>
<policyDefinitionResources revision="1.0" schemaVersion="1.0">
  <displayName>Windows</displayName>
  <description>Base resources</description>
  <resources>
    <stringTable>
      <string id="WindowsSystem">System</string>
    </stringTable>
    <presentationTable/>
  </resources>
</policyDefinitionResources>`

// WriteTree materializes the fixture tree under dir:
//
//	dir/firewall.admx
//	dir/windows.admx
//	dir/en-US/firewall.adml
//	dir/en-US/windows.adml
//	dir/de-DE/firewall.adml
func WriteTree(t *testing.T, dir string) {
	t.Helper()

	files := map[string]string{
		"firewall.admx":       FirewallADMX,
		"windows.admx":        WindowsADMX,
		"en-US/firewall.adml": FirewallADMLEnUS,
		"en-US/windows.adml":  WindowsADMLEnUS,
		"de-DE/firewall.adml": FirewallADMLDeDE,
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}
