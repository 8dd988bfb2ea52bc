package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/keytone/midikeys/sdk/contracts"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `{
		"notes": [
			{"key": 30, "note": 60},
			{"key": 31, "note": 64, "channel": 9}
		],
		"modifiers": [
			{"key": 29, "action": "sustain"},
			{"key": 60, "action": "octave-up"}
		]
	}`)

	table, modifiers, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if got := table.Len(); got != 2 {
		t.Errorf("table.Len() = %d, want 2", got)
	}

	m, ok := table.Lookup(31)
	if !ok {
		t.Fatal("Lookup(31) missed")
	}
	if m.BaseNote != 64 || m.Channel != 9 {
		t.Errorf("Lookup(31) = %+v, want note 64 channel 9", m)
	}

	if _, ok := table.Lookup(99); ok {
		t.Error("Lookup(99) hit for an unmapped key")
	}

	if got := modifiers[29]; got != contracts.ModifierSustain {
		t.Errorf("modifier for key 29 = %v, want sustain", got)
	}
	if got := modifiers[60]; got != contracts.ModifierOctaveUp {
		t.Errorf("modifier for key 60 = %v, want octave-up", got)
	}
}

func TestLoadFileRejectsInvalidConfigs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"note out of range", `{"notes": [{"key": 30, "note": 200}]}`},
		{"channel out of range", `{"notes": [{"key": 30, "note": 60, "channel": 16}]}`},
		{"duplicate note key", `{"notes": [{"key": 30, "note": 60}, {"key": 30, "note": 62}]}`},
		{"note key reused as modifier", `{"notes": [{"key": 30, "note": 60}], "modifiers": [{"key": 30, "action": "sustain"}]}`},
		{"unknown action", `{"notes": [], "modifiers": [{"key": 29, "action": "hyperspace"}]}`},
		{"malformed json", `{"notes": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, _, err := LoadFile(path); err == nil {
				t.Error("LoadFile() accepted an invalid config")
			}
		})
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	if _, _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("LoadFile() accepted a missing file")
	}
}

func TestDefaultLayoutIsValid(t *testing.T) {
	table := Default()
	if table.Len() == 0 {
		t.Fatal("default table is empty")
	}

	// The default layout spans C4..F#5 on channel 0.
	m, ok := table.Lookup(30)
	if !ok || m.BaseNote != 60 {
		t.Errorf("Lookup(30) = %+v, want C4 (60)", m)
	}

	for key, action := range DefaultModifiers() {
		if _, ok := table.Lookup(key); ok {
			t.Errorf("modifier key %d (%s) is also a note key", key, action)
		}
	}
}
