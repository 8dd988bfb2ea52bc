// Package mapping provides the immutable key→note table a session consumes,
// its JSON file format, and the built-in default layout.
package mapping

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/keytone/midikeys/sdk/contracts"
)

// Table is a read-only key→note lookup. It is built once at session start
// and safe for concurrent reads.
type Table struct {
	notes map[contracts.Key]contracts.NoteMapping
}

// New builds a table from mapping entries.
func New(entries []contracts.NoteMapping) *Table {
	notes := make(map[contracts.Key]contracts.NoteMapping, len(entries))
	for _, entry := range entries {
		notes[entry.Key] = entry
	}
	return &Table{notes: notes}
}

// Lookup returns the mapping for key, or ok=false for keys that do not
// participate in musical emulation.
func (t *Table) Lookup(key contracts.Key) (contracts.NoteMapping, bool) {
	mapping, ok := t.notes[key]
	return mapping, ok
}

// Len returns the number of mapped keys.
func (t *Table) Len() int { return len(t.notes) }

// Config is the on-disk mapping format.
type Config struct {
	Notes     []NoteEntry     `json:"notes"`
	Modifiers []ModifierEntry `json:"modifiers,omitempty"`
}

// NoteEntry maps one physical key code to a note.
type NoteEntry struct {
	Key     uint32 `json:"key"`
	Note    uint8  `json:"note"`
	Channel uint8  `json:"channel,omitempty"`
}

// ModifierEntry binds one physical key code to a performance-state action.
type ModifierEntry struct {
	Key    uint32 `json:"key"`
	Action string `json:"action"`
}

var actionNames = map[string]contracts.ModifierAction{
	"octave-up":       contracts.ModifierOctaveUp,
	"octave-down":     contracts.ModifierOctaveDown,
	"velocity-up":     contracts.ModifierVelocityUp,
	"velocity-down":   contracts.ModifierVelocityDown,
	"sustain":         contracts.ModifierSustain,
	"modulation-up":   contracts.ModifierModulationUp,
	"modulation-down": contracts.ModifierModulationDown,
}

// ParseAction resolves a configuration action name.
func ParseAction(name string) (contracts.ModifierAction, bool) {
	action, ok := actionNames[name]
	return action, ok
}

// LoadFile reads a JSON mapping config and returns the note table and the
// modifier assignments. Entries are validated: notes must be 0-127, channels
// 0-15, action names known, and a key may appear at most once across both
// sections.
func LoadFile(path string) (*Table, map[contracts.Key]contracts.ModifierAction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read mapping config: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, nil, fmt.Errorf("parse mapping config: %w", err)
	}
	return fromConfig(&config)
}

func fromConfig(config *Config) (*Table, map[contracts.Key]contracts.ModifierAction, error) {
	seen := make(map[contracts.Key]bool)
	entries := make([]contracts.NoteMapping, 0, len(config.Notes))
	for _, entry := range config.Notes {
		key := contracts.Key(entry.Key)
		if seen[key] {
			return nil, nil, fmt.Errorf("duplicate key %d in mapping config", entry.Key)
		}
		if entry.Note > 127 {
			return nil, nil, fmt.Errorf("key %d: note %d out of range 0-127", entry.Key, entry.Note)
		}
		if entry.Channel > 15 {
			return nil, nil, fmt.Errorf("key %d: channel %d out of range 0-15", entry.Key, entry.Channel)
		}
		seen[key] = true
		entries = append(entries, contracts.NoteMapping{Key: key, BaseNote: entry.Note, Channel: entry.Channel})
	}

	modifiers := make(map[contracts.Key]contracts.ModifierAction, len(config.Modifiers))
	for _, entry := range config.Modifiers {
		key := contracts.Key(entry.Key)
		if seen[key] {
			return nil, nil, fmt.Errorf("duplicate key %d in mapping config", entry.Key)
		}
		action, ok := ParseAction(entry.Action)
		if !ok {
			return nil, nil, fmt.Errorf("key %d: unknown action %q", entry.Key, entry.Action)
		}
		seen[key] = true
		modifiers[key] = action
	}

	return New(entries), modifiers, nil
}
