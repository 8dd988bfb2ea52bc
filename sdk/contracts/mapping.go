package contracts

// NoteMapping associates a physical key with the note it plays before any
// octave shift is applied.
type NoteMapping struct {
	Key      Key   // Physical key that triggers the note.
	BaseNote uint8 // MIDI note number, 0-127.
	Channel  uint8 // Default MIDI channel, 0-15.
}

// MappingTable is the read-only key→note lookup consumed during a session.
// Implementations must be safe for concurrent reads; the table is never
// mutated after load.
type MappingTable interface {
	// Lookup returns the mapping for key, or ok=false when the key does not
	// participate in musical emulation.
	Lookup(key Key) (NoteMapping, bool)
}

// ModifierAction is a performance-state mutation bound to a modifier key.
type ModifierAction int

const (
	ModifierOctaveUp ModifierAction = iota
	ModifierOctaveDown
	ModifierVelocityUp
	ModifierVelocityDown
	ModifierSustain
	ModifierModulationUp
	ModifierModulationDown
)

// String returns the configuration name of the action.
func (a ModifierAction) String() string {
	switch a {
	case ModifierOctaveUp:
		return "octave-up"
	case ModifierOctaveDown:
		return "octave-down"
	case ModifierVelocityUp:
		return "velocity-up"
	case ModifierVelocityDown:
		return "velocity-down"
	case ModifierSustain:
		return "sustain"
	case ModifierModulationUp:
		return "modulation-up"
	case ModifierModulationDown:
		return "modulation-down"
	}
	return "unknown"
}
