package mapping

import "github.com/keytone/midikeys/sdk/contracts"

// Default returns the built-in two-row piano layout covering C4 (60) through
// F#5 (78), expressed as Linux evdev key codes. Naturals sit on the home
// row, accidentals on the row above.
func Default() *Table {
	return New([]contracts.NoteMapping{
		{Key: 30, BaseNote: 60}, // A  → C4
		{Key: 17, BaseNote: 61}, // W  → C#4
		{Key: 19, BaseNote: 62}, // R  → D4
		{Key: 33, BaseNote: 63}, // F  → D#4
		{Key: 31, BaseNote: 64}, // S  → E4
		{Key: 20, BaseNote: 65}, // T  → F4
		{Key: 34, BaseNote: 66}, // G  → F#4
		{Key: 32, BaseNote: 67}, // D  → G4
		{Key: 36, BaseNote: 68}, // J  → G#4
		{Key: 35, BaseNote: 69}, // H  → A4
		{Key: 38, BaseNote: 70}, // L  → A#4
		{Key: 49, BaseNote: 71}, // N  → B4
		{Key: 18, BaseNote: 72}, // E  → C5
		{Key: 22, BaseNote: 73}, // U  → C#5
		{Key: 23, BaseNote: 74}, // I  → D5
		{Key: 21, BaseNote: 75}, // Y  → D#5
		{Key: 24, BaseNote: 76}, // O  → E5
		{Key: 40, BaseNote: 77}, // '  → F5
		{Key: 26, BaseNote: 78}, // [  → F#5
	})
}

// DefaultModifiers returns the built-in modifier bindings: F1/F2 shift the
// octave, F3/F4 step the velocity, F5/F6 step the modulation wheel, and the
// left Ctrl key acts as the sustain pedal.
func DefaultModifiers() map[contracts.Key]contracts.ModifierAction {
	return map[contracts.Key]contracts.ModifierAction{
		59: contracts.ModifierOctaveDown,     // F1
		60: contracts.ModifierOctaveUp,       // F2
		61: contracts.ModifierVelocityDown,   // F3
		62: contracts.ModifierVelocityUp,     // F4
		63: contracts.ModifierModulationDown, // F5
		64: contracts.ModifierModulationUp,   // F6
		29: contracts.ModifierSustain,        // Left Ctrl
	}
}
