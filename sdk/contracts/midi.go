package contracts

// EventType identifies the kind of MIDI event. Values are the raw MIDI
// status nibbles so adapters can build a status byte with Type|Channel.
type EventType byte

const (
	// EventNoteOn starts a sounding pitch (0x90).
	EventNoteOn EventType = 0x90
	// EventNoteOff ends a sounding pitch (0x80).
	EventNoteOff EventType = 0x80
	// EventControlChange carries a continuous controller value (0xB0).
	EventControlChange EventType = 0xB0
)

// Standard controller numbers used by the translator. Spec §9 of the MIDI
// standard: 64 is the sustain pedal, 1 the modulation wheel.
const (
	ControllerModulation uint8 = 1
	ControllerSustain    uint8 = 64
)

// MidiEvent is a single immutable MIDI performance event. Note and Velocity
// are meaningful for note events, Controller and Value for control changes.
type MidiEvent struct {
	Type       EventType
	Channel    uint8 // 0-15
	Note       uint8 // 0-127
	Velocity   uint8 // 0-127
	Controller uint8
	Value      uint8
}

// NewNoteOn builds a note-on event.
func NewNoteOn(note, velocity, channel uint8) MidiEvent {
	return MidiEvent{Type: EventNoteOn, Channel: channel, Note: note, Velocity: velocity}
}

// NewNoteOff builds a note-off event.
func NewNoteOff(note, channel uint8) MidiEvent {
	return MidiEvent{Type: EventNoteOff, Channel: channel, Note: note}
}

// NewControlChange builds a control-change event.
func NewControlChange(controller, value, channel uint8) MidiEvent {
	return MidiEvent{Type: EventControlChange, Channel: channel, Controller: controller, Value: value}
}
