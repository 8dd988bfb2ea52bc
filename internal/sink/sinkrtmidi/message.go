package sinkrtmidi

import (
	"fmt"

	midi "gitlab.com/gomidi/midi/v2"

	"github.com/keytone/midikeys/sdk/contracts"
)

// Message converts an engine event into a gomidi wire message.
func Message(event contracts.MidiEvent) (midi.Message, error) {
	switch event.Type {
	case contracts.EventNoteOn:
		return midi.NoteOn(event.Channel, event.Note, event.Velocity), nil
	case contracts.EventNoteOff:
		return midi.NoteOff(event.Channel, event.Note), nil
	case contracts.EventControlChange:
		return midi.ControlChange(event.Channel, event.Controller, event.Value), nil
	}
	return nil, fmt.Errorf("unknown MIDI event type 0x%X", byte(event.Type))
}
