package sinkrtmidi

import (
	"testing"

	"github.com/keytone/midikeys/sdk/contracts"
)

func TestMessageNoteOn(t *testing.T) {
	msg, err := Message(contracts.NewNoteOn(60, 100, 2))
	if err != nil {
		t.Fatalf("Message() error: %v", err)
	}

	var channel, key, velocity uint8
	if !msg.GetNoteOn(&channel, &key, &velocity) {
		t.Fatalf("message %v is not a note-on", msg)
	}
	if channel != 2 || key != 60 || velocity != 100 {
		t.Errorf("note-on = ch %d key %d vel %d, want ch 2 key 60 vel 100", channel, key, velocity)
	}
}

func TestMessageNoteOff(t *testing.T) {
	msg, err := Message(contracts.NewNoteOff(72, 0))
	if err != nil {
		t.Fatalf("Message() error: %v", err)
	}

	var channel, key uint8
	if !msg.GetNoteEnd(&channel, &key) {
		t.Fatalf("message %v is not a note-off", msg)
	}
	if channel != 0 || key != 72 {
		t.Errorf("note-off = ch %d key %d, want ch 0 key 72", channel, key)
	}
}

func TestMessageControlChange(t *testing.T) {
	msg, err := Message(contracts.NewControlChange(contracts.ControllerSustain, 127, 1))
	if err != nil {
		t.Fatalf("Message() error: %v", err)
	}

	var channel, controller, value uint8
	if !msg.GetControlChange(&channel, &controller, &value) {
		t.Fatalf("message %v is not a control change", msg)
	}
	if channel != 1 || controller != contracts.ControllerSustain || value != 127 {
		t.Errorf("cc = ch %d ctrl %d val %d, want ch 1 ctrl 64 val 127", channel, controller, value)
	}
}

func TestMessageRejectsUnknownType(t *testing.T) {
	if _, err := Message(contracts.MidiEvent{Type: 0xF0}); err == nil {
		t.Error("Message() accepted an unknown event type")
	}
}
