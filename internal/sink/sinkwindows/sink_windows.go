//go:build windows
// +build windows

// Package sinkwindows implements the event sink on the winmm midiOut API.
package sinkwindows

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/keytone/midikeys/sdk/contracts"
)

// HMIDIOUT is a handle to an open MIDI output device.
type HMIDIOUT windows.Handle

// Struct representing MIDI output device capabilities.
type midiOutCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	wTechnology    uint16
	wVoices        uint16
	wNotes         uint16
	wChannelMask   uint16
	dwSupport      uint32
}

// Load the winmm.dll library and required functions.
var (
	winmm                 = windows.NewLazySystemDLL("winmm.dll")
	procMidiOutGetNumDevs = winmm.NewProc("midiOutGetNumDevs")
	procMidiOutGetDevCaps = winmm.NewProc("midiOutGetDevCapsW")
	procMidiOutOpen       = winmm.NewProc("midiOutOpen")
	procMidiOutShortMsg   = winmm.NewProc("midiOutShortMsg")
	procMidiOutClose      = winmm.NewProc("midiOutClose")
)

// ErrNoOutputDevices is returned when no MIDI output device is installed.
var ErrNoOutputDevices = errors.New("no MIDI output devices found")

// Sink sends events to a winmm MIDI output device.
type Sink struct {
	logger contracts.Logger
	handle HMIDIOUT
	mu     sync.Mutex
	open   bool
}

// NewEventSink opens the configured MIDI output device. An explicit PortName
// is matched case-insensitively against device names; otherwise device 0 is
// opened.
func NewEventSink(options *contracts.SessionOptions) (contracts.EventSink, error) {
	config := options.SinkConfig
	if config == nil {
		config = &contracts.SinkConfig{}
	}

	r0, _, _ := procMidiOutGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		options.Logger.Warn(ErrNoOutputDevices.Error())
		return nil, ErrNoOutputDevices
	}

	deviceID := uint32(0)
	if config.PortName != "" {
		found := false
		for i := uint32(0); i < numDevices; i++ {
			var caps midiOutCaps
			r1, _, _ := procMidiOutGetDevCaps.Call(
				uintptr(i),
				uintptr(unsafe.Pointer(&caps)),
				unsafe.Sizeof(caps),
			)
			if r1 != 0 {
				continue
			}
			name := windows.UTF16ToString(caps.szPname[:])
			if strings.Contains(strings.ToLower(name), strings.ToLower(config.PortName)) {
				deviceID = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("MIDI output device %q not found", config.PortName)
		}
	}

	var handle HMIDIOUT
	r1, _, _ := procMidiOutOpen.Call(
		uintptr(unsafe.Pointer(&handle)),
		uintptr(deviceID),
		0, 0, 0,
	)
	if r1 != 0 {
		return nil, fmt.Errorf("midiOutOpen failed for device %d: code %d", deviceID, r1)
	}

	options.Logger.Info("MIDI output connected",
		options.Logger.Field().Int("deviceID", int(deviceID)))

	return &Sink{
		logger: options.Logger,
		handle: handle,
		open:   true,
	}, nil
}

// Send transmits one event as a short MIDI message.
func (s *Sink) Send(event contracts.MidiEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return errors.New("MIDI output device is closed")
	}

	status := uint32(byte(event.Type) | event.Channel)

	var msg uint32
	switch event.Type {
	case contracts.EventNoteOn:
		msg = status | uint32(event.Note)<<8 | uint32(event.Velocity)<<16
	case contracts.EventNoteOff:
		msg = status | uint32(event.Note)<<8
	case contracts.EventControlChange:
		msg = status | uint32(event.Controller)<<8 | uint32(event.Value)<<16
	default:
		return fmt.Errorf("unknown MIDI event type 0x%X", byte(event.Type))
	}

	r1, _, _ := procMidiOutShortMsg.Call(uintptr(s.handle), uintptr(msg))
	if r1 != 0 {
		return fmt.Errorf("midiOutShortMsg failed: code %d", r1)
	}
	return nil
}

// Close releases the MIDI output device.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	s.open = false

	r1, _, _ := procMidiOutClose.Call(uintptr(s.handle))
	if r1 != 0 {
		return fmt.Errorf("midiOutClose failed: code %d", r1)
	}
	return nil
}
