//go:build darwin
// +build darwin

// Package sinkdarwin implements the event sink on CoreMIDI for macOS.
package sinkdarwin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/youpy/go-coremidi"

	"github.com/keytone/midikeys/sdk/contracts"
)

// Error definitions for CoreMIDI output setup.
var (
	ErrNoDestinations    = errors.New("no MIDI destinations found")
	ErrCreateOutputPort  = errors.New("error creating output port")
	ErrDestinationLookup = errors.New("error listing MIDI destinations")
)

const defaultClientName = "midikeys"

// Sink sends events to a CoreMIDI destination endpoint.
type Sink struct {
	logger      contracts.Logger
	client      coremidi.Client
	port        coremidi.OutputPort
	destination coremidi.Destination
}

// NewEventSink creates a CoreMIDI client and output port and connects to the
// configured destination. An explicit PortName is matched case-insensitively
// as a substring; otherwise the first destination is used.
func NewEventSink(options *contracts.SessionOptions) (contracts.EventSink, error) {
	config := options.SinkConfig
	if config == nil {
		config = &contracts.SinkConfig{}
	}
	clientName := config.ClientName
	if clientName == "" {
		clientName = defaultClientName
	}

	client, err := coremidi.NewClient(clientName)
	if err != nil {
		return nil, fmt.Errorf("coremidi client: %w", err)
	}

	port, err := coremidi.NewOutputPort(client, "Output Port")
	if err != nil {
		options.Logger.Error(ErrCreateOutputPort.Error())
		return nil, fmt.Errorf("%w: %v", ErrCreateOutputPort, err)
	}

	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDestinationLookup, err)
	}
	if len(destinations) == 0 {
		options.Logger.Warn(ErrNoDestinations.Error())
		return nil, ErrNoDestinations
	}

	destination := destinations[0]
	if config.PortName != "" {
		found := false
		for _, candidate := range destinations {
			if strings.Contains(strings.ToLower(candidate.Name()), strings.ToLower(config.PortName)) {
				destination = candidate
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("MIDI destination %q not found", config.PortName)
		}
	}

	options.Logger.Info("MIDI output connected",
		options.Logger.Field().String("destination", destination.Name()))

	return &Sink{
		logger:      options.Logger,
		client:      client,
		port:        port,
		destination: destination,
	}, nil
}

// Send transmits one event as a CoreMIDI packet.
func (s *Sink) Send(event contracts.MidiEvent) error {
	status := byte(event.Type) | event.Channel

	var data [3]byte
	switch event.Type {
	case contracts.EventNoteOn:
		data = [3]byte{status, event.Note, event.Velocity}
	case contracts.EventNoteOff:
		data = [3]byte{status, event.Note, 0}
	case contracts.EventControlChange:
		data = [3]byte{status, event.Controller, event.Value}
	default:
		return fmt.Errorf("unknown MIDI event type 0x%X", byte(event.Type))
	}

	packet := coremidi.NewPacket(data[:], 0)
	if err := packet.Send(&s.port, &s.destination); err != nil {
		return fmt.Errorf("send to %q: %w", s.destination.Name(), err)
	}
	return nil
}

// Close releases the sink. CoreMIDI clients are disposed with the process,
// so there is nothing to tear down explicitly.
func (s *Sink) Close() error {
	return nil
}
