// Package sinkrtmidi implements the event sink on gomidi's rtmidi driver.
// It is the default transport on platforms without a dedicated adapter and
// supports creating a virtual output port for DAWs to connect to.
package sinkrtmidi

import (
	"errors"
	"fmt"
	"strings"

	midi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"go.uber.org/multierr"

	"github.com/keytone/midikeys/sdk/contracts"
)

// ErrNoOutputPorts is returned when no MIDI output port is available and a
// virtual port was not requested.
var ErrNoOutputPorts = errors.New("no MIDI output ports available")

const defaultPortName = "midikeys"

// Sink sends events to an rtmidi output port.
type Sink struct {
	logger contracts.Logger
	driver *rtmididrv.Driver
	out    drivers.Out
	send   func(midi.Message) error
}

// NewEventSink opens the configured output port. An explicit PortName is
// matched case-insensitively as a substring; otherwise the first available
// port is used, and SinkConfig.Virtual creates a virtual port instead.
func NewEventSink(options *contracts.SessionOptions) (contracts.EventSink, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmidi driver: %w", err)
	}

	config := options.SinkConfig
	if config == nil {
		config = &contracts.SinkConfig{}
	}

	out, err := openOut(driver, config)
	if err != nil {
		_ = driver.Close()
		return nil, err
	}

	send, err := midi.SendTo(out)
	if err != nil {
		_ = out.Close()
		_ = driver.Close()
		return nil, fmt.Errorf("open sender: %w", err)
	}

	options.Logger.Info("MIDI output connected",
		options.Logger.Field().String("port", out.String()))

	return &Sink{
		logger: options.Logger,
		driver: driver,
		out:    out,
		send:   send,
	}, nil
}

func openOut(driver *rtmididrv.Driver, config *contracts.SinkConfig) (drivers.Out, error) {
	if config.Virtual {
		name := config.PortName
		if name == "" {
			name = defaultPortName
		}
		out, err := driver.OpenVirtualOut(name)
		if err != nil {
			return nil, fmt.Errorf("open virtual out %q: %w", name, err)
		}
		return out, nil
	}

	outs, err := driver.Outs()
	if err != nil {
		return nil, fmt.Errorf("list outputs: %w", err)
	}
	if len(outs) == 0 {
		return nil, ErrNoOutputPorts
	}

	out := outs[0]
	if config.PortName != "" {
		out = nil
		for _, candidate := range outs {
			if containsCI(candidate.String(), config.PortName) {
				out = candidate
				break
			}
		}
		if out == nil {
			return nil, fmt.Errorf("output port %q not found", config.PortName)
		}
	}

	if err := out.Open(); err != nil {
		return nil, fmt.Errorf("open %q: %w", out.String(), err)
	}
	return out, nil
}

// Send converts and transmits one event. Errors are returned to the caller;
// the sink does not retry.
func (s *Sink) Send(event contracts.MidiEvent) error {
	msg, err := Message(event)
	if err != nil {
		return err
	}
	if err := s.send(msg); err != nil {
		return fmt.Errorf("send to %q: %w", s.out.String(), err)
	}
	return nil
}

// Close shuts down the output port and the rtmidi driver.
func (s *Sink) Close() error {
	return multierr.Append(s.out.Close(), s.driver.Close())
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
