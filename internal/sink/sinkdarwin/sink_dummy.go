//go:build !darwin
// +build !darwin

package sinkdarwin

import (
	"fmt"

	"github.com/keytone/midikeys/sdk/contracts"
)

type DummySink struct {
	logger contracts.Logger
}

func NewEventSink(options *contracts.SessionOptions) (contracts.EventSink, error) {
	options.Logger.Info("Using dummy CoreMIDI sink for non-macOS system")
	return &DummySink{
		logger: options.Logger,
	}, nil
}

func (s *DummySink) Send(event contracts.MidiEvent) error {
	s.logger.Warn("Send called on dummy CoreMIDI sink")
	return fmt.Errorf("CoreMIDI output is not available on this platform")
}

func (s *DummySink) Close() error {
	s.logger.Warn("Close called on dummy CoreMIDI sink")
	return nil
}
