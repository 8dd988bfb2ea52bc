//go:build !windows
// +build !windows

package sinkwindows

import (
	"fmt"

	"github.com/keytone/midikeys/sdk/contracts"
)

type DummySink struct {
	logger contracts.Logger
}

func NewEventSink(options *contracts.SessionOptions) (contracts.EventSink, error) {
	options.Logger.Info("Using dummy winmm sink for non-Windows system")
	return &DummySink{
		logger: options.Logger,
	}, nil
}

func (s *DummySink) Send(event contracts.MidiEvent) error {
	s.logger.Warn("Send called on dummy winmm sink")
	return fmt.Errorf("winmm output is not available on this platform")
}

func (s *DummySink) Close() error {
	s.logger.Warn("Close called on dummy winmm sink")
	return nil
}
