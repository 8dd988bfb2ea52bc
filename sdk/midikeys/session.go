// Package midikeys is the public entry point of the keystroke→MIDI
// translation engine. A Session owns the translator, performance state, and
// active-note registry on a single consumer goroutine fed by a bounded FIFO,
// which keeps note-on/note-off pairing correct under strict event ordering.
package midikeys

import (
	"errors"
	"sync"

	"go.uber.org/multierr"

	"github.com/keytone/midikeys/internal/engine"
	"github.com/keytone/midikeys/internal/mapping"
	"github.com/keytone/midikeys/internal/sink"
	"github.com/keytone/midikeys/sdk/contracts"
)

// ErrSessionStopped is returned by Submit after Stop has been called.
var ErrSessionStopped = errors.New("session stopped")

// Session translates raw key events into MIDI events and forwards them to
// the event sink. Submit may be called from any goroutine; translation
// itself happens on exactly one.
type Session struct {
	logger     contracts.Logger
	translator *engine.Translator
	buffer     *sink.Buffer
	ownedSink  contracts.EventSink

	events   chan contracts.KeyEvent
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopErr  error
}

// NewSession creates a session with the specified options and starts its
// consumer goroutine. Without WithEventSink a platform MIDI sink is
// constructed and owned (and closed) by the session.
func NewSession(opts ...contracts.Option) (*Session, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	table := options.Mapping
	if table == nil {
		table = mapping.Default()
	}
	modifiers := options.Modifiers
	if modifiers == nil {
		modifiers = mapping.DefaultModifiers()
	}
	tuning := engine.DefaultTuning()
	if options.Tuning != nil {
		tuning = *options.Tuning
	}

	eventSink := options.Sink
	var ownedSink contracts.EventSink
	if eventSink == nil {
		eventSink, err = newPlatformSink(&options)
		if err != nil {
			return nil, err
		}
		ownedSink = eventSink
	}

	state := engine.NewPerformanceState(tuning)
	registry := engine.NewRegistry()

	s := &Session{
		logger:     options.Logger,
		translator: engine.NewTranslator(table, modifiers, state, registry, options.Logger),
		buffer:     sink.NewBuffer(eventSink, options.SinkBufferSize, options.Logger),
		ownedSink:  ownedSink,
		events:     make(chan contracts.KeyEvent, options.QueueSize),
		done:       make(chan struct{}),
	}

	s.wg.Add(1)
	go s.consume()

	options.Logger.Info("translation session started")
	return s, nil
}

// Submit enqueues one raw key event, blocking when the intake queue is full
// so arrival order is never violated by drops. It returns ErrSessionStopped
// once the session is shut down.
func (s *Session) Submit(event contracts.KeyEvent) error {
	select {
	case <-s.done:
		return ErrSessionStopped
	default:
	}

	select {
	case s.events <- event:
		return nil
	case <-s.done:
		return ErrSessionStopped
	}
}

// Stop shuts the session down: intake is closed, the consumer drains, every
// sounding note is force-released, and the outbound buffer is flushed before
// an owned sink is closed. Safe to call more than once.
func (s *Session) Stop() error {
	s.stopOnce.Do(func() {
		s.logger.Info("stopping translation session")
		close(s.done)
		s.wg.Wait()

		for _, event := range s.translator.ForceReleaseAll() {
			s.buffer.Send(event)
		}

		err := s.buffer.Close()
		if s.ownedSink != nil {
			err = multierr.Append(err, s.ownedSink.Close())
		}
		s.stopErr = err
		s.logger.Info("translation session stopped")
	})
	return s.stopErr
}

func (s *Session) consume() {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			// Drain whatever was accepted before shutdown so a key-release
			// sitting in the queue still produces its note-off.
			for {
				select {
				case event := <-s.events:
					s.translate(event)
				default:
					return
				}
			}
		case event := <-s.events:
			s.translate(event)
		}
	}
}

func (s *Session) translate(event contracts.KeyEvent) {
	for _, out := range s.translator.Translate(event) {
		s.buffer.Send(out)
	}
}
