package midikeys

import (
	"reflect"
	"sync"
	"testing"

	"github.com/keytone/midikeys/internal/logger"
	"github.com/keytone/midikeys/internal/mapping"
	"github.com/keytone/midikeys/sdk/contracts"
)

type recordingSink struct {
	mu     sync.Mutex
	sent   []contracts.MidiEvent
	closed bool
}

func (s *recordingSink) Send(event contracts.MidiEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, event)
	return nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *recordingSink) events() []contracts.MidiEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]contracts.MidiEvent(nil), s.sent...)
}

func newTestSession(t *testing.T, fake *recordingSink) *Session {
	t.Helper()
	session, err := NewSession(
		contracts.WithLogger(logger.NewNop()),
		contracts.WithEventSink(fake),
		contracts.WithMapping(mapping.Default()),
	)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	return session
}

func TestSessionTranslatesSubmittedEvents(t *testing.T) {
	fake := &recordingSink{}
	session := newTestSession(t, fake)

	// Key 30 is C4 in the default layout.
	if err := session.Submit(contracts.KeyEvent{Key: 30, Pressed: true}); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if err := session.Submit(contracts.KeyEvent{Key: 30, Pressed: false}); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if err := session.Stop(); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}

	want := []contracts.MidiEvent{
		contracts.NewNoteOn(60, 100, 0),
		contracts.NewNoteOff(60, 0),
	}
	if got := fake.events(); !reflect.DeepEqual(got, want) {
		t.Errorf("sink received %+v, want %+v", got, want)
	}
}

func TestSessionStopForceReleasesHeldNotes(t *testing.T) {
	fake := &recordingSink{}
	session := newTestSession(t, fake)

	held := []contracts.Key{30, 31, 32} // C4, E4, G4
	for _, key := range held {
		if err := session.Submit(contracts.KeyEvent{Key: key, Pressed: true}); err != nil {
			t.Fatalf("Submit() error: %v", err)
		}
	}
	if err := session.Stop(); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}

	got := fake.events()
	if len(got) != 2*len(held) {
		t.Fatalf("sink received %d events, want %d", len(got), 2*len(held))
	}
	offs := 0
	for _, event := range got[len(held):] {
		if event.Type == contracts.EventNoteOff {
			offs++
		}
	}
	if offs != len(held) {
		t.Errorf("teardown emitted %d note-offs, want %d", offs, len(held))
	}
}

func TestSubmitAfterStop(t *testing.T) {
	fake := &recordingSink{}
	session := newTestSession(t, fake)

	if err := session.Stop(); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	if err := session.Submit(contracts.KeyEvent{Key: 30, Pressed: true}); err != ErrSessionStopped {
		t.Errorf("Submit() after Stop = %v, want ErrSessionStopped", err)
	}

	// Stop is idempotent.
	if err := session.Stop(); err != nil {
		t.Errorf("second Stop() error: %v", err)
	}
}

func TestSessionDoesNotCloseCallerOwnedSink(t *testing.T) {
	fake := &recordingSink{}
	session := newTestSession(t, fake)

	if err := session.Stop(); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	if fake.closed {
		t.Error("session closed a sink it does not own")
	}
}
