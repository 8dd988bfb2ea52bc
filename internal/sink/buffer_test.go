package sink

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/keytone/midikeys/internal/logger"
	"github.com/keytone/midikeys/sdk/contracts"
)

// gatedSink blocks inside Send until released, so tests can fill the queue
// deterministically while the worker is stalled on transport.
type gatedSink struct {
	entered chan struct{}
	release chan struct{}

	mu   sync.Mutex
	sent []contracts.MidiEvent
	err  error
}

func newGatedSink() *gatedSink {
	return &gatedSink{
		entered: make(chan struct{}, 64),
		release: make(chan struct{}),
	}
}

func (s *gatedSink) Send(event contracts.MidiEvent) error {
	s.entered <- struct{}{}
	<-s.release
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, event)
	return s.err
}

func (s *gatedSink) Close() error { return nil }

func (s *gatedSink) events() []contracts.MidiEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]contracts.MidiEvent(nil), s.sent...)
}

func TestBufferPreservesOrder(t *testing.T) {
	fake := newGatedSink()
	close(fake.release) // never block
	b := NewBuffer(fake, 8, logger.NewNop())

	want := []contracts.MidiEvent{
		contracts.NewControlChange(contracts.ControllerSustain, 127, 0),
		contracts.NewNoteOn(60, 100, 0),
		contracts.NewNoteOff(60, 0),
	}
	for _, event := range want {
		b.Send(event)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if got := fake.events(); !reflect.DeepEqual(got, want) {
		t.Errorf("sink received %+v, want %+v", got, want)
	}
}

func TestBufferEvictsControlChangesBeforeNoteOns(t *testing.T) {
	fake := newGatedSink()
	b := NewBuffer(fake, 3, logger.NewNop())

	first := contracts.NewNoteOn(60, 100, 0)
	b.Send(first)
	<-fake.entered // worker is now blocked holding `first`; queue is empty

	cc := contracts.NewControlChange(contracts.ControllerModulation, 8, 0)
	on := contracts.NewNoteOn(64, 100, 0)
	off := contracts.NewNoteOff(60, 0)

	b.Send(cc) // queue: cc
	b.Send(on) // queue: cc on
	b.Send(off) // queue: cc on off (full)

	// Overflow: the oldest CC goes first, then the oldest note-on.
	b.Send(contracts.NewNoteOff(64, 0)) // queue: on off off64
	b.Send(contracts.NewNoteOff(65, 0)) // queue: off off64 off65

	close(fake.release)
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	want := []contracts.MidiEvent{
		first,
		off,
		contracts.NewNoteOff(64, 0),
		contracts.NewNoteOff(65, 0),
	}
	if got := fake.events(); !reflect.DeepEqual(got, want) {
		t.Errorf("sink received %+v, want %+v", got, want)
	}
}

func TestBufferNeverDropsNoteOffs(t *testing.T) {
	fake := newGatedSink()
	b := NewBuffer(fake, 2, logger.NewNop())

	b.Send(contracts.NewNoteOn(60, 100, 0))
	<-fake.entered

	// Fill the queue with note-offs past capacity: all must survive.
	offs := []contracts.MidiEvent{
		contracts.NewNoteOff(60, 0),
		contracts.NewNoteOff(61, 0),
		contracts.NewNoteOff(62, 0),
		contracts.NewNoteOff(63, 0),
	}
	for _, event := range offs {
		b.Send(event)
	}

	// A control-change arriving now is the only droppable event.
	b.Send(contracts.NewControlChange(contracts.ControllerModulation, 8, 0))

	close(fake.release)
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	got := fake.events()
	if len(got) != 1+len(offs) {
		t.Fatalf("sink received %d events, want %d", len(got), 1+len(offs))
	}
	if !reflect.DeepEqual(got[1:], offs) {
		t.Errorf("sink received %+v after the note-on, want %+v", got[1:], offs)
	}
}

func TestBufferAccumulatesTransportErrors(t *testing.T) {
	fake := newGatedSink()
	fake.err = errors.New("port gone")
	close(fake.release)
	b := NewBuffer(fake, 8, logger.NewNop())

	b.Send(contracts.NewNoteOn(60, 100, 0))
	b.Send(contracts.NewNoteOff(60, 0))

	err := b.Close()
	if err == nil {
		t.Fatal("Close() returned nil despite transport errors")
	}
	// Fail-forward: both events were still attempted.
	if got := len(fake.events()); got != 2 {
		t.Errorf("sink attempted %d events, want 2", got)
	}
}

func TestBufferDropsEventsAfterClose(t *testing.T) {
	fake := newGatedSink()
	close(fake.release)
	b := NewBuffer(fake, 8, logger.NewNop())

	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	b.Send(contracts.NewNoteOn(60, 100, 0)) // must not panic or deliver

	if got := len(fake.events()); got != 0 {
		t.Errorf("sink received %d events after close, want 0", got)
	}
}
