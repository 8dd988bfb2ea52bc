// Package sink provides the bounded outbound buffer that decouples the
// translation path from the MIDI transport.
package sink

import (
	"sync"

	"go.uber.org/multierr"

	"github.com/keytone/midikeys/sdk/contracts"
)

// DefaultCapacity is the buffer capacity used when the caller does not
// configure one. Musical bursts are small; a deep queue only adds latency.
const DefaultCapacity = 64

// Buffer queues events for an EventSink and drains them from a single
// worker goroutine, so Send never blocks on transport backpressure.
//
// When the queue is full the oldest pending control-change is evicted first,
// then the oldest pending note-on. Note-offs are never dropped: if the queue
// holds nothing evictable, a note-off is appended beyond capacity rather
// than lost, since a dropped note-off means a stuck note.
//
// Transport failures are logged and accumulated; the pipeline is
// fail-forward and keeps draining.
type Buffer struct {
	sink     contracts.EventSink
	logger   contracts.Logger
	capacity int

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []contracts.MidiEvent
	closed  bool
	sendErr error

	wg sync.WaitGroup
}

// NewBuffer wraps sink with a bounded queue of the given capacity and starts
// the drain worker. A capacity of zero or less selects DefaultCapacity.
func NewBuffer(sink contracts.EventSink, capacity int, logger contracts.Logger) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	b := &Buffer{
		sink:     sink,
		logger:   logger,
		capacity: capacity,
	}
	b.cond = sync.NewCond(&b.mu)

	b.wg.Add(1)
	go b.drain()
	return b
}

// Send enqueues an event without blocking. Events submitted after Close are
// discarded.
func (b *Buffer) Send(event contracts.MidiEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		b.logger.Warn("sink buffer closed; dropping event")
		return
	}

	if len(b.queue) >= b.capacity {
		if i := b.evictIndex(); i >= 0 {
			b.logger.Warn("sink buffer full; dropping queued event",
				b.logger.Field().Uint8("type", uint8(b.queue[i].Type)))
			b.queue = append(b.queue[:i], b.queue[i+1:]...)
		} else if event.Type != contracts.EventNoteOff {
			// Queue is all note-offs; the newcomer is the only droppable event.
			b.logger.Warn("sink buffer full; dropping event",
				b.logger.Field().Uint8("type", uint8(event.Type)))
			return
		}
	}

	b.queue = append(b.queue, event)
	b.cond.Signal()
}

// Close stops accepting events, drains everything already queued, and
// returns the accumulated transport errors.
func (b *Buffer) Close() error {
	b.mu.Lock()
	b.closed = true
	b.cond.Broadcast()
	b.mu.Unlock()

	b.wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sendErr
}

// evictIndex returns the index of the oldest control-change, or failing
// that the oldest note-on, or -1 when only note-offs are queued.
func (b *Buffer) evictIndex() int {
	for i, event := range b.queue {
		if event.Type == contracts.EventControlChange {
			return i
		}
	}
	for i, event := range b.queue {
		if event.Type == contracts.EventNoteOn {
			return i
		}
	}
	return -1
}

func (b *Buffer) drain() {
	defer b.wg.Done()

	for {
		b.mu.Lock()
		for len(b.queue) == 0 && !b.closed {
			b.cond.Wait()
		}
		if len(b.queue) == 0 {
			b.mu.Unlock()
			return
		}
		event := b.queue[0]
		b.queue = b.queue[1:]
		b.mu.Unlock()

		if err := b.sink.Send(event); err != nil {
			b.logger.Error("sink send failed",
				b.logger.Field().Uint8("type", uint8(event.Type)),
				b.logger.Field().Error("error", err),
			)
			b.mu.Lock()
			b.sendErr = multierr.Append(b.sendErr, err)
			b.mu.Unlock()
		}
	}
}
