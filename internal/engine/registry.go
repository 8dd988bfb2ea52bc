package engine

import "github.com/keytone/midikeys/sdk/contracts"

// ActiveNote is the note/channel pair frozen at note-on time. The registry
// uses it verbatim for the eventual note-off, so performance-state changes
// while a key is held can never release the wrong pitch.
type ActiveNote struct {
	Note    uint8
	Channel uint8
}

// Registry tracks which physical keys currently have a sounding note, plus
// the notes whose note-off is deferred because they were released while
// sustain was engaged. At most one active note exists per key.
type Registry struct {
	active  map[contracts.Key]ActiveNote
	order   []contracts.Key
	pending []ActiveNote
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{active: make(map[contracts.Key]ActiveNote)}
}

// NoteOn records key as sounding note/channel and returns the note-on event
// to emit. Duplicate presses (e.g. input-layer auto-repeat) are a no-op with
// ok=false. A pending sustained note at the same pitch is adopted by the new
// press so the deferred bulk note-off cannot cut it short.
func (r *Registry) NoteOn(key contracts.Key, note, velocity, channel uint8) (contracts.MidiEvent, bool) {
	if _, exists := r.active[key]; exists {
		return contracts.MidiEvent{}, false
	}

	entry := ActiveNote{Note: note, Channel: channel}
	r.active[key] = entry
	r.order = append(r.order, key)
	r.unpend(entry)
	return contracts.NewNoteOn(note, velocity, channel), true
}

// Release clears key's registry entry. With sustained=false it returns the
// note-off for the frozen note/channel; with sustained=true the note-off is
// deferred to ReleaseSustained and no event is returned. A release for a key
// that was never pressed through this path is a no-op with ok=false.
func (r *Registry) Release(key contracts.Key, sustained bool) (contracts.MidiEvent, bool) {
	entry, exists := r.active[key]
	if !exists {
		return contracts.MidiEvent{}, false
	}

	delete(r.active, key)
	r.dropOrder(key)

	if sustained {
		r.pend(entry)
		return contracts.MidiEvent{}, false
	}
	return contracts.NewNoteOff(entry.Note, entry.Channel), true
}

// ReleaseSustained returns the note-offs for every note released while
// sustain was engaged, in release order, and clears the pending set.
func (r *Registry) ReleaseSustained() []contracts.MidiEvent {
	if len(r.pending) == 0 {
		return nil
	}

	events := make([]contracts.MidiEvent, 0, len(r.pending))
	for _, entry := range r.pending {
		events = append(events, contracts.NewNoteOff(entry.Note, entry.Channel))
	}
	r.pending = nil
	return events
}

// ForceReleaseAll returns a note-off for every active entry and every
// pending sustained note, then clears the registry. Used on teardown or
// loss of focus so no sounding note is ever left behind.
func (r *Registry) ForceReleaseAll() []contracts.MidiEvent {
	events := make([]contracts.MidiEvent, 0, len(r.order)+len(r.pending))
	for _, key := range r.order {
		entry := r.active[key]
		events = append(events, contracts.NewNoteOff(entry.Note, entry.Channel))
	}
	for _, entry := range r.pending {
		events = append(events, contracts.NewNoteOff(entry.Note, entry.Channel))
	}

	r.active = make(map[contracts.Key]ActiveNote)
	r.order = nil
	r.pending = nil
	return events
}

// ActiveCount returns the number of keys with a sounding note.
func (r *Registry) ActiveCount() int { return len(r.active) }

// PendingCount returns the number of notes awaiting sustain release.
func (r *Registry) PendingCount() int { return len(r.pending) }

// pend adds entry to the pending set, deduplicated by pitch/channel so a
// pitch released twice under sustain yields a single deferred note-off.
func (r *Registry) pend(entry ActiveNote) {
	for _, p := range r.pending {
		if p == entry {
			return
		}
	}
	r.pending = append(r.pending, entry)
}

func (r *Registry) unpend(entry ActiveNote) {
	for i, p := range r.pending {
		if p == entry {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return
		}
	}
}

func (r *Registry) dropOrder(key contracts.Key) {
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}
