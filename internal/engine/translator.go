package engine

import "github.com/keytone/midikeys/sdk/contracts"

// Translator turns raw key events into MIDI events. It is the single writer
// of the performance state and the registry; callers must feed it exactly
// one event at a time, in arrival order. Every call is O(1) and performs no
// I/O, leaving emission to the caller.
type Translator struct {
	table     contracts.MappingTable
	modifiers map[contracts.Key]contracts.ModifierAction
	state     *PerformanceState
	registry  *Registry
	logger    contracts.Logger
}

// NewTranslator wires a translator over the given collaborators.
func NewTranslator(
	table contracts.MappingTable,
	modifiers map[contracts.Key]contracts.ModifierAction,
	state *PerformanceState,
	registry *Registry,
	logger contracts.Logger,
) *Translator {
	return &Translator{
		table:     table,
		modifiers: modifiers,
		state:     state,
		registry:  registry,
		logger:    logger,
	}
}

// Translate processes one raw key event and returns the MIDI events to emit,
// in order. An empty result is normal: unmapped keys pass through silently,
// duplicate presses and stray releases are absorbed, and octave/velocity
// modifiers only affect future note-ons.
func (t *Translator) Translate(event contracts.KeyEvent) []contracts.MidiEvent {
	if action, ok := t.modifiers[event.Key]; ok {
		return t.applyModifier(action, event.Pressed)
	}

	mapping, ok := t.table.Lookup(event.Key)
	if !ok {
		return nil
	}

	if event.Pressed {
		return t.notePress(event.Key, mapping)
	}
	return t.noteRelease(event.Key)
}

// ForceReleaseAll releases every sounding note, including notes held only by
// sustain. When the pedal is engaged it is lifted first so the downstream
// device is not left with a latched pedal.
func (t *Translator) ForceReleaseAll() []contracts.MidiEvent {
	var events []contracts.MidiEvent
	if t.state.SetSustain(false) {
		events = append(events, contracts.NewControlChange(contracts.ControllerSustain, 0, 0))
	}

	offs := t.registry.ForceReleaseAll()
	if len(offs) > 0 {
		t.logger.Debug("force release", t.logger.Field().Int("notes", len(offs)))
	}
	return append(events, offs...)
}

func (t *Translator) applyModifier(action contracts.ModifierAction, pressed bool) []contracts.MidiEvent {
	switch action {
	case contracts.ModifierSustain:
		return t.applySustain(pressed)
	case contracts.ModifierModulationUp, contracts.ModifierModulationDown:
		if !pressed {
			return nil
		}
		return t.applyModulation(action)
	}

	// Remaining modifiers act on key-down only and emit nothing themselves.
	if !pressed {
		return nil
	}
	switch action {
	case contracts.ModifierOctaveUp:
		t.state.OctaveUp()
	case contracts.ModifierOctaveDown:
		t.state.OctaveDown()
	case contracts.ModifierVelocityUp:
		t.state.VelocityUp()
	case contracts.ModifierVelocityDown:
		t.state.VelocityDown()
	}
	t.logger.Debug("performance state changed",
		t.logger.Field().String("action", action.String()),
		t.logger.Field().Int("octave", t.state.OctaveOffset()),
		t.logger.Field().Uint8("velocity", t.state.Velocity()),
	)
	return nil
}

// applySustain follows the pedal key: press engages, release disengages.
// Disengaging emits the pedal-off control change first, then the deferred
// note-offs for every note released while the pedal was down.
func (t *Translator) applySustain(pressed bool) []contracts.MidiEvent {
	if !t.state.SetSustain(pressed) {
		return nil
	}

	if pressed {
		return []contracts.MidiEvent{
			contracts.NewControlChange(contracts.ControllerSustain, 127, 0),
		}
	}

	events := []contracts.MidiEvent{
		contracts.NewControlChange(contracts.ControllerSustain, 0, 0),
	}
	return append(events, t.registry.ReleaseSustained()...)
}

func (t *Translator) applyModulation(action contracts.ModifierAction) []contracts.MidiEvent {
	var (
		level   uint8
		changed bool
	)
	if action == contracts.ModifierModulationUp {
		level, changed = t.state.ModulationUp()
	} else {
		level, changed = t.state.ModulationDown()
	}
	if !changed {
		return nil
	}
	return []contracts.MidiEvent{
		contracts.NewControlChange(contracts.ControllerModulation, level, 0),
	}
}

func (t *Translator) notePress(key contracts.Key, mapping contracts.NoteMapping) []contracts.MidiEvent {
	note := uint8(clamp(int(mapping.BaseNote)+12*t.state.OctaveOffset(), 0, 127))
	event, ok := t.registry.NoteOn(key, note, t.state.Velocity(), mapping.Channel)
	if !ok {
		return nil
	}

	t.logger.Debug("note on",
		t.logger.Field().Uint8("note", event.Note),
		t.logger.Field().Uint8("velocity", event.Velocity),
		t.logger.Field().Uint8("channel", event.Channel),
	)
	return []contracts.MidiEvent{event}
}

func (t *Translator) noteRelease(key contracts.Key) []contracts.MidiEvent {
	event, ok := t.registry.Release(key, t.state.SustainEngaged())
	if !ok {
		return nil
	}

	t.logger.Debug("note off",
		t.logger.Field().Uint8("note", event.Note),
		t.logger.Field().Uint8("channel", event.Channel),
	)
	return []contracts.MidiEvent{event}
}
