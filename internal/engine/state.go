package engine

import "github.com/keytone/midikeys/sdk/contracts"

const (
	defaultOctaveRange     = 4
	defaultVelocityStep    = 10
	defaultModulationStep  = 8
	defaultInitialVelocity = 100
)

// DefaultTuning returns the tuning used when the caller does not supply one.
func DefaultTuning() contracts.Tuning {
	return contracts.Tuning{
		OctaveRange:     defaultOctaveRange,
		VelocityStep:    defaultVelocityStep,
		ModulationStep:  defaultModulationStep,
		InitialVelocity: defaultInitialVelocity,
	}
}

// PerformanceState is the mutable per-session performance record: octave
// offset, velocity, sustain flag, and modulation level. It is owned by a
// single writer (the Translator); mutations never touch notes that are
// already sounding.
type PerformanceState struct {
	tuning       contracts.Tuning
	octaveOffset int
	velocity     uint8
	sustain      bool
	modulation   uint8
}

// NewPerformanceState creates a state record with the given tuning. Zero
// tuning fields fall back to the defaults.
func NewPerformanceState(tuning contracts.Tuning) *PerformanceState {
	def := DefaultTuning()
	if tuning.OctaveRange <= 0 {
		tuning.OctaveRange = def.OctaveRange
	}
	if tuning.VelocityStep == 0 {
		tuning.VelocityStep = def.VelocityStep
	}
	if tuning.ModulationStep == 0 {
		tuning.ModulationStep = def.ModulationStep
	}
	if tuning.InitialVelocity == 0 {
		tuning.InitialVelocity = def.InitialVelocity
	}

	return &PerformanceState{
		tuning:   tuning,
		velocity: clampVelocity(int(tuning.InitialVelocity)),
	}
}

// OctaveOffset returns the current octave offset in whole octaves.
func (s *PerformanceState) OctaveOffset() int { return s.octaveOffset }

// Velocity returns the velocity applied to future note-ons.
func (s *PerformanceState) Velocity() uint8 { return s.velocity }

// SustainEngaged reports whether the sustain pedal is currently held.
func (s *PerformanceState) SustainEngaged() bool { return s.sustain }

// Modulation returns the current modulation level.
func (s *PerformanceState) Modulation() uint8 { return s.modulation }

// OctaveUp raises the octave offset by one, clamped to the tuning range.
func (s *PerformanceState) OctaveUp() {
	if s.octaveOffset < s.tuning.OctaveRange {
		s.octaveOffset++
	}
}

// OctaveDown lowers the octave offset by one, clamped to the tuning range.
func (s *PerformanceState) OctaveDown() {
	if s.octaveOffset > -s.tuning.OctaveRange {
		s.octaveOffset--
	}
}

// VelocityUp raises the velocity by one step, clamped to 127.
func (s *PerformanceState) VelocityUp() {
	s.velocity = clampVelocity(int(s.velocity) + int(s.tuning.VelocityStep))
}

// VelocityDown lowers the velocity by one step, clamped to 1.
func (s *PerformanceState) VelocityDown() {
	s.velocity = clampVelocity(int(s.velocity) - int(s.tuning.VelocityStep))
}

// SetSustain updates the sustain flag and reports whether it changed.
func (s *PerformanceState) SetSustain(engaged bool) bool {
	if s.sustain == engaged {
		return false
	}
	s.sustain = engaged
	return true
}

// ModulationUp raises the modulation level by one step, clamped to 127.
// It returns the new level and whether it changed.
func (s *PerformanceState) ModulationUp() (uint8, bool) {
	return s.setModulation(int(s.modulation) + int(s.tuning.ModulationStep))
}

// ModulationDown lowers the modulation level by one step, clamped to 0.
// It returns the new level and whether it changed.
func (s *PerformanceState) ModulationDown() (uint8, bool) {
	return s.setModulation(int(s.modulation) - int(s.tuning.ModulationStep))
}

func (s *PerformanceState) setModulation(level int) (uint8, bool) {
	clamped := uint8(clamp(level, 0, 127))
	if clamped == s.modulation {
		return s.modulation, false
	}
	s.modulation = clamped
	return s.modulation, true
}

func clampVelocity(v int) uint8 {
	return uint8(clamp(v, 1, 127))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
