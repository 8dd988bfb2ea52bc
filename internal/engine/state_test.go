package engine

import (
	"testing"

	"github.com/keytone/midikeys/sdk/contracts"
)

func TestOctaveOffsetClamping(t *testing.T) {
	s := NewPerformanceState(contracts.Tuning{OctaveRange: 2})

	for i := 0; i < 5; i++ {
		s.OctaveUp()
	}
	if got := s.OctaveOffset(); got != 2 {
		t.Errorf("OctaveOffset() = %d, want 2", got)
	}

	for i := 0; i < 10; i++ {
		s.OctaveDown()
	}
	if got := s.OctaveOffset(); got != -2 {
		t.Errorf("OctaveOffset() = %d, want -2", got)
	}
}

func TestVelocityStepsAndClamping(t *testing.T) {
	s := NewPerformanceState(contracts.Tuning{VelocityStep: 10, InitialVelocity: 100})

	s.VelocityUp()
	if got := s.Velocity(); got != 110 {
		t.Errorf("Velocity() = %d, want 110", got)
	}

	for i := 0; i < 5; i++ {
		s.VelocityUp()
	}
	if got := s.Velocity(); got != 127 {
		t.Errorf("Velocity() = %d, want 127 after clamping", got)
	}

	for i := 0; i < 20; i++ {
		s.VelocityDown()
	}
	if got := s.Velocity(); got != 1 {
		t.Errorf("Velocity() = %d, want 1 after clamping", got)
	}
}

func TestModulationStepsAndClamping(t *testing.T) {
	s := NewPerformanceState(contracts.Tuning{ModulationStep: 50})

	level, changed := s.ModulationUp()
	if !changed || level != 50 {
		t.Errorf("ModulationUp() = (%d, %v), want (50, true)", level, changed)
	}

	s.ModulationUp()
	level, changed = s.ModulationUp()
	if !changed || level != 127 {
		t.Errorf("ModulationUp() = (%d, %v), want (127, true)", level, changed)
	}

	// Already at the ceiling: no change, no emission due.
	if _, changed = s.ModulationUp(); changed {
		t.Error("ModulationUp() at ceiling reported a change")
	}

	for i := 0; i < 3; i++ {
		s.ModulationDown()
	}
	if got := s.Modulation(); got != 0 {
		t.Errorf("Modulation() = %d, want 0 after clamping", got)
	}
	if _, changed = s.ModulationDown(); changed {
		t.Error("ModulationDown() at floor reported a change")
	}
}

func TestSetSustainReportsChanges(t *testing.T) {
	s := NewPerformanceState(contracts.Tuning{})

	if !s.SetSustain(true) {
		t.Error("SetSustain(true) from idle did not report a change")
	}
	if s.SetSustain(true) {
		t.Error("SetSustain(true) while engaged reported a change")
	}
	if !s.SetSustain(false) {
		t.Error("SetSustain(false) while engaged did not report a change")
	}
}

func TestZeroTuningFallsBackToDefaults(t *testing.T) {
	s := NewPerformanceState(contracts.Tuning{})

	if got := s.Velocity(); got != defaultInitialVelocity {
		t.Errorf("initial velocity = %d, want %d", got, defaultInitialVelocity)
	}
	s.VelocityUp()
	if got := s.Velocity(); got != defaultInitialVelocity+defaultVelocityStep {
		t.Errorf("velocity after step = %d, want %d", got, defaultInitialVelocity+defaultVelocityStep)
	}
}
