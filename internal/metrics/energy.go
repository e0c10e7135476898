package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/qwave/internal/sim"
)

// EnergyTrace records the energy after every step.
type EnergyTrace struct {
	name    string
	samples []float64
}

func NewEnergyTrace() *EnergyTrace {
	return &EnergyTrace{name: "energy"}
}

func (e *EnergyTrace) Name() string { return e.name }

func (e *EnergyTrace) OnStep(step int, eng *sim.Engine) {
	e.samples = append(e.samples, eng.Energy())
}

// Value is the most recent energy.
func (e *EnergyTrace) Value() float64 {
	if len(e.samples) == 0 {
		return 0
	}
	return e.samples[len(e.samples)-1]
}

// Series returns a copy of the recorded energies.
func (e *EnergyTrace) Series() []float64 {
	out := make([]float64, len(e.samples))
	copy(out, e.samples)
	return out
}

// Range returns the smallest and largest recorded energy.
func (e *EnergyTrace) Range() (lo, hi float64) {
	if len(e.samples) == 0 {
		return 0, 0
	}
	return floats.Min(e.samples), floats.Max(e.samples)
}

func (e *EnergyTrace) Reset() {
	e.samples = e.samples[:0]
}

// EnergyDrift is the largest relative departure from the first observed
// energy. Real-time methods should keep it small; ForwardEuler does not.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) OnStep(step int, eng *sim.Engine) {
	energy := eng.Energy()

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
