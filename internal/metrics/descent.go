package metrics

import (
	"math"

	"github.com/san-kum/qwave/internal/sim"
)

// EnergyDescent counts steps on which the energy rose. Imaginary-time
// relaxation with Δt·E_max ≤ 1 never does.
type EnergyDescent struct {
	name      string
	last      float64
	increases int
	samples   int
}

func NewEnergyDescent() *EnergyDescent {
	return &EnergyDescent{name: "energy_increases"}
}

func (d *EnergyDescent) Name() string {
	return d.name
}

func (d *EnergyDescent) OnStep(step int, eng *sim.Engine) {
	energy := eng.Energy()
	if d.samples > 0 && energy > d.last+1e-12*math.Max(1, math.Abs(d.last)) {
		d.increases++
	}
	d.last = energy
	d.samples++
}

func (d *EnergyDescent) Value() float64 {
	return float64(d.increases)
}

func (d *EnergyDescent) Reset() {
	d.last = 0
	d.increases = 0
	d.samples = 0
}
