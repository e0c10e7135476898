package metrics

import (
	"math"

	"github.com/san-kum/qwave/internal/sim"
)

// NormDrift tracks how far Δx·Σ|ψ|² strays from one after each step.
type NormDrift struct {
	name       string
	threshold  float64
	maxDrift   float64
	violations int
	samples    int
}

func NewNormDrift(threshold float64) *NormDrift {
	return &NormDrift{
		name:      "norm_drift",
		threshold: threshold,
	}
}

func (s *NormDrift) Name() string {
	return s.name
}

func (s *NormDrift) OnStep(step int, eng *sim.Engine) {
	s.samples++
	drift := math.Abs(eng.Norm() - 1)
	if drift > s.threshold || math.IsNaN(drift) {
		s.violations++
	}
	s.maxDrift = math.Max(s.maxDrift, drift)
}

func (s *NormDrift) Value() float64 {
	return s.maxDrift
}

// Violations counts steps whose drift exceeded the threshold.
func (s *NormDrift) Violations() int {
	return s.violations
}

func (s *NormDrift) Reset() {
	s.maxDrift = 0
	s.violations = 0
	s.samples = 0
}
