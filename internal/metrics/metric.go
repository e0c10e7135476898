// Package metrics provides step observers that summarise a run.
package metrics

import "github.com/san-kum/qwave/internal/sim"

// Metric is an observer that reduces a run to one number.
type Metric interface {
	sim.Observer
	Name() string
	Value() float64
	Reset()
}

// Defaults returns the metrics attached to every experiment run.
func Defaults() []Metric {
	return []Metric{
		NewEnergyTrace(),
		NewEnergyDrift(),
		NewNormDrift(1e-9),
		NewEnergyDescent(),
	}
}
