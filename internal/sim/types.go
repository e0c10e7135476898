package sim

import (
	"github.com/san-kum/qwave/internal/integrators"
)

// Config describes a new engine. Potential and Psi0 are optional: a nil
// potential is zero everywhere and a nil Psi0 is the uniform state.
type Config struct {
	N    int
	L    float64
	Hbar float64
	Mass float64
	Dt   float64

	// InfAt is the "infinite" potential threshold; nil disables truncation.
	InfAt *float64

	// Method is a method name understood by integrators.ParseMethod.
	// Empty selects re_im_leapfrog.
	Method string

	Potential []float64
	Psi0      []complex128
}

func DefaultConfig() Config {
	return Config{
		N:      200,
		L:      1.0,
		Hbar:   1.0,
		Mass:   1.0,
		Dt:     0.1,
		Method: integrators.ReImLeapfrog.String(),
	}
}

// Energies are the expectation values of the two parts of H.
type Energies struct {
	Kinetic   float64
	Potential float64
	Total     float64
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(step int, e *Engine)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, e *Engine)

func (f ObserverFunc) OnStep(step int, e *Engine) { f(step, e) }

// Float returns a pointer to v, for Config.InfAt.
func Float(v float64) *float64 {
	return &v
}
