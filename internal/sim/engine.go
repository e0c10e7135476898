package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/qwave/internal/integrators"
	"github.com/san-kum/qwave/internal/quantum"
)

// Engine owns a wavefunction, a potential and the physical constants, and
// advances the wavefunction with the active integrator.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	state     quantum.State
	infAt     *float64
	method    integrators.Method
	stepper   integrators.Stepper
	steps     int
	pool      *WavePool
	observers []Observer
}

func New(cfg Config) (*Engine, error) {
	grid, err := quantum.NewGrid(cfg.N, cfg.L)
	if err != nil {
		return nil, err
	}
	if err := validateConstant("hbar", cfg.Hbar); err != nil {
		return nil, err
	}
	if err := validateConstant("mass", cfg.Mass); err != nil {
		return nil, err
	}
	if err := validateConstant("dt", cfg.Dt); err != nil {
		return nil, err
	}

	name := cfg.Method
	if name == "" {
		name = integrators.ReImLeapfrog.String()
	}
	method, err := integrators.ParseMethod(name)
	if err != nil {
		return nil, err
	}
	stepper, err := integrators.New(method)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		state: quantum.State{
			Grid:      grid,
			Psi:       quantum.Uniform(cfg.N),
			Potential: quantum.Zeros(cfg.N),
			Hbar:      cfg.Hbar,
			Mass:      cfg.Mass,
			Dt:        cfg.Dt,
		},
		method:  method,
		stepper: stepper,
		pool:    NewWavePool(cfg.N),
	}
	if cfg.InfAt != nil {
		e.SetInfAt(*cfg.InfAt)
	}

	if cfg.Potential != nil {
		if err := e.SetPotential(cfg.Potential); err != nil {
			return nil, err
		}
	}
	if cfg.Psi0 != nil {
		if err := e.SetWavefunction(cfg.Psi0, true); err != nil {
			return nil, err
		}
	} else if err := quantum.Normalize(e.state.Psi, grid.Dx()); err != nil {
		return nil, err
	}

	return e, nil
}

func validateConstant(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be positive and finite, got %g", quantum.ErrParameterBounds, name, v)
	}
	return nil
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Step truncates the wavefunction under the infinite barrier, then runs the
// active integrator. If the integrator fails, the wavefunction is restored
// to its value before the step.
func (e *Engine) Step() error {
	backup := e.pool.Backup(e.state.Psi)
	defer e.pool.Put(backup)

	if e.infAt != nil {
		quantum.Truncate(e.state.Psi, e.state.Potential, *e.infAt)
	}

	if err := e.stepper.Step(&e.state); err != nil {
		e.pool.Restore(e.state.Psi, backup)
		return &StepError{Step: e.steps, Method: e.method, Wrapped: err}
	}

	e.steps++
	for _, o := range e.observers {
		o.OnStep(e.steps, e)
	}
	return nil
}

// Advance performs n steps and stops at the first error.
func (e *Engine) Advance(n int) error {
	for i := 0; i < n; i++ {
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

// SetWavefunction replaces the state. The engine keeps its own copy.
// Amplitudes that are NaN or infinite are refused with
// quantum.ErrDegenerateState whether or not normalize is set.
func (e *Engine) SetWavefunction(psi []complex128, normalize bool) error {
	if err := quantum.CheckLength("wavefunction", len(psi), e.state.Grid.N()); err != nil {
		return err
	}
	if !quantum.Wavefunction(psi).IsValid() {
		return quantum.ErrDegenerateState
	}
	next := e.pool.Get()
	defer e.pool.Put(next)
	copy(next, psi)

	if normalize {
		if err := quantum.Normalize(next, e.state.Grid.Dx()); err != nil {
			return err
		}
	}
	e.state.Commit(next)
	return nil
}

// SetPotential replaces the potential. The engine keeps its own copy.
func (e *Engine) SetPotential(v []float64) error {
	if err := quantum.CheckLength("potential", len(v), e.state.Grid.N()); err != nil {
		return err
	}
	e.state.Potential = quantum.Potential(v).Clone()
	return nil
}

// SetMethod selects the integrator by name. An unknown name leaves the
// active method unchanged.
func (e *Engine) SetMethod(name string) error {
	m, err := integrators.ParseMethod(name)
	if err != nil {
		return err
	}
	return e.SetMethodID(m)
}

func (e *Engine) SetMethodID(m integrators.Method) error {
	stepper, err := integrators.New(m)
	if err != nil {
		return err
	}
	e.method = m
	e.stepper = stepper
	return nil
}

func (e *Engine) Method() integrators.Method { return e.method }

// Stepper exposes the active integrator, e.g. to read Krylov convergence.
func (e *Engine) Stepper() integrators.Stepper { return e.stepper }

func (e *Engine) SetDt(dt float64) error {
	if err := validateConstant("dt", dt); err != nil {
		return err
	}
	e.state.Dt = dt
	return nil
}

func (e *Engine) SetMass(m float64) error {
	if err := validateConstant("mass", m); err != nil {
		return err
	}
	e.state.Mass = m
	return nil
}

// SetInfAt enables truncation at threshold.
func (e *Engine) SetInfAt(threshold float64) {
	e.infAt = &threshold
}

// ClearInfAt disables truncation.
func (e *Engine) ClearInfAt() {
	e.infAt = nil
}

// InfAt returns the truncation threshold and whether it is enabled.
func (e *Engine) InfAt() (float64, bool) {
	if e.infAt == nil {
		return 0, false
	}
	return *e.infAt, true
}

func (e *Engine) Dt() float64          { return e.state.Dt }
func (e *Engine) Mass() float64        { return e.state.Mass }
func (e *Engine) Hbar() float64        { return e.state.Hbar }
func (e *Engine) Steps() int           { return e.steps }
func (e *Engine) Grid() *quantum.Grid  { return e.state.Grid }
func (e *Engine) Positions() []float64 { return e.state.Grid.Positions() }

// Wavefunction returns a copy of the current state.
func (e *Engine) Wavefunction() quantum.Wavefunction { return e.state.Psi.Clone() }

// Potential returns a copy of the current potential.
func (e *Engine) Potential() quantum.Potential { return e.state.Potential.Clone() }

// Norm returns √(Δx·Σ|ψᵢ|²).
func (e *Engine) Norm() float64 {
	return e.state.Psi.Norm(e.state.Grid.Dx())
}

// Energy returns Δx·Re Σ conj(ψᵢ)(Hψ)ᵢ. It has no side effects.
func (e *Engine) Energy() float64 {
	return e.EnergyTerms().Total
}

// EnergyTerms splits the energy into kinetic and potential expectation values.
func (e *Engine) EnergyTerms() Energies {
	dx := e.state.Grid.Dx()
	hpsi, terms := e.state.Hamiltonian().ApplyTerms(e.state.Psi, e.state.Potential)
	return Energies{
		Kinetic:   real(e.state.Psi.Inner(terms.Kinetic, dx)),
		Potential: real(e.state.Psi.Inner(terms.Potential, dx)),
		Total:     real(e.state.Psi.Inner(hpsi, dx)),
	}
}
