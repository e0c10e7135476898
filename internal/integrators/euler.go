package integrators

import "github.com/san-kum/qwave/internal/quantum"

// Euler is the naive explicit scheme ψ ← ψ − iΔt·Hψ. It is unconditionally
// unstable for this Hamiltonian: every eigencomponent grows by
// √(1+(ΔtE)²) per step, so the energy drifts upward without bound.
type Euler struct {
	next quantum.Wavefunction
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) ensureScratch(n int) {
	if len(e.next) != n {
		e.next = make(quantum.Wavefunction, n)
	}
}

func (e *Euler) Step(st *quantum.State) error {
	n := len(st.Psi)
	e.ensureScratch(n)

	hpsi := st.Hamiltonian().Apply(st.Psi, st.Potential)
	c := complex(0, st.Dt)
	for i := 0; i < n; i++ {
		e.next[i] = st.Psi[i] - c*hpsi[i]
	}

	if err := quantum.Normalize(e.next, st.Dx()); err != nil {
		return err
	}
	st.Commit(e.next)
	return nil
}
