package integrators

import "github.com/san-kum/qwave/internal/quantum"

// Relaxation propagates in imaginary time, ψ ← ψ − Δt·Hψ, and renormalizes.
// Higher eigencomponents decay faster than the ground state, so repeated
// steps converge to the lowest-energy state of the current potential.
//
// Δt is the damping rate. It must satisfy Δt·E_max < 2 to stay stable
// (Δt·E_max ≤ 1 for monotone energy decrease); nothing checks this.
type Relaxation struct {
	next quantum.Wavefunction
}

func NewRelaxation() *Relaxation {
	return &Relaxation{}
}

func (r *Relaxation) ensureScratch(n int) {
	if len(r.next) != n {
		r.next = make(quantum.Wavefunction, n)
	}
}

func (r *Relaxation) Step(st *quantum.State) error {
	n := len(st.Psi)
	r.ensureScratch(n)

	hpsi := st.Hamiltonian().Apply(st.Psi, st.Potential)
	c := complex(st.Dt, 0)
	for i := 0; i < n; i++ {
		r.next[i] = st.Psi[i] - c*hpsi[i]
	}

	if err := quantum.Normalize(r.next, st.Dx()); err != nil {
		return err
	}
	st.Commit(r.next)
	return nil
}
