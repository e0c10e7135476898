package integrators

import "github.com/san-kum/qwave/internal/quantum"

// Leapfrog splits ψ = R + iI and staggers the two halves:
//
//	R ← R + Δt·H(I)
//	I ← I − Δt·H(R)   (with the updated R)
//
// The second half must see the updated R; updating both from one snapshot
// is a different (and unstable) scheme.
type Leapfrog struct {
	re, im []float64
	next   quantum.Wavefunction
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) ensureScratch(n int) {
	if len(l.next) != n {
		l.re = make([]float64, n)
		l.im = make([]float64, n)
		l.next = make(quantum.Wavefunction, n)
	}
}

func (l *Leapfrog) Step(st *quantum.State) error {
	n := len(st.Psi)
	l.ensureScratch(n)
	h := st.Hamiltonian()
	dt := st.Dt

	for i, v := range st.Psi {
		l.re[i] = real(v)
		l.im[i] = imag(v)
	}

	hI := h.ApplyReal(l.im, st.Potential)
	for i := 0; i < n; i++ {
		l.re[i] += dt * hI[i]
	}

	hR := h.ApplyReal(l.re, st.Potential)
	for i := 0; i < n; i++ {
		l.im[i] -= dt * hR[i]
	}

	for i := 0; i < n; i++ {
		l.next[i] = complex(l.re[i], l.im[i])
	}

	if err := quantum.Normalize(l.next, st.Dx()); err != nil {
		return err
	}
	st.Commit(l.next)
	return nil
}
