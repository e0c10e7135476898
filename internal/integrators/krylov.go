package integrators

import (
	"errors"
	"math"

	"github.com/san-kum/qwave/internal/quantum"
	"gonum.org/v1/gonum/mat"
)

// KrylovTolerance is the residual norm below which the current state is
// treated as an eigenvector and left as is.
const KrylovTolerance = 1e-10

var errEigenFailed = errors.New("integrators: 2x2 eigen decomposition failed")

// Krylov refines ψ inside span{ψ, Hψ}. Each call restarts the subspace from
// the current state:
//
//	q1 = ψ/‖ψ‖, h11 = Re⟨q1,Hq1⟩, r = Hq1 − h11·q1, h12 = ‖r‖
//	q2 = r/h12, h22 = Re⟨q2,Hq2⟩
//
// and replaces ψ by the lowest eigenvector of [[h11 h12] [h12 h22]]
// expressed in (q1, q2). H is Hermitian and q1, q2 are orthonormal, so
// ⟨q1,Hq2⟩ equals h12 and is not computed.
type Krylov struct {
	q1, q2 quantum.Wavefunction
	next   quantum.Wavefunction

	// Residual is h12 from the last step.
	Residual float64
	// Converged reports whether the last step hit the residual guard.
	Converged bool
}

func NewKrylov() *Krylov {
	return &Krylov{}
}

func (k *Krylov) ensureScratch(n int) {
	if len(k.next) != n {
		k.q1 = make(quantum.Wavefunction, n)
		k.q2 = make(quantum.Wavefunction, n)
		k.next = make(quantum.Wavefunction, n)
	}
}

func (k *Krylov) Step(st *quantum.State) error {
	n := len(st.Psi)
	k.ensureScratch(n)
	dx := st.Dx()
	h := st.Hamiltonian()

	copy(k.q1, st.Psi)
	if err := quantum.Normalize(k.q1, dx); err != nil {
		return err
	}

	hq1 := h.Apply(k.q1, st.Potential)
	h11 := real(k.q1.Inner(hq1, dx))

	for i := 0; i < n; i++ {
		k.q2[i] = hq1[i] - complex(h11, 0)*k.q1[i]
	}
	h12 := k.q2.Norm(dx)
	k.Residual = h12

	if h12 < KrylovTolerance {
		k.Converged = true
		st.Commit(k.q1)
		return nil
	}
	k.Converged = false

	inv := complex(1/h12, 0)
	for i := 0; i < n; i++ {
		k.q2[i] *= inv
	}

	hq2 := h.Apply(k.q2, st.Potential)
	h22 := real(k.q2.Inner(hq2, dx))

	c1, c2, err := lowestEigenvector(h11, h12, h22)
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		k.next[i] = complex(c1, 0)*k.q1[i] + complex(c2, 0)*k.q2[i]
	}

	// (c1, c2) is a unit vector, so next is already normalized up to rounding.
	if err := quantum.Normalize(k.next, dx); err != nil {
		return err
	}
	st.Commit(k.next)
	return nil
}

// lowestEigenvector diagonalizes the symmetric 2x2 matrix [[a b] [b d]] and
// returns the eigenvector of its smallest eigenvalue.
func lowestEigenvector(a, b, d float64) (float64, float64, error) {
	sym := mat.NewSymDense(2, []float64{a, b, b, d})

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return 0, 0, errEigenFailed
	}

	// Values are in ascending order; column 0 belongs to the smallest.
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	c1, c2 := vecs.At(0, 0), vecs.At(1, 0)

	if math.IsNaN(c1) || math.IsNaN(c2) {
		return 0, 0, errEigenFailed
	}
	return c1, c2, nil
}
