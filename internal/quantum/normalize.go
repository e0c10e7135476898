package quantum

import "math"

// Normalize scales psi in place so that Δx·Σ|ψᵢ|² = 1. A zero or
// non-finite norm returns ErrDegenerateState and leaves psi untouched.
func Normalize(psi Wavefunction, dx float64) error {
	norm := psi.Norm(dx)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return ErrDegenerateState
	}
	inv := complex(1/norm, 0)
	for i := range psi {
		psi[i] *= inv
	}
	return nil
}

// Truncate zeroes psi wherever v >= threshold and returns how many
// amplitudes it cleared. Other entries are untouched.
func Truncate(psi Wavefunction, v Potential, threshold float64) int {
	cleared := 0
	for i := range psi {
		if v[i] >= threshold {
			psi[i] = 0
			cleared++
		}
	}
	return cleared
}
