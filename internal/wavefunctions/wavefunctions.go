// Package wavefunctions builds initial wavefunctions from grid positions.
package wavefunctions

import (
	"math"
	"math/cmplx"
)

// Generator samples a wavefunction on the given positions. The result is
// not normalized; the engine normalizes whatever it is given.
type Generator func(x []float64) []complex128

// Wavepacket is a Gaussian of width sigma carrying exp(i·2π·momentum·x),
// rolled by mu (rounded to whole samples) around the periodic grid.
//
// With the 2π factor an integer momentum fits the unit domain exactly; it
// is not ħk in physical units.
func Wavepacket(sigma, momentum, mu float64) Generator {
	return func(x []float64) []complex128 {
		n := len(x)
		psi := make([]complex128, n)
		for i, xi := range x {
			psi[i] = cmplx.Exp(complex(-xi*xi/(2*sigma*sigma), xi*2*math.Pi*momentum))
		}
		if n < 2 {
			return psi
		}
		shift := int(math.Round(mu / (x[1] - x[0])))
		return roll(psi, shift)
	}
}

// Sine is sin(πn(x−a)/(2a)), the n-th box mode of a well of half-width a.
func Sine(n, a float64) Generator {
	return func(x []float64) []complex128 {
		psi := make([]complex128, len(x))
		for i, xi := range x {
			psi[i] = complex(math.Sin(math.Pi*n*(xi-a)/(2*a)), 0)
		}
		return psi
	}
}

// TwoSines superposes the n-th and n2-th box modes.
func TwoSines(n, n2, a float64) Generator {
	first, second := Sine(n, a), Sine(n2, a)
	return func(x []float64) []complex128 {
		psi := first(x)
		for i, v := range second(x) {
			psi[i] += v
		}
		return psi
	}
}

// roll shifts a cyclically so that out[(i+shift) mod n] = a[i].
func roll(a []complex128, shift int) []complex128 {
	n := len(a)
	shift = ((shift % n) + n) % n
	if shift == 0 {
		return a
	}
	out := make([]complex128, n)
	for i, v := range a {
		out[(i+shift)%n] = v
	}
	return out
}
