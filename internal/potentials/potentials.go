// Package potentials builds potential arrays from grid positions.
package potentials

import "math"

// Generator samples a potential on the given positions.
type Generator func(x []float64) []float64

// InfiniteWallHeight is the barrier height of the infinite square well. It
// sits above the default truncation threshold so the engine zeroes the
// wavefunction there.
const InfiniteWallHeight = 10001.0

func Zero() Generator {
	return func(x []float64) []float64 {
		return make([]float64, len(x))
	}
}

// InfiniteSquareWell is zero for |x| < a and InfiniteWallHeight elsewhere.
func InfiniteSquareWell(a float64) Generator {
	return FiniteSquareWell(a, InfiniteWallHeight)
}

// FiniteSquareWell is zero for |x| < a and v0 elsewhere.
func FiniteSquareWell(a, v0 float64) Generator {
	return func(x []float64) []float64 {
		v := make([]float64, len(x))
		for i, xi := range x {
			if xi >= a || xi <= -a {
				v[i] = v0
			}
		}
		return v
	}
}

// HarmonicOscillator is ½·k·x².
func HarmonicOscillator(k float64) Generator {
	return func(x []float64) []float64 {
		v := make([]float64, len(x))
		for i, xi := range x {
			v[i] = 0.5 * k * xi * xi
		}
		return v
	}
}

// SineDoubleWell is v0·(cos(4πx)+1)/2: two wells at x = ±1/4 on a unit domain.
func SineDoubleWell(v0 float64) Generator {
	return func(x []float64) []float64 {
		v := make([]float64, len(x))
		for i, xi := range x {
			v[i] = v0 * (math.Cos(4*math.Pi*xi) + 1) / 2
		}
		return v
	}
}
