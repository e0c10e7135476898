package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// Spectrum is a momentum distribution. Momentum is ascending and Density
// sums to one.
type Spectrum struct {
	Momentum []float64
	Density  []float64
}

// Momentum transforms psi (sampled on a periodic domain of the given
// length) to momentum space.
func Momentum(psi []complex128, length float64) Spectrum {
	n := len(psi)
	if n == 0 {
		return Spectrum{}
	}

	coeffs := fft.FFT(psi)
	sp := Spectrum{
		Momentum: make([]float64, n),
		Density:  make([]float64, n),
	}

	// shift so that negative frequencies come first
	half := n / 2
	for i := 0; i < n; i++ {
		k := i - half
		bin := (k + n) % n
		sp.Momentum[i] = float64(k) / length
		a := cmplx.Abs(coeffs[bin])
		sp.Density[i] = a * a
	}

	if total := floats.Sum(sp.Density); total > 0 {
		floats.Scale(1/total, sp.Density)
	}
	return sp
}

// Mean is ⟨p⟩.
func (s Spectrum) Mean() float64 {
	if len(s.Density) == 0 {
		return 0
	}
	return floats.Dot(s.Momentum, s.Density)
}

// Peak returns the momentum with the largest density.
func (s Spectrum) Peak() float64 {
	if len(s.Density) == 0 {
		return 0
	}
	return s.Momentum[floats.MaxIdx(s.Density)]
}

// PositionMean is ⟨x⟩ = Σ x_i|ψ_i|² / Σ|ψ_i|².
func PositionMean(psi []complex128, x []float64) float64 {
	density := probability(psi)
	if density == nil {
		return 0
	}
	return floats.Dot(x, density)
}

// PositionSpread is the standard deviation of x under |ψ|².
func PositionSpread(psi []complex128, x []float64) float64 {
	density := probability(psi)
	if density == nil {
		return 0
	}
	mean := floats.Dot(x, density)
	var v float64
	for i, xi := range x {
		d := xi - mean
		v += d * d * density[i]
	}
	return math.Sqrt(v)
}

func probability(psi []complex128) []float64 {
	density := make([]float64, len(psi))
	for i, a := range psi {
		density[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	total := floats.Sum(density)
	if total == 0 || math.IsNaN(total) {
		return nil
	}
	floats.Scale(1/total, density)
	return density
}

// DominantFrequency returns the frequency (cycles per unit time) of the
// strongest non-constant component of a series sampled every dt.
func DominantFrequency(series []float64, dt float64) float64 {
	n := len(series)
	if n < 4 || dt <= 0 {
		return 0
	}
	mean := floats.Sum(series) / float64(n)
	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	best, bestPower := 0, 0.0
	for k := 1; k <= n/2; k++ {
		if p := cmplx.Abs(coeffs[k]); p > bestPower {
			best, bestPower = k, p
		}
	}
	return float64(best) / (float64(n) * dt)
}
