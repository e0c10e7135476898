package quantum

import (
	"math"
	"math/cmplx"
)

// Wavefunction holds the complex amplitudes sampled on a grid.
type Wavefunction []complex128

// Potential holds real potential samples aligned with a grid.
type Potential []float64

// Uniform returns a wavefunction with every amplitude equal to one.
func Uniform(n int) Wavefunction {
	psi := make(Wavefunction, n)
	for i := range psi {
		psi[i] = 1
	}
	return psi
}

// Zeros returns a zero potential of length n.
func Zeros(n int) Potential {
	return make(Potential, n)
}

func (w Wavefunction) Clone() Wavefunction {
	c := make(Wavefunction, len(w))
	copy(c, w)
	return c
}

// IsValid reports whether every amplitude is finite.
func (w Wavefunction) IsValid() bool {
	for _, v := range w {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}
	return true
}

// SquaredSum returns Σ|ψᵢ|² without the grid weight.
func (w Wavefunction) SquaredSum() float64 {
	sum := 0.0
	for _, v := range w {
		re, im := real(v), imag(v)
		sum += re*re + im*im
	}
	return sum
}

// Norm returns √(Δx·Σ|ψᵢ|²).
func (w Wavefunction) Norm(dx float64) float64 {
	return math.Sqrt(dx * w.SquaredSum())
}

// Inner returns ⟨w,b⟩ = Δx·Σ conj(wᵢ)·bᵢ.
func (w Wavefunction) Inner(b Wavefunction, dx float64) complex128 {
	var sum complex128
	for i := range w {
		sum += cmplx.Conj(w[i]) * b[i]
	}
	return sum * complex(dx, 0)
}

func (w Wavefunction) Real() []float64 {
	out := make([]float64, len(w))
	for i, v := range w {
		out[i] = real(v)
	}
	return out
}

func (w Wavefunction) Imag() []float64 {
	out := make([]float64, len(w))
	for i, v := range w {
		out[i] = imag(v)
	}
	return out
}

func (w Wavefunction) Abs() []float64 {
	out := make([]float64, len(w))
	for i, v := range w {
		out[i] = cmplx.Abs(v)
	}
	return out
}

// Density returns |ψᵢ|².
func (w Wavefunction) Density() []float64 {
	out := make([]float64, len(w))
	for i, v := range w {
		re, im := real(v), imag(v)
		out[i] = re*re + im*im
	}
	return out
}

// FromParts assembles re + i·im.
func FromParts(re, im []float64) Wavefunction {
	w := make(Wavefunction, len(re))
	for i := range re {
		w[i] = complex(re[i], im[i])
	}
	return w
}

func (p Potential) Clone() Potential {
	c := make(Potential, len(p))
	copy(c, p)
	return c
}
