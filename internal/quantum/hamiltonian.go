package quantum

// Hamiltonian is the discrete operator H = -(ħ²/2m)∇² + V on a periodic grid.
// It holds no buffers; every call allocates its result.
type Hamiltonian struct {
	Hbar float64
	Mass float64
	Dx   float64
}

// Terms are the two parts of H applied to a wavefunction, returned for
// energy diagnostics.
type Terms struct {
	Kinetic   Wavefunction
	Potential Wavefunction
}

// Laplacian is the second-order central difference with periodic wraparound.
func Laplacian(a Wavefunction, dx float64) Wavefunction {
	n := len(a)
	out := make(Wavefunction, n)
	inv := complex(1/(dx*dx), 0)
	for i := 0; i < n; i++ {
		next := a[(i+1)%n]
		prev := a[(i-1+n)%n]
		out[i] = (next + prev - 2*a[i]) * inv
	}
	return out
}

// LaplacianReal is [Laplacian] for real arrays.
func LaplacianReal(a []float64, dx float64) []float64 {
	n := len(a)
	out := make([]float64, n)
	inv := 1 / (dx * dx)
	for i := 0; i < n; i++ {
		next := a[(i+1)%n]
		prev := a[(i-1+n)%n]
		out[i] = (next + prev - 2*a[i]) * inv
	}
	return out
}

func (h Hamiltonian) kineticFactor() float64 {
	return -h.Hbar * h.Hbar / (2 * h.Mass)
}

// Apply returns Hψ.
func (h Hamiltonian) Apply(psi Wavefunction, v Potential) Wavefunction {
	out, _ := h.ApplyTerms(psi, v)
	return out
}

// ApplyTerms returns Hψ together with its kinetic and potential parts.
func (h Hamiltonian) ApplyTerms(psi Wavefunction, v Potential) (Wavefunction, Terms) {
	lap := Laplacian(psi, h.Dx)
	c := complex(h.kineticFactor(), 0)

	kinetic := lap
	pot := make(Wavefunction, len(psi))
	out := make(Wavefunction, len(psi))
	for i := range psi {
		kinetic[i] = c * lap[i]
		pot[i] = complex(v[i], 0) * psi[i]
		out[i] = kinetic[i] + pot[i]
	}
	return out, Terms{Kinetic: kinetic, Potential: pot}
}

// ApplyReal returns Ha for a real array a. H has real coefficients, so the
// result is real as well.
func (h Hamiltonian) ApplyReal(a []float64, v Potential) []float64 {
	out := LaplacianReal(a, h.Dx)
	c := h.kineticFactor()
	for i := range out {
		out[i] = c*out[i] + v[i]*a[i]
	}
	return out
}
