// Package quantum provides the numerical primitives for evolving a
// one-dimensional wavefunction on a uniform periodic grid.
//
// The package defines:
//
//   - [Grid]: N periodic sample positions over [-L/2, L/2)
//   - [Wavefunction]: complex amplitudes with the Δx-weighted inner product
//   - [Potential]: real potential samples aligned with the grid
//   - [Hamiltonian]: finite-difference kinetic term plus pointwise potential
//   - [Normalize] and [Truncate]: the two in-place state fixups
//   - [State]: everything a stepping scheme reads and mutates
//
// # Example
//
//	g, _ := quantum.NewGrid(128, 1.0)
//	psi := quantum.Uniform(g.N())
//	_ = quantum.Normalize(psi, g.Dx())
//	h := quantum.Hamiltonian{Hbar: 1, Mass: 1, Dx: g.Dx()}
//	hpsi := h.Apply(psi, quantum.Zeros(g.N()))
//
// # Inner product
//
// Every norm and inner product in this package is weighted by the grid
// spacing: ⟨a,b⟩ = Δx·Σ conj(aᵢ)·bᵢ. A normalized wavefunction satisfies
// Δx·Σ|ψᵢ|² = 1.
package quantum
