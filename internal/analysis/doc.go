// Package analysis provides diagnostics for a running wavefunction.
//
//   - [Momentum]: momentum distribution via the discrete Fourier transform
//   - [PositionMean], [PositionSpread]: position moments of |ψ|²
//   - [Portrait]: observer recording the (⟨x⟩, ⟨p⟩) trajectory
//   - [DominantFrequency]: strongest oscillation in a sampled series
//
// Momenta use the wavepacket convention: exp(i·2π·p·x) has momentum p, so
// on a domain of length L the Fourier bin k sits at p = k/L.
//
//	sp := analysis.Momentum(e.Wavefunction(), e.Grid().Length())
//	fmt.Println(sp.Mean())
package analysis
