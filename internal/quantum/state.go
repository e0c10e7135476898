package quantum

// State is the mutable data a stepping scheme works on. Psi is updated in
// place; Potential is read-only during a step.
type State struct {
	Grid      *Grid
	Psi       Wavefunction
	Potential Potential
	Hbar      float64
	Mass      float64
	Dt        float64
}

func (s *State) Dx() float64 {
	return s.Grid.Dx()
}

func (s *State) Hamiltonian() Hamiltonian {
	return Hamiltonian{Hbar: s.Hbar, Mass: s.Mass, Dx: s.Grid.Dx()}
}

// Commit copies next into Psi.
func (s *State) Commit(next Wavefunction) {
	copy(s.Psi, next)
}
