package integrators

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/qwave/internal/quantum"
)

func newState(t testing.TB, n int, dt float64, v func(x float64) float64, psi func(x float64) complex128) *quantum.State {
	t.Helper()
	g, err := quantum.NewGrid(n, 1.0)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	st := &quantum.State{
		Grid:      g,
		Psi:       make(quantum.Wavefunction, n),
		Potential: make(quantum.Potential, n),
		Hbar:      1,
		Mass:      1,
		Dt:        dt,
	}
	for i, x := range g.Positions() {
		st.Psi[i] = psi(x)
		if v != nil {
			st.Potential[i] = v(x)
		}
	}
	if err := quantum.Normalize(st.Psi, g.Dx()); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return st
}

func gaussianPacket(sigma, p float64) func(x float64) complex128 {
	return func(x float64) complex128 {
		return cmplx.Exp(complex(-x*x/(2*sigma*sigma), 2*math.Pi*p*x))
	}
}

func energy(st *quantum.State) float64 {
	hpsi := st.Hamiltonian().Apply(st.Psi, st.Potential)
	return real(st.Psi.Inner(hpsi, st.Dx()))
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name string
		want Method
	}{
		{"re_im_leapfrog", ReImLeapfrog},
		{"forward_euler", ForwardEuler},
		{"find_ground_state", GroundStateRelaxation},
		{"find_ground_state_arnoldi", GroundStateKrylov},
		{"ReImLeapfrog", ReImLeapfrog},
		{"GroundStateKrylov", GroundStateKrylov},
	}

	for _, tt := range tests {
		got, err := ParseMethod(tt.name)
		if err != nil {
			t.Errorf("ParseMethod(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNew_ReturnsStepperForMethod(t *testing.T) {
	tests := []struct {
		method Method
		check  func(Stepper) bool
	}{
		{ReImLeapfrog, func(s Stepper) bool { _, ok := s.(*Leapfrog); return ok }},
		{ForwardEuler, func(s Stepper) bool { _, ok := s.(*Euler); return ok }},
		{GroundStateRelaxation, func(s Stepper) bool { _, ok := s.(*Relaxation); return ok }},
		{GroundStateKrylov, func(s Stepper) bool { _, ok := s.(*Krylov); return ok }},
	}

	for _, tt := range tests {
		s, err := New(tt.method)
		if err != nil {
			t.Fatalf("New(%v): %v", tt.method, err)
		}
		if !tt.check(s) {
			t.Errorf("New(%v) returned %T", tt.method, s)
		}
	}

	if _, err := New(Method(len(methods))); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("New(out of range) error = %v, want ErrUnknownMethod", err)
	}
}

func TestParseMethod_Unknown(t *testing.T) {
	_, err := ParseMethod("rk4")
	if !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
	var ue *UnknownMethodError
	if !errors.As(err, &ue) || ue.Name != "rk4" {
		t.Errorf("expected *UnknownMethodError for rk4, got %v", err)
	}

	if _, err := New(Method(42)); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("New(42): expected ErrUnknownMethod, got %v", err)
	}
}

func TestSteppers_PreserveNorm(t *testing.T) {
	harmonic := func(x float64) float64 { return 0.5 * 50 * x * x }
	well := func(x float64) float64 {
		if math.Abs(x) >= 0.45 {
			return 10001
		}
		return 0
	}

	for _, m := range All() {
		for _, n := range []int{2, 17, 64, 200} {
			for _, v := range []func(float64) float64{nil, harmonic, well} {
				st := newState(t, n, 1e-6, v, gaussianPacket(0.1, 3))
				stepper, err := New(m)
				if err != nil {
					t.Fatal(err)
				}
				for i := 0; i < 20; i++ {
					if err := stepper.Step(st); err != nil {
						t.Fatalf("%v n=%d step %d: %v", m, n, i, err)
					}
					if norm := st.Psi.Norm(st.Dx()); math.Abs(norm*norm-1) > 1e-9 {
						t.Fatalf("%v n=%d step %d: norm² = %v", m, n, i, norm*norm)
					}
				}
			}
		}
	}
}

func TestLeapfrog_StaggeredOrder(t *testing.T) {
	st := newState(t, 32, 1e-4, func(x float64) float64 { return 40 * x * x }, gaussianPacket(0.08, 2))
	h := st.Hamiltonian()
	dt := st.Dt

	re, im := st.Psi.Real(), st.Psi.Imag()

	// Staggered: I is updated from the new R.
	hI := h.ApplyReal(im, st.Potential)
	newRe := make([]float64, len(re))
	for i := range re {
		newRe[i] = re[i] + dt*hI[i]
	}
	hR := h.ApplyReal(newRe, st.Potential)
	newIm := make([]float64, len(im))
	for i := range im {
		newIm[i] = im[i] - dt*hR[i]
	}
	want := quantum.FromParts(newRe, newIm)
	_ = quantum.Normalize(want, st.Dx())

	// Snapshot variant for contrast.
	hROld := h.ApplyReal(re, st.Potential)
	snapIm := make([]float64, len(im))
	for i := range im {
		snapIm[i] = im[i] - dt*hROld[i]
	}
	snap := quantum.FromParts(newRe, snapIm)
	_ = quantum.Normalize(snap, st.Dx())

	if err := NewLeapfrog().Step(st); err != nil {
		t.Fatal(err)
	}

	diffSnap := 0.0
	for i := range want {
		if cmplx.Abs(st.Psi[i]-want[i]) > 1e-12 {
			t.Fatalf("index %d: got %v, want %v", i, st.Psi[i], want[i])
		}
		diffSnap = math.Max(diffSnap, cmplx.Abs(st.Psi[i]-snap[i]))
	}
	if diffSnap < 1e-9 {
		t.Error("staggered update indistinguishable from snapshot update")
	}
}

func TestLeapfrog_UniformFreeStateIsStationary(t *testing.T) {
	st := newState(t, 64, 1e-4, nil, func(float64) complex128 { return complex(1/math.Sqrt(64), 0) })
	if err := NewLeapfrog().Step(st); err != nil {
		t.Fatal(err)
	}
	for i := range st.Psi {
		if st.Psi[i] != st.Psi[0] {
			t.Fatalf("psi[%d] = %v differs from psi[0] = %v", i, st.Psi[i], st.Psi[0])
		}
	}
	if norm := st.Psi.Norm(st.Dx()); math.Abs(norm-1) > 1e-12 {
		t.Errorf("norm = %v, want 1", norm)
	}
}

func TestEuler_EnergyGrows(t *testing.T) {
	rough := func(x float64) complex128 {
		// sine plus a checkerboard-ish high-frequency component
		return complex(math.Sin(2*math.Pi*x)+1e-3*math.Cos(2*math.Pi*31*x), 0)
	}
	st := newState(t, 64, 1e-4, nil, rough)
	stepper := NewEuler()

	prev := energy(st)
	start := prev
	for i := 0; i < 200; i++ {
		if err := stepper.Step(st); err != nil {
			t.Fatal(err)
		}
		e := energy(st)
		if e < prev-1e-9*math.Abs(prev) {
			t.Fatalf("step %d: energy decreased from %v to %v", i, prev, e)
		}
		prev = e
	}
	if prev <= start*1.01 {
		t.Errorf("expected forward Euler energy to grow, start %v end %v", start, prev)
	}
}

func TestKrylov_EigenvectorGuard(t *testing.T) {
	tests := []struct {
		name string
		psi  func(x float64) complex128
	}{
		{"uniform", func(float64) complex128 { return 1 }},
		{"plane wave k=1", func(x float64) complex128 { return cmplx.Exp(complex(0, 2*math.Pi*x)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newState(t, 64, 1e-4, nil, tt.psi)
			before := st.Psi.Clone()

			k := NewKrylov()
			if err := k.Step(st); err != nil {
				t.Fatal(err)
			}
			if !k.Converged {
				t.Fatalf("expected residual guard to trigger, residual %g", k.Residual)
			}
			for i := range before {
				if cmplx.Abs(st.Psi[i]-before[i]) > 1e-12 {
					t.Fatalf("psi[%d] changed from %v to %v", i, before[i], st.Psi[i])
				}
			}
		})
	}
}

func TestKrylov_LowersEnergy(t *testing.T) {
	harmonic := func(x float64) float64 { return 0.5 * 1000 * x * x }
	st := newState(t, 128, 1e-4, harmonic, gaussianPacket(0.05, 2))
	k := NewKrylov()

	prev := energy(st)
	for i := 0; i < 50; i++ {
		if err := k.Step(st); err != nil {
			t.Fatal(err)
		}
		e := energy(st)
		if e > prev+1e-9*math.Abs(prev) {
			t.Fatalf("step %d: energy rose from %v to %v", i, prev, e)
		}
		prev = e
	}
	if k.Converged {
		t.Log("krylov converged within 50 steps")
	}
}

func TestLowestEigenvector(t *testing.T) {
	c1, c2, err := lowestEigenvector(2, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	// eigenvalues 1 and 3; lowest eigenvector ∝ (1, -1)
	if math.Abs(math.Abs(c1)-1/math.Sqrt2) > 1e-12 || math.Abs(c1+c2) > 1e-12 {
		t.Errorf("lowest eigenvector = (%v, %v), want ±(1,-1)/√2", c1, c2)
	}
}

func TestSteppers_DegenerateLeavesState(t *testing.T) {
	for _, m := range All() {
		st := newState(t, 8, 1e-3, nil, func(float64) complex128 { return 1 })
		for i := range st.Psi {
			st.Psi[i] = 0
		}
		stepper, _ := New(m)
		if err := stepper.Step(st); !errors.Is(err, quantum.ErrDegenerateState) {
			t.Errorf("%v: expected ErrDegenerateState, got %v", m, err)
		}
		for i, v := range st.Psi {
			if v != 0 {
				t.Errorf("%v: psi[%d] = %v after failed step", m, i, v)
			}
		}
	}
}
