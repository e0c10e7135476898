package sim_test

import (
	"errors"
	"math"
	"math/cmplx"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/qwave/internal/integrators"
	"github.com/san-kum/qwave/internal/quantum"
	"github.com/san-kum/qwave/internal/sim"
)

func gaussian(x []float64, sigma, p float64) []complex128 {
	psi := make([]complex128, len(x))
	for i, xi := range x {
		psi[i] = cmplx.Exp(complex(-xi*xi/(2*sigma*sigma), 2*math.Pi*p*xi))
	}
	return psi
}

func harmonic(x []float64, k float64) []float64 {
	v := make([]float64, len(x))
	for i, xi := range x {
		v[i] = 0.5 * k * xi * xi
	}
	return v
}

func newEngine(cfg sim.Config) *sim.Engine {
	e, err := sim.New(cfg)
	Expect(err).NotTo(HaveOccurred())
	return e
}

func baseConfig() sim.Config {
	return sim.Config{N: 64, L: 1, Hbar: 1, Mass: 1, Dt: 1e-5}
}

var _ = Describe("Engine", func() {
	Describe("construction", func() {
		It("defaults to a normalized uniform state, zero potential and the leapfrog", func() {
			e := newEngine(baseConfig())
			Expect(e.Method()).To(Equal(integrators.ReImLeapfrog))
			Expect(e.Norm()).To(BeNumerically("~", 1, 1e-12))
			Expect(e.Potential()).To(HaveEach(0.0))
			_, enabled := e.InfAt()
			Expect(enabled).To(BeFalse())
		})

		DescribeTable("rejects invalid grids",
			func(n int, l float64) {
				cfg := baseConfig()
				cfg.N, cfg.L = n, l
				_, err := sim.New(cfg)
				Expect(err).To(MatchError(quantum.ErrInvalidGrid))
			},
			Entry("one point", 1, 1.0),
			Entry("zero length", 10, 0.0),
			Entry("negative length", 10, -2.0),
		)

		It("rejects non-positive constants", func() {
			cfg := baseConfig()
			cfg.Mass = 0
			_, err := sim.New(cfg)
			Expect(err).To(MatchError(quantum.ErrParameterBounds))
		})

		It("rejects unknown methods", func() {
			cfg := baseConfig()
			cfg.Method = "crank_nicolson"
			_, err := sim.New(cfg)
			Expect(err).To(MatchError(integrators.ErrUnknownMethod))
		})

		It("rejects a mismatched initial potential", func() {
			cfg := baseConfig()
			cfg.Potential = make([]float64, 10)
			_, err := sim.New(cfg)
			Expect(err).To(MatchError(quantum.ErrDimensionMismatch))
		})
	})

	Describe("stepping", func() {
		for _, m := range integrators.All() {
			m := m
			It("keeps unit norm with "+m.String(), func() {
				cfg := baseConfig()
				cfg.Method = m.String()
				cfg.InfAt = sim.Float(1000)
				e := newEngine(cfg)
				x := e.Positions()
				Expect(e.SetWavefunction(gaussian(x, 0.1, 3), true)).To(Succeed())
				Expect(e.SetPotential(harmonic(x, 50))).To(Succeed())

				for i := 0; i < 25; i++ {
					Expect(e.Step()).To(Succeed())
					n := e.Norm()
					Expect(n * n).To(BeNumerically("~", 1, 1e-9))
				}
				Expect(e.Steps()).To(Equal(25))
			})
		}

		for _, m := range integrators.All() {
			m := m
			It("truncates under the infinite barrier before stepping with "+m.String(), func() {
				cfg := baseConfig()
				cfg.Method = m.String()
				cfg.InfAt = sim.Float(1000)
				e := newEngine(cfg)
				x := e.Positions()

				v := make([]float64, len(x))
				barrier := func(i int) bool { return v[(i+len(v))%len(v)] >= 1000 }
				for i, xi := range x {
					if math.Abs(xi) >= 0.4 {
						v[i] = 10001
					}
				}
				Expect(e.SetPotential(v)).To(Succeed())
				Expect(e.SetWavefunction(gaussian(x, 0.2, 1), true)).To(Succeed())
				Expect(cmplx.Abs(e.Wavefunction()[0])).To(BeNumerically(">", 0))

				Expect(e.Step()).To(Succeed())

				// H couples nearest neighbours and the leapfrog applies it
				// twice, so points three cells inside the barrier cannot
				// pick up amplitude in one step.
				psi := e.Wavefunction()
				deep := 0
				for i := range v {
					if barrier(i-3) && barrier(i-2) && barrier(i-1) && barrier(i) &&
						barrier(i+1) && barrier(i+2) && barrier(i+3) {
						Expect(psi[i]).To(Equal(complex128(0)), "index %d", i)
						deep++
					}
				}
				Expect(deep).To(BeNumerically(">", 0))
			})
		}

		It("leaves barrier points alone when truncation is disabled", func() {
			cfg := baseConfig()
			e := newEngine(cfg)
			_, enabled := e.InfAt()
			Expect(enabled).To(BeFalse())

			v := make([]float64, cfg.N)
			for i := range v {
				v[i] = 10001
			}
			Expect(e.SetPotential(v)).To(Succeed())

			Expect(e.Step()).To(Succeed())
			n := e.Norm()
			Expect(n * n).To(BeNumerically("~", 1, 1e-9))
			for i, a := range e.Wavefunction() {
				Expect(cmplx.Abs(a)).To(BeNumerically(">", 0), "index %d", i)
			}

			e.SetInfAt(1000)
			e.ClearInfAt()
			Expect(e.Step()).To(Succeed())
			Expect(e.Steps()).To(Equal(2))
		})

		It("restores the previous state when a step degenerates", func() {
			cfg := baseConfig()
			cfg.InfAt = sim.Float(1000)
			e := newEngine(cfg)

			v := make([]float64, cfg.N)
			for i := range v {
				v[i] = 2000
			}
			Expect(e.SetPotential(v)).To(Succeed())
			before := e.Wavefunction()

			err := e.Step()
			Expect(err).To(MatchError(quantum.ErrDegenerateState))
			var se *sim.StepError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Method).To(Equal(integrators.ReImLeapfrog))

			Expect(e.Wavefunction()).To(Equal(before))
			Expect(e.Steps()).To(BeZero())
		})

		It("notifies observers after each step", func() {
			e := newEngine(baseConfig())
			var seen []int
			e.AddObserver(sim.ObserverFunc(func(step int, _ *sim.Engine) {
				seen = append(seen, step)
			}))
			Expect(e.Advance(3)).To(Succeed())
			Expect(seen).To(Equal([]int{1, 2, 3}))
		})
	})

	Describe("method switching", func() {
		It("does not touch the wavefunction", func() {
			e := newEngine(baseConfig())
			x := e.Positions()
			Expect(e.SetWavefunction(gaussian(x, 0.1, 2), true)).To(Succeed())
			Expect(e.Step()).To(Succeed())

			for _, name := range integrators.Names() {
				before := e.Wavefunction()
				Expect(e.SetMethod(name)).To(Succeed())
				Expect(e.Wavefunction()).To(Equal(before))
				Expect(e.Step()).To(Succeed())
			}
		})

		It("keeps the active method on an unknown name", func() {
			e := newEngine(baseConfig())
			Expect(e.SetMethod("find_ground_state")).To(Succeed())
			err := e.SetMethod("nope")
			Expect(err).To(MatchError(integrators.ErrUnknownMethod))
			Expect(e.Method()).To(Equal(integrators.GroundStateRelaxation))
		})
	})

	Describe("dimension guard", func() {
		It("refuses mismatched arrays and keeps the old state", func() {
			e := newEngine(baseConfig())
			x := e.Positions()
			Expect(e.SetWavefunction(gaussian(x, 0.1, 1), true)).To(Succeed())
			Expect(e.SetPotential(harmonic(x, 10))).To(Succeed())
			psi, v := e.Wavefunction(), e.Potential()

			err := e.SetWavefunction(make([]complex128, 63), true)
			Expect(err).To(MatchError(quantum.ErrDimensionMismatch))
			var de *quantum.DimensionError
			Expect(errors.As(err, &de)).To(BeTrue())
			Expect(de.Got).To(Equal(63))
			Expect(de.Want).To(Equal(64))

			Expect(e.SetPotential(make([]float64, 65))).To(MatchError(quantum.ErrDimensionMismatch))

			Expect(e.Wavefunction()).To(Equal(psi))
			Expect(e.Potential()).To(Equal(v))
		})

		It("refuses a zero wavefunction when normalizing", func() {
			e := newEngine(baseConfig())
			before := e.Wavefunction()
			Expect(e.SetWavefunction(make([]complex128, 64), true)).To(MatchError(quantum.ErrDegenerateState))
			Expect(e.Wavefunction()).To(Equal(before))
		})

		It("refuses non-finite amplitudes even without normalizing", func() {
			e := newEngine(baseConfig())
			before := e.Wavefunction()
			psi := e.Wavefunction()
			psi[3] = cmplx.NaN()
			Expect(e.SetWavefunction(psi, false)).To(MatchError(quantum.ErrDegenerateState))
			psi[3] = cmplx.Inf()
			Expect(e.SetWavefunction(psi, true)).To(MatchError(quantum.ErrDegenerateState))
			Expect(e.Wavefunction()).To(Equal(before))
		})
	})

	Describe("runtime constants", func() {
		It("changes dt and mass without touching the state", func() {
			e := newEngine(baseConfig())
			before := e.Wavefunction()
			Expect(e.SetDt(2e-5)).To(Succeed())
			Expect(e.SetMass(3)).To(Succeed())
			Expect(e.Dt()).To(Equal(2e-5))
			Expect(e.Mass()).To(Equal(3.0))
			Expect(e.Wavefunction()).To(Equal(before))

			Expect(e.SetDt(-1)).To(MatchError(quantum.ErrParameterBounds))
			Expect(e.SetMass(math.Inf(1))).To(MatchError(quantum.ErrParameterBounds))
			Expect(e.Dt()).To(Equal(2e-5))
		})
	})

	Describe("energy", func() {
		It("has no side effects and splits into kinetic and potential parts", func() {
			e := newEngine(baseConfig())
			x := e.Positions()
			Expect(e.SetWavefunction(gaussian(x, 0.1, 2), true)).To(Succeed())
			Expect(e.SetPotential(harmonic(x, 100))).To(Succeed())
			before := e.Wavefunction()

			terms := e.EnergyTerms()
			Expect(e.Energy()).To(BeNumerically("~", terms.Total, 1e-12))
			Expect(terms.Kinetic + terms.Potential).To(BeNumerically("~", terms.Total, 1e-9))
			Expect(terms.Kinetic).To(BeNumerically(">", 0))
			Expect(terms.Potential).To(BeNumerically(">", 0))
			Expect(e.Wavefunction()).To(Equal(before))
			Expect(e.Steps()).To(BeZero())
		})
	})

	Describe("ground state relaxation", func() {
		It("decreases energy monotonically toward ħ√(k/m)/2", func() {
			const k = 10000.0
			cfg := sim.Config{N: 128, L: 1, Hbar: 1, Mass: 1, Dt: 2e-5, Method: "find_ground_state"}
			e := newEngine(cfg)
			x := e.Positions()
			Expect(e.SetPotential(harmonic(x, k))).To(Succeed())
			Expect(e.SetWavefunction(gaussian(x, 0.05, 0), true)).To(Succeed())

			want := cfg.Hbar * math.Sqrt(k/cfg.Mass) / 2
			prev := e.Energy()
			Expect(prev).To(BeNumerically(">", want))

			for i := 0; i < 5000; i++ {
				Expect(e.Step()).To(Succeed())
				en := e.Energy()
				Expect(en).To(BeNumerically("<=", prev+1e-9*math.Abs(prev)))
				prev = en
			}
			Expect(prev).To(BeNumerically("~", want, 0.01*want))
		})
	})

	Describe("krylov guard", func() {
		It("leaves an exact eigenvector of the free Hamiltonian unchanged", func() {
			cfg := baseConfig()
			cfg.Method = "find_ground_state_arnoldi"
			e := newEngine(cfg)
			before := e.Wavefunction()

			Expect(e.Step()).To(Succeed())
			k, ok := e.Stepper().(*integrators.Krylov)
			Expect(ok).To(BeTrue())
			Expect(k.Converged).To(BeTrue())
			Expect(k.Residual).To(BeNumerically("<", integrators.KrylovTolerance))

			after := e.Wavefunction()
			for i := range before {
				Expect(cmplx.Abs(after[i] - before[i])).To(BeNumerically("<", 1e-12))
			}
		})
	})

	Describe("end to end", func() {
		It("keeps a uniform free state uniform under the leapfrog", func() {
			cfg := sim.Config{N: 64, L: 1, Hbar: 1, Mass: 1, Dt: 1e-4, Method: "re_im_leapfrog"}
			e := newEngine(cfg)

			psi := make([]complex128, 64)
			for i := range psi {
				psi[i] = complex(1/math.Sqrt(64), 0)
			}
			Expect(e.SetWavefunction(psi, false)).To(Succeed())
			Expect(e.Step()).To(Succeed())

			after := e.Wavefunction()
			for i := range after {
				Expect(after[i]).To(Equal(after[0]))
				Expect(imag(after[i])).To(BeZero())
			}
			Expect(e.Norm()).To(BeNumerically("~", 1, 1e-12))
		})
	})
})
