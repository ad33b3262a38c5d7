package ring_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/morphogen/internal/integrators"
	"github.com/san-kum/morphogen/internal/kinetics"
	"github.com/san-kum/morphogen/internal/reaction"
	"github.com/san-kum/morphogen/internal/ring"
)

// expm2x2 computes exp(t*M) for a real 2x2 matrix by scaling and squaring
// with a Taylor series, independent of the solver's eigen route.
func expm2x2(m [2][2]float64, t float64) [2][2]float64 {
	a := [2][2]float64{
		{m[0][0] * t, m[0][1] * t},
		{m[1][0] * t, m[1][1] * t},
	}

	norm := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			norm += math.Abs(a[i][j])
		}
	}

	squarings := 0
	for norm > 0.5 {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				a[i][j] *= 0.5
			}
		}
		norm *= 0.5
		squarings++
	}

	mul := func(p, q [2][2]float64) [2][2]float64 {
		return [2][2]float64{
			{p[0][0]*q[0][0] + p[0][1]*q[1][0], p[0][0]*q[0][1] + p[0][1]*q[1][1]},
			{p[1][0]*q[0][0] + p[1][1]*q[1][0], p[1][0]*q[0][1] + p[1][1]*q[1][1]},
		}
	}

	result := [2][2]float64{{1, 0}, {0, 1}}
	term := [2][2]float64{{1, 0}, {0, 1}}
	for i := 1; i < 24; i++ {
		term = mul(term, a)
		inv := 1 / float64(i)
		for r := 0; r < 2; r++ {
			for c := 0; c < 2; c++ {
				term[r][c] *= inv
			}
		}
		for r := 0; r < 2; r++ {
			for c := 0; c < 2; c++ {
				result[r][c] += term[r][c]
			}
		}
	}

	for ; squarings > 0; squarings-- {
		result = mul(result, result)
	}
	return result
}

var _ = Describe("Solver", func() {
	Context("construction validation", func() {
		It("rejects a zero cell count", func() {
			_, err := ring.New(0, ring.Params{}, nil, nil)
			Expect(errors.Is(err, ring.ErrInvalidDimension)).To(BeTrue())
		})

		It("rejects mismatched profile lengths", func() {
			_, err := ring.New(3, ring.Params{}, []float64{1, 2}, []float64{1, 2, 3})
			Expect(errors.Is(err, ring.ErrInvalidDimension)).To(BeTrue())
		})

		It("rejects non-finite coefficients", func() {
			p := ring.Params{A: math.NaN()}
			_, err := ring.New(2, p, []float64{1, 2}, []float64{3, 4})
			Expect(errors.Is(err, ring.ErrNonFiniteInput)).To(BeTrue())
		})

		It("rejects non-finite profile values", func() {
			_, err := ring.New(2, ring.Params{}, []float64{1, math.Inf(1)}, []float64{3, 4})
			Expect(errors.Is(err, ring.ErrNonFiniteInput)).To(BeTrue())
		})

		It("reports a singular amplitude system with its mode index", func() {
			// Extreme b/c asymmetry collapses the amplitude matrix
			// determinant even though the roots stay distinct.
			p := ring.Params{B: 1e14, C: 1e-14}
			_, err := ring.New(1, p, []float64{1}, []float64{1})
			Expect(errors.Is(err, ring.ErrSingularMode)).To(BeTrue())

			var sme *ring.SingularModeError
			Expect(errors.As(err, &sme)).To(BeTrue())
			Expect(sme.Mode).To(Equal(0))
		})
	})

	Context("t=0 reconstruction", func() {
		x0 := []float64{1.0, -0.5, 0.25, 2.0, -1.5, 0.75}
		y0 := []float64{0.5, 0.5, -2.0, 1.0, 0.0, -0.25}

		cases := []struct {
			name string
			p    ring.Params
		}{
			{"generic coupled", ring.Params{A: 0.4, B: 0.7, C: -0.3, D: -0.6, Mu: 0.2, Nu: 0.35}},
			{"b zero", ring.Params{A: 0.4, B: 0, C: 1.2, D: -0.6, Mu: 0.2, Nu: 0.35}},
			{"decoupled", ring.Params{A: 0.4, D: -0.6, Mu: 0.2, Nu: 0.35}},
			{"degenerate repeated roots", ring.Params{A: 0.3, D: 0.3, Mu: 0.2, Nu: 0.2}},
			{"oscillatory", ring.Params{A: 0.5, B: 1.0, C: -1.0, D: 0.5, Mu: 0.25, Nu: 0.25}},
		}

		for _, tc := range cases {
			tc := tc
			It("reproduces the initial profiles for "+tc.name, func() {
				s, err := ring.New(6, tc.p, x0, y0)
				Expect(err).ToNot(HaveOccurred())

				prof, err := s.Evaluate(0)
				Expect(err).ToNot(HaveOccurred())

				for r := 0; r < 6; r++ {
					Expect(prof.X[r]).To(BeNumerically("~", x0[r], 1e-9))
					Expect(prof.Y[r]).To(BeNumerically("~", y0[r], 1e-9))
				}
			})
		}
	})

	Context("single cell (N=1)", func() {
		It("matches the closed-form 2x2 matrix exponential", func() {
			p := ring.Params{A: 1, B: 0.3, C: 0.2, D: -1, Mu: 0.5, Nu: 0.5}
			s, err := ring.New(1, p, []float64{1}, []float64{0.5})
			Expect(err).ToNot(HaveOccurred())

			m := [2][2]float64{{p.A, p.B}, {p.C, p.D}}
			for _, t := range []float64{0.1, 0.5, 1.0, 2.5, 5.0} {
				e := expm2x2(m, t)
				wantX := e[0][0]*1.0 + e[0][1]*0.5
				wantY := e[1][0]*1.0 + e[1][1]*0.5

				prof, err := s.Evaluate(t)
				Expect(err).ToNot(HaveOccurred())
				Expect(prof.X[0]).To(BeNumerically("~", wantX, 1e-9))
				Expect(prof.Y[0]).To(BeNumerically("~", wantY, 1e-9))
			}
		})
	})

	Context("decoupled morphogens (b = c = 0)", func() {
		It("matches direct numerical integration of the diffusion equation", func() {
			const n = 8
			p := ring.Params{A: 0.3, D: -0.2, Mu: 0.8, Nu: 0.3}

			x0 := []float64{1, 0, 0, 0, 0, 0, 0, 0}
			y0 := make([]float64, n)
			for r := 0; r < n; r++ {
				y0[r] = 1 + 0.5*math.Cos(2*math.Pi*float64(r)/n)
			}

			s, err := ring.New(n, p, x0, y0)
			Expect(err).ToNot(HaveOccurred())

			lattice := reaction.NewRingLattice(n)
			lattice.A, lattice.B, lattice.C, lattice.D = p.A, 0, 0, p.D
			lattice.Mu, lattice.Nu = p.Mu, p.Nu

			state := make(kinetics.State, 2*n)
			copy(state[:n], x0)
			copy(state[n:], y0)

			integ := integrators.NewRK4()
			dt := 0.0005
			t := 0.0
			checkpoints := []float64{1.0, 2.5, 5.0}

			for _, tc := range checkpoints {
				for t < tc-dt/2 {
					state = integ.Step(lattice, state, t, dt)
					t += dt
				}

				prof, err := s.Evaluate(t)
				Expect(err).ToNot(HaveOccurred())
				for r := 0; r < n; r++ {
					Expect(prof.X[r]).To(BeNumerically("~", state[r], 1e-6))
					Expect(prof.Y[r]).To(BeNumerically("~", state[n+r], 1e-6))
				}
			}
		})
	})

	Context("rotational invariance", func() {
		It("commutes with cyclic shifts of the initial profiles", func() {
			const n = 6
			const k = 2
			p := ring.Params{A: 0.4, B: 0.7, C: -0.3, D: -0.6, Mu: 0.2, Nu: 0.35}

			x0 := []float64{1.0, -0.5, 0.25, 2.0, -1.5, 0.75}
			y0 := []float64{0.5, 0.5, -2.0, 1.0, 0.0, -0.25}

			shift := func(v []float64) []float64 {
				out := make([]float64, n)
				for r := 0; r < n; r++ {
					out[(r+k)%n] = v[r]
				}
				return out
			}

			base, err := ring.New(n, p, x0, y0)
			Expect(err).ToNot(HaveOccurred())
			shifted, err := ring.New(n, p, shift(x0), shift(y0))
			Expect(err).ToNot(HaveOccurred())

			for _, t := range []float64{0.0, 0.3, 1.7, 4.0} {
				pb, err := base.Evaluate(t)
				Expect(err).ToNot(HaveOccurred())
				ps, err := shifted.Evaluate(t)
				Expect(err).ToNot(HaveOccurred())

				for r := 0; r < n; r++ {
					Expect(ps.X[(r+k)%n]).To(BeNumerically("~", pb.X[r], 1e-8))
					Expect(ps.Y[(r+k)%n]).To(BeNumerically("~", pb.Y[r], 1e-8))
				}
			}
		})
	})

	Context("degenerate repeated roots", func() {
		It("accepts b=c=0 with a=d and still reconstructs at t=0", func() {
			p := ring.Params{A: 0.7, D: 0.7, Mu: 0.4, Nu: 0.4}
			x0 := []float64{2, 1, 0, 1}
			y0 := []float64{0, 1, 2, 1}

			s, err := ring.New(4, p, x0, y0)
			Expect(err).ToNot(HaveOccurred())

			prof, err := s.Evaluate(0)
			Expect(err).ToNot(HaveOccurred())
			for r := 0; r < 4; r++ {
				Expect(prof.X[r]).To(BeNumerically("~", x0[r], 1e-9))
				Expect(prof.Y[r]).To(BeNumerically("~", y0[r], 1e-9))
			}
		})

		It("grows uniform repeated-root modes as exp(a*t)", func() {
			p := ring.Params{A: 0.2, D: 0.2}
			s, err := ring.New(3, p, []float64{1, 1, 1}, []float64{2, 2, 2})
			Expect(err).ToNot(HaveOccurred())

			prof, err := s.Evaluate(1.5)
			Expect(err).ToNot(HaveOccurred())
			want := math.Exp(0.2 * 1.5)
			for r := 0; r < 3; r++ {
				Expect(prof.X[r]).To(BeNumerically("~", want, 1e-9))
				Expect(prof.Y[r]).To(BeNumerically("~", 2*want, 1e-9))
			}
		})
	})

	Context("long-horizon overflow", func() {
		It("flags overflow instead of returning NaN", func() {
			p := ring.Params{A: 2, D: -1, Mu: 0.01, Nu: 0.5}
			x0 := []float64{1, 0, 0, 0}
			y0 := []float64{0, 0, 0, 0}

			s, err := ring.New(4, p, x0, y0)
			Expect(err).ToNot(HaveOccurred())

			_, err = s.Evaluate(1000)
			Expect(errors.Is(err, ring.ErrNumericOverflow)).To(BeTrue())

			var oe *ring.OverflowError
			Expect(errors.As(err, &oe)).To(BeTrue())
			Expect(oe.T).To(Equal(1000.0))
		})

		It("flags overflow for strongly negative times too", func() {
			p := ring.Params{A: -3, D: -2, Mu: 0.5, Nu: 0.5}
			s, err := ring.New(2, p, []float64{1, 0}, []float64{0, 1})
			Expect(err).ToNot(HaveOccurred())

			_, err = s.Evaluate(-500)
			Expect(errors.Is(err, ring.ErrNumericOverflow)).To(BeTrue())
		})
	})

	Context("growth rates", func() {
		It("yields the kinetic matrix eigenvalues at mode zero", func() {
			p := ring.Params{A: 1, B: 0.3, C: 0.2, D: -1, Mu: 0.7, Nu: 0.9}
			rates := ring.GrowthRates(4, p)
			Expect(rates).To(HaveLen(4))

			// Eigenvalues of [[1,0.3],[0.2,-1]]: (0 +- sqrt(4+4*0.06))/2.
			root := math.Sqrt(4 + 4*0.3*0.2)
			Expect(real(rates[0][0])).To(BeNumerically("~", root/2, 1e-12))
			Expect(real(rates[0][1])).To(BeNumerically("~", -root/2, 1e-12))
			Expect(imag(rates[0][0])).To(BeZero())
		})

		It("returns nil for an invalid cell count", func() {
			Expect(ring.GrowthRates(0, ring.Params{})).To(BeNil())
		})
	})

	Context("concurrent evaluation", func() {
		It("produces identical results from parallel queries", func() {
			p := ring.Params{A: 0.4, B: 0.7, C: -0.3, D: -0.6, Mu: 0.2, Nu: 0.35}
			x0 := []float64{1, 0, 1, 0, 1, 0}
			y0 := []float64{0, 1, 0, 1, 0, 1}
			s, err := ring.New(6, p, x0, y0)
			Expect(err).ToNot(HaveOccurred())

			ref, err := s.Evaluate(2.0)
			Expect(err).ToNot(HaveOccurred())

			results := make(chan ring.Profile, 8)
			for i := 0; i < 8; i++ {
				go func() {
					defer GinkgoRecover()
					prof, err := s.Evaluate(2.0)
					Expect(err).ToNot(HaveOccurred())
					results <- prof
				}()
			}

			for i := 0; i < 8; i++ {
				prof := <-results
				Expect(prof.X).To(Equal(ref.X))
				Expect(prof.Y).To(Equal(ref.Y))
			}
		})
	})
})
