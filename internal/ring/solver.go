package ring

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Params holds the linear production coefficients and diffusion couplings.
// Production of X at cell r is a*x_r + b*y_r, of Y is c*x_r + d*y_r; mu and
// nu couple each morphogen to its two ring neighbors.
type Params struct {
	A, B, C, D float64
	Mu, Nu     float64
}

func (p Params) finite() bool {
	for _, v := range []float64{p.A, p.B, p.C, p.D, p.Mu, p.Nu} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Profile is a concentration snapshot of both morphogens over the ring.
type Profile struct {
	X, Y []float64
}

// ModeSolution is the closed-form solution of one Fourier mode. For
// distinct characteristic roots the mode evolves as
//
//	x_s(t) = A1*exp(P1*t) + A2*exp(P2*t)
//	y_s(t) = C1*exp(P1*t) + C2*exp(P2*t)
//
// A repeated root (Degenerate) switches the second basis function from
// exp(P2*t) to t*exp(P1*t).
type ModeSolution struct {
	P1, P2     complex128
	A1, A2     complex128
	C1, C2     complex128
	Degenerate bool
}

const (
	discTol     = 1e-12
	singularTol = 1e-12
	residueTol  = 1e-8

	// ln(MaxFloat64); exp of anything larger is +Inf.
	maxExponent = 709.0
)

// Solver holds the cached modal decomposition for one parameter set and
// initial profile pair. Immutable after New.
type Solver struct {
	n         int
	params    Params
	modes     []ModeSolution
	maxGrowth float64
	minGrowth float64
}

// New validates the inputs, Fourier-transforms the initial profiles, and
// solves every mode's amplitude system. All validation and degeneracy
// detection happens here; Evaluate never mutates the solver.
func New(n int, p Params, x0, y0 []float64) (*Solver, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidDimension, n)
	}
	if len(x0) != n || len(y0) != n {
		return nil, fmt.Errorf("%w: n=%d, len(x0)=%d, len(y0)=%d",
			ErrInvalidDimension, n, len(x0), len(y0))
	}
	if !p.finite() {
		return nil, ErrNonFiniteInput
	}
	for r := 0; r < n; r++ {
		if math.IsNaN(x0[r]) || math.IsInf(x0[r], 0) || math.IsNaN(y0[r]) || math.IsInf(y0[r], 0) {
			return nil, fmt.Errorf("%w: cell %d", ErrNonFiniteInput, r)
		}
	}

	fx := forwardDFT(x0)
	fy := forwardDFT(y0)

	s := &Solver{
		n:         n,
		params:    p,
		modes:     make([]ModeSolution, n),
		maxGrowth: math.Inf(-1),
		minGrowth: math.Inf(1),
	}

	for i := 0; i < n; i++ {
		m, err := solveMode(n, p, i, fx[i], fy[i])
		if err != nil {
			return nil, err
		}
		s.modes[i] = m
		for _, re := range []float64{real(m.P1), real(m.P2)} {
			if re > s.maxGrowth {
				s.maxGrowth = re
			}
			if re < s.minGrowth {
				s.minGrowth = re
			}
		}
	}

	return s, nil
}

// modeRates computes the own-decay terms and characteristic roots of mode s.
func modeRates(n int, p Params, s int) (alpha, delta float64, p1, p2 complex128, degenerate bool) {
	sin := math.Sin(math.Pi * float64(s) / float64(n))
	alpha = p.A - 4*p.Mu*sin*sin
	delta = p.D - 4*p.Nu*sin*sin

	disc := (alpha-delta)*(alpha-delta) + 4*p.B*p.C
	scale := (alpha-delta)*(alpha-delta) + 4*math.Abs(p.B*p.C)
	half := complex((alpha+delta)/2, 0)

	if math.Abs(disc) <= discTol*(scale+1) {
		return alpha, delta, half, half, true
	}

	root := cmplx.Sqrt(complex(disc, 0))
	return alpha, delta, half + root/2, half - root/2, false
}

// GrowthRates returns the characteristic roots of every mode for a given
// ring size and parameter set, without needing initial profiles. Mode s
// occupies rates[s].
func GrowthRates(n int, p Params) [][2]complex128 {
	if n < 1 {
		return nil
	}
	rates := make([][2]complex128, n)
	for s := 0; s < n; s++ {
		_, _, p1, p2, _ := modeRates(n, p, s)
		rates[s] = [2]complex128{p1, p2}
	}
	return rates
}

func solveMode(n int, p Params, s int, x0, y0 complex128) (ModeSolution, error) {
	alpha, delta, p1, p2, degenerate := modeRates(n, p, s)
	b := complex(p.B, 0)
	c := complex(p.C, 0)
	ca := complex(alpha, 0)
	cd := complex(delta, 0)

	if degenerate {
		// Repeated root: exp(t*M) = exp(p*t)*(I + t*(M - p*I)), so the
		// boundary fit is direct and never singular.
		return ModeSolution{
			P1: p1, P2: p1,
			A1: x0, A2: (ca-p1)*x0 + b*y0,
			C1: y0, C2: c*x0 + (cd-p1)*y0,
			Degenerate: true,
		}, nil
	}

	m := ModeSolution{P1: p1, P2: p2}

	switch {
	case p.B != 0:
		// Y amplitudes tied to X through b: C_i = (P_i - alpha)/b * A_i.
		q1 := (p1 - ca) / b
		q2 := (p2 - ca) / b
		a1, a2, det, ok := solve2x2(1, 1, q1, q2, x0, y0)
		if !ok {
			return ModeSolution{}, &SingularModeError{Mode: s, Det: det}
		}
		m.A1, m.A2 = a1, a2
		m.C1, m.C2 = q1*a1, q2*a2
	case p.C != 0:
		// b == 0: the symmetric relation through c, A_i = (P_i - delta)/c * C_i.
		q1 := (p1 - cd) / c
		q2 := (p2 - cd) / c
		c1, c2, det, ok := solve2x2(q1, q2, 1, 1, x0, y0)
		if !ok {
			return ModeSolution{}, &SingularModeError{Mode: s, Det: det}
		}
		m.C1, m.C2 = c1, c2
		m.A1, m.A2 = q1*c1, q2*c2
	default:
		// Decoupled morphogens: each amplitude rides its own root, with
		// alpha belonging to X and delta to Y.
		if cmplx.Abs(p1-ca) <= cmplx.Abs(p2-ca) {
			m.A1, m.C2 = x0, y0
		} else {
			m.A2, m.C1 = x0, y0
		}
	}

	return m, nil
}

// solve2x2 solves [[m11 m12],[m21 m22]] [u v]^T = [r1 r2]^T, reporting the
// determinant magnitude when it is singular within tolerance.
func solve2x2(m11, m12, m21, m22, r1, r2 complex128) (u, v complex128, det float64, ok bool) {
	d := m11*m22 - m12*m21
	norm := cmplx.Abs(m11)*cmplx.Abs(m22) + cmplx.Abs(m12)*cmplx.Abs(m21)
	if cmplx.Abs(d) <= singularTol*(norm+1) {
		return 0, 0, cmplx.Abs(d), false
	}
	u = (r1*m22 - r2*m12) / d
	v = (m11*r2 - m21*r1) / d
	return u, v, cmplx.Abs(d), true
}

func (s *Solver) N() int { return s.n }

func (s *Solver) Params() Params { return s.params }

func (s *Solver) MaxGrowth() float64 { return s.maxGrowth }

// Modes returns a copy of the cached per-mode solutions.
func (s *Solver) Modes() []ModeSolution {
	out := make([]ModeSolution, len(s.modes))
	copy(out, s.modes)
	return out
}

// Evaluate computes the concentration profile at time t. It is pure and
// deterministic; concurrent calls on one solver are safe.
func (s *Solver) Evaluate(t float64) (Profile, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return Profile{}, fmt.Errorf("%w: t=%v", ErrNonFiniteInput, t)
	}

	// Overflow guard: the largest Re(p)*t among modes decides whether any
	// exponential leaves float64 range. Negative t flips which extreme
	// matters.
	worst := s.maxGrowth * t
	if w := s.minGrowth * t; w > worst {
		worst = w
	}
	if worst > maxExponent {
		rate := s.maxGrowth
		if t < 0 {
			rate = s.minGrowth
		}
		return Profile{}, &OverflowError{T: t, Rate: rate}
	}

	coefX := make([]complex128, s.n)
	coefY := make([]complex128, s.n)
	ct := complex(t, 0)

	for i, m := range s.modes {
		if m.Degenerate {
			e := cmplx.Exp(m.P1 * ct)
			coefX[i] = (m.A1 + m.A2*ct) * e
			coefY[i] = (m.C1 + m.C2*ct) * e
			continue
		}
		e1 := cmplx.Exp(m.P1 * ct)
		e2 := cmplx.Exp(m.P2 * ct)
		coefX[i] = m.A1*e1 + m.A2*e2
		coefY[i] = m.C1*e1 + m.C2*e2
	}

	x, residX := inverseDFT(coefX)
	y, residY := inverseDFT(coefY)

	maxAbs := 0.0
	for r := 0; r < s.n; r++ {
		if math.IsNaN(x[r]) || math.IsInf(x[r], 0) || math.IsNaN(y[r]) || math.IsInf(y[r], 0) {
			return Profile{}, &OverflowError{T: t, Rate: s.maxGrowth}
		}
		if a := math.Abs(x[r]); a > maxAbs {
			maxAbs = a
		}
		if a := math.Abs(y[r]); a > maxAbs {
			maxAbs = a
		}
	}

	resid := residX
	if residY > resid {
		resid = residY
	}
	if resid > residueTol*(maxAbs+1) {
		return Profile{}, fmt.Errorf("%w: residue %.3e at t=%g", ErrComplexResidue, resid, t)
	}

	return Profile{X: x, Y: y}, nil
}
