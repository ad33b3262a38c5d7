package reaction

import (
	"math"

	"github.com/san-kum/morphogen/internal/kinetics"
)

// RingLattice implements a periodic ring of N cells carrying two morphogens
// X and Y with linear production kinetics and nearest-neighbor diffusion.
// State layout: [x_0 .. x_{N-1}, y_0 .. y_{N-1}].
type RingLattice struct {
	N          int
	A, B, C, D float64
	Mu, Nu     float64
}

func NewRingLattice(n int) *RingLattice {
	if n < 1 {
		n = 1
	}
	return &RingLattice{N: n, A: 0.5, B: -1.0, C: 1.0, D: -0.5, Mu: 0.25, Nu: 0.5}
}

func (rl *RingLattice) StateDim() int { return 2 * rl.N }

func (rl *RingLattice) Derive(s kinetics.State, _ float64) kinetics.State {
	n := rl.N
	if len(s) < 2*n {
		return make(kinetics.State, 2*n)
	}
	dx := make(kinetics.State, 2*n)
	for r := 0; r < n; r++ {
		left := (r + n - 1) % n
		right := (r + 1) % n
		dx[r] = rl.A*s[r] + rl.B*s[n+r] + rl.Mu*(s[right]-2*s[r]+s[left])
		dx[n+r] = rl.C*s[r] + rl.D*s[n+r] + rl.Nu*(s[n+right]-2*s[n+r]+s[n+left])
	}
	return dx
}

// DefaultState is a uniform unit concentration with a small cosine
// perturbation on X, enough to seed mode 1.
func (rl *RingLattice) DefaultState() kinetics.State {
	s := make(kinetics.State, 2*rl.N)
	for r := 0; r < rl.N; r++ {
		s[r] = 1.0 + 0.1*math.Cos(2*math.Pi*float64(r)/float64(rl.N))
		s[rl.N+r] = 1.0
	}
	return s
}

// Total is the summed concentration over both morphogens; conserved only
// when all production coefficients vanish.
func (rl *RingLattice) Total(s kinetics.State) float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum
}

func (rl *RingLattice) GetParams() map[string]float64 {
	return map[string]float64{
		"a": rl.A, "b": rl.B, "c": rl.C, "d": rl.D,
		"mu": rl.Mu, "nu": rl.Nu,
	}
}

func (rl *RingLattice) SetParam(name string, v float64) error {
	switch name {
	case "a":
		rl.A = v
	case "b":
		rl.B = v
	case "c":
		rl.C = v
	case "d":
		rl.D = v
	case "mu":
		if v < 0 {
			return kinetics.ErrParameterBounds
		}
		rl.Mu = v
	case "nu":
		if v < 0 {
			return kinetics.ErrParameterBounds
		}
		rl.Nu = v
	}
	return nil
}
