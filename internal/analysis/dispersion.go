package analysis

import (
	"math"

	"github.com/san-kum/morphogen/internal/ring"
)

// ModeClass labels the qualitative behaviour a mode drives on the ring.
type ModeClass int

const (
	// Decaying: both roots have negative real part; the mode dies out.
	Decaying ModeClass = iota
	// UniformDrift: the zero mode grows monotonically, scaling the whole
	// ring without patterning it.
	UniformDrift
	// UniformOscillation: the zero mode grows or persists with complex
	// roots; all cells oscillate in phase.
	UniformOscillation
	// StationaryWave: a nonzero mode grows with real roots, freezing into
	// a standing concentration wave.
	StationaryWave
	// OscillatoryWave: a nonzero mode grows with complex roots, producing
	// travelling or pulsing waves.
	OscillatoryWave
)

func (c ModeClass) String() string {
	switch c {
	case Decaying:
		return "decaying"
	case UniformDrift:
		return "uniform drift"
	case UniformOscillation:
		return "uniform oscillation"
	case StationaryWave:
		return "stationary wave"
	case OscillatoryWave:
		return "oscillatory wave"
	default:
		return "unknown"
	}
}

// ModeRate is one mode's growth information.
type ModeRate struct {
	Mode      int
	Rate      complex128 // root with the largest real part
	Secondary complex128
	Class     ModeClass
}

// DispersionRelation holds growth rates for every mode of a parameter set.
type DispersionRelation struct {
	Modes []ModeRate
}

const imagTol = 1e-12

// Dispersion computes the per-mode growth rates of a ring with n cells
// under parameter set p.
func Dispersion(p ring.Params, n int) *DispersionRelation {
	rates := ring.GrowthRates(n, p)
	if rates == nil {
		return nil
	}

	d := &DispersionRelation{Modes: make([]ModeRate, n)}
	for s, pair := range rates {
		p1, p2 := pair[0], pair[1]
		if real(p2) > real(p1) {
			p1, p2 = p2, p1
		}
		d.Modes[s] = ModeRate{
			Mode:      s,
			Rate:      p1,
			Secondary: p2,
			Class:     classify(s, p1),
		}
	}
	return d
}

// Dominant is the fastest-growing mode; its wavenumber is the pattern the
// ring amplifies first.
func (d *DispersionRelation) Dominant() ModeRate {
	best := d.Modes[0]
	for _, m := range d.Modes[1:] {
		if real(m.Rate) > real(best.Rate) {
			best = m
		}
	}
	return best
}

func classify(mode int, rate complex128) ModeClass {
	if real(rate) < 0 {
		return Decaying
	}
	oscillatory := math.Abs(imag(rate)) > imagTol
	if mode == 0 {
		if oscillatory {
			return UniformOscillation
		}
		return UniformDrift
	}
	if oscillatory {
		return OscillatoryWave
	}
	return StationaryWave
}
