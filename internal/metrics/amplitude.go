package metrics

import "github.com/san-kum/morphogen/internal/kinetics"

// Amplitude tracks the peak-to-peak spread of the X morphogen over the
// ring, the simplest measure of how far the profile is from uniform.
// It expects the [x_0..x_{N-1}, y_0..y_{N-1}] state layout.
type Amplitude struct {
	name    string
	cells   int
	max     float64
	samples int
}

func NewAmplitude(cells int) *Amplitude {
	return &Amplitude{
		name:  "amplitude",
		cells: cells,
	}
}

func (a *Amplitude) Name() string { return a.name }

func (a *Amplitude) Observe(x kinetics.State, t float64) {
	if len(x) < a.cells || a.cells == 0 {
		return
	}
	lo, hi := x[0], x[0]
	for _, v := range x[:a.cells] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if spread := hi - lo; spread > a.max {
		a.max = spread
	}
	a.samples++
}

func (a *Amplitude) Value() float64 {
	return a.max
}

func (a *Amplitude) Reset() {
	a.max = 0
	a.samples = 0
}
