package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/morphogen/internal/ring"
)

// ProfileSketch renders both morphogen profiles as stacked charts.
func ProfileSketch(prof ring.Profile, height int, caption string) string {
	if len(prof.X) == 0 {
		return ""
	}
	xg := asciigraph.Plot(prof.X,
		asciigraph.Height(height),
		asciigraph.Width(2*len(prof.X)),
		asciigraph.Caption(fmt.Sprintf("X morphogen  %s", caption)),
	)
	yg := asciigraph.Plot(prof.Y,
		asciigraph.Height(height),
		asciigraph.Width(2*len(prof.Y)),
		asciigraph.Caption(fmt.Sprintf("Y morphogen  %s", caption)),
	)
	return xg + "\n\n" + yg
}

// SeriesSketch renders one cell's concentration over time.
func SeriesSketch(values []float64, height int, caption string) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}
