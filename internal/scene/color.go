package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Ramp is a continuous colour scale built from evenly spaced stops.
type Ramp struct {
	stops []colorful.Color
}

func MustRamp(hexStops ...string) Ramp {
	stops := make([]colorful.Color, 0, len(hexStops))
	for _, h := range hexStops {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("scene: invalid colour stop " + h)
		}
		stops = append(stops, c)
	}
	if len(stops) == 0 {
		panic("scene: ramp needs at least one stop")
	}
	return Ramp{stops: stops}
}

// At interpolates the ramp at t in [0,1]; t outside the range is clamped.
func (r Ramp) At(t float64) string {
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))
	if len(r.stops) == 1 {
		return r.stops[0].Hex()
	}

	pos := t * float64(len(r.stops)-1)
	i := int(math.Floor(pos))
	if i >= len(r.stops)-1 {
		return r.stops[len(r.stops)-1].Hex()
	}
	return r.stops[i].BlendRgb(r.stops[i+1], pos-float64(i)).Clamped().Hex()
}

var (
	// Heat runs from pale yellow to deep red.
	Heat = MustRamp("#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c", "#fc4e2a", "#e31a1c", "#bd0026", "#800026")
	// Blues runs from light to dark blue.
	Blues = MustRamp("#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b")
)

const (
	ColorSafe      = "#fbfbf7"
	ColorGap       = "#eeeeee"
	ColorFlagged   = "#e45756"
	ColorUnflagged = "#4c78a8"
	ColorSelection = "#111111"
	ColorAxis      = "#888888"
	ColorMean      = "#d62728"
	ColorRowTint   = "#fff4e5"
	ColorRowBorder = "#f58518"
)
