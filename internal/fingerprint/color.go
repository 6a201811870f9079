package fingerprint

import (
	"math"

	"github.com/DjordjeVuckovic/raglens/internal/scene"
)

const (
	rampStart = 0.1
	rampEnd   = 1.0
)

// ColorScale maps chunk severity onto the heat ramp, normalised by the most
// severe chunk of the snapshot.
type ColorScale struct {
	max float64
}

func NewColorScale(maxSeverity float64) ColorScale {
	if math.IsNaN(maxSeverity) || maxSeverity < 1 {
		maxSeverity = 1
	}
	return ColorScale{max: maxSeverity}
}

// T returns the ramp parameter for a severity; zero severity returns 0.
func (s ColorScale) T(severity float64) float64 {
	if math.IsNaN(severity) || severity <= 0 {
		return 0
	}
	ratio := math.Min(severity/s.max, 1)
	return rampStart + ratio*(rampEnd-rampStart)
}

func (s ColorScale) Color(severity float64) string {
	t := s.T(severity)
	if t == 0 {
		return scene.ColorSafe
	}
	return scene.Heat.At(t)
}
