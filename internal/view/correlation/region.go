package correlation

import (
	"math"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
)

// Rect is a dragged region in pixel coordinates; corners may come in any order.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

func (r Rect) Normalize() Rect {
	return Rect{
		X0: math.Min(r.X0, r.X1),
		Y0: math.Min(r.Y0, r.Y1),
		X1: math.Max(r.X0, r.X1),
		Y1: math.Max(r.Y0, r.Y1),
	}
}

// Empty reports a tap without drag.
func (r Rect) Empty() bool {
	n := r.Normalize()
	return n.X1-n.X0 == 0 || n.Y1-n.Y0 == 0
}

// SelectRegion returns the ids of points whose marks fall inside the closed region.
// An empty region selects nothing, which clears the selection upstream.
func SelectRegion(l Layout, points []domain.MetricPoint, r Rect) []string {
	if r.Empty() {
		return nil
	}
	n := r.Normalize()

	var ids []string
	for _, p := range points {
		x, y := l.Position(p)
		if x >= n.X0 && x <= n.X1 && y >= n.Y0 && y <= n.Y1 {
			ids = append(ids, p.RunID)
		}
	}
	return ids
}
