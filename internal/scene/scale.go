package scene

import "math"

// Linear maps a continuous domain onto a pixel range.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
	Clamp  bool
}

func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

func (l Linear) Clamped() Linear {
	l.Clamp = true
	return l
}

func (l Linear) Map(v float64) float64 {
	span := l.Domain[1] - l.Domain[0]
	if span == 0 || math.IsNaN(v) {
		return l.Range[0]
	}
	t := (v - l.Domain[0]) / span
	if l.Clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return l.Range[0] + t*(l.Range[1]-l.Range[0])
}

// Ticks returns n+1 evenly spaced domain values including both ends.
func (l Linear) Ticks(n int) []float64 {
	if n <= 0 {
		return []float64{l.Domain[0], l.Domain[1]}
	}
	ticks := make([]float64, 0, n+1)
	step := (l.Domain[1] - l.Domain[0]) / float64(n)
	for i := 0; i <= n; i++ {
		ticks = append(ticks, l.Domain[0]+float64(i)*step)
	}
	return ticks
}
