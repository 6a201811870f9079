package distribution

import (
	"math"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
)

const (
	// BinCount is fixed so histograms stay comparable across refreshes.
	BinCount = 10
	BinWidth = 1.0 / BinCount
)

type Bin struct {
	Index int               `json:"index"`
	Range domain.ScoreRange `json:"range"`
	Count int               `json:"count"`
}

// BinRange returns [i/10, (i+1)/10); the last bin's upper bound is inclusive.
func BinRange(i int) domain.ScoreRange {
	i = max(0, min(BinCount-1, i))
	return domain.ScoreRange{float64(i) / BinCount, float64(i+1) / BinCount}
}

// BinIndex places a value in the bin whose range contains it, so a bar always
// counts exactly the points its click filter matches. Values outside [0,1] are
// clamped and 1.0 falls into the last bin.
func BinIndex(v float64) int {
	v = domain.ClampUnit(v)
	i := max(0, min(BinCount-1, int(v*BinCount)))
	// v*BinCount can round across a boundary; settle on the range that matches.
	for i > 0 && v < BinRange(i).Lo() {
		i--
	}
	for i < BinCount-1 && !BinRange(i).Contains(v) {
		i++
	}
	return i
}

// Histogram holds the fixed-width binning of one metric.
type Histogram struct {
	Metric domain.Metric `json:"metric"`
	Bins   []Bin         `json:"bins"`
	Count  int           `json:"count"`
	Mean   float64       `json:"mean"`
	Min    float64       `json:"min"`
	Max    float64       `json:"max"`
}

func NewHistogram(points []domain.MetricPoint, m domain.Metric) Histogram {
	h := Histogram{
		Metric: m,
		Bins:   make([]Bin, BinCount),
		Count:  len(points),
	}
	for i := range h.Bins {
		h.Bins[i] = Bin{Index: i, Range: BinRange(i)}
	}
	if len(points) == 0 {
		h.Max = domain.ScoreDomainMax
		return h
	}

	h.Min = math.Inf(1)
	h.Max = math.Inf(-1)
	sum := 0.0
	for _, p := range points {
		v := p.Metric(m)
		h.Bins[BinIndex(v)].Count++
		sum += v
		h.Min = math.Min(h.Min, v)
		h.Max = math.Max(h.Max, v)
	}
	h.Mean = sum / float64(len(points))

	return h
}

// ColorDomain is the observed [min, max] of the metric, padded when every value is equal.
func (h Histogram) ColorDomain() (float64, float64) {
	if h.Max <= h.Min {
		return h.Min, h.Min + 1
	}
	return h.Min, h.Max
}

func (h Histogram) MaxCount() int {
	m := 0
	for _, b := range h.Bins {
		m = max(m, b.Count)
	}
	return m
}

// Click returns the filter emitted by clicking bin i.
func (h Histogram) Click(i int) domain.ScoreFilter {
	return domain.ScoreFilter{Metric: h.Metric, Range: BinRange(i)}
}
