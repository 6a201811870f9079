package domain

import "math"

type Metric string

const (
	MetricLLM        Metric = "llm"
	MetricSimilarity Metric = "similarity"
)

// Metrics lists the continuous metrics in display order.
var Metrics = []Metric{MetricLLM, MetricSimilarity}

func (m Metric) Valid() bool {
	return m == MetricLLM || m == MetricSimilarity
}

func (m Metric) Label() string {
	switch m {
	case MetricSimilarity:
		return "Avg. retrieval similarity"
	default:
		return "LLM score"
	}
}

const (
	ScoreDomainMin = 0.0
	ScoreDomainMax = 1.0

	// ScoreDecimalPlaces is used for numeric labels rendered next to the charts.
	ScoreDecimalPlaces = 2

	rangeEpsilon = 1e-9
)

// ScoreRange is a half-open interval [Lo, Hi). When Hi reaches the top of the
// score domain the upper bound becomes inclusive so that 1.0 is never dropped.
// Values are clamped into the score domain before the test, so scores outside
// [0,1] belong to the bottom or top range like they do in the histogram.
type ScoreRange [2]float64

func (r ScoreRange) Lo() float64 { return r[0] }
func (r ScoreRange) Hi() float64 { return r[1] }

func (r ScoreRange) InclusiveTop() bool {
	return r[1] >= ScoreDomainMax-rangeEpsilon
}

func (r ScoreRange) Contains(v float64) bool {
	v = ClampUnit(v)
	if v < r[0] {
		return false
	}
	if v < r[1] {
		return true
	}
	return r.InclusiveTop() && v <= r[1]+rangeEpsilon
}

// Overlaps reports whether the two ranges share any part of the score axis.
func (r ScoreRange) Overlaps(o ScoreRange) bool {
	return r[0] < o[1] && o[0] < r[1]
}

// ClampUnit clamps a score into the [0,1] domain, mapping NaN to 0.
func ClampUnit(v float64) float64 {
	if math.IsNaN(v) || v < ScoreDomainMin {
		return ScoreDomainMin
	}
	if v > ScoreDomainMax {
		return ScoreDomainMax
	}
	return v
}

// ScoreFilter restricts a metric to a score range, as chosen by a histogram bin click.
type ScoreFilter struct {
	Metric Metric     `json:"metric"`
	Range  ScoreRange `json:"range"`
}

// Matches reports whether the point's metric falls inside the filter range.
func (f ScoreFilter) Matches(p MetricPoint) bool {
	return f.Range.Contains(p.Metric(f.Metric))
}
