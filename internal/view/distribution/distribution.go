// Package distribution builds the fixed-bin score histograms.
package distribution

import (
	"fmt"
	"strconv"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/scene"
	"github.com/DjordjeVuckovic/raglens/pkg/utils"
)

const (
	opacityActive = 1.0
	opacityDimmed = 0.3

	rampFloor = 0.15
)

type Layout struct {
	Width  float64      `yaml:"width"`
	Height float64      `yaml:"height"`
	Margin scene.Margin `yaml:"margin"`
	BarGap float64      `yaml:"bar_gap"`
}

func DefaultLayout() Layout {
	return Layout{
		Width:  360,
		Height: 220,
		Margin: scene.Margin{Top: 24, Right: 16, Bottom: 40, Left: 40},
		BarGap: 1,
	}
}

type Input struct {
	Points []domain.MetricPoint
	Filter *domain.ScoreFilter
	Layout Layout
}

// Build renders one histogram scene per metric.
func Build(in Input) []*scene.Scene {
	scenes := make([]*scene.Scene, 0, len(domain.Metrics))
	for _, m := range domain.Metrics {
		scenes = append(scenes, BuildHistogram(NewHistogram(in.Points, m), in.Filter, in.Layout))
	}
	return scenes
}

// SceneName is the scene name of the histogram for a metric.
func SceneName(m domain.Metric) string {
	return "distribution-" + string(m)
}

func BuildHistogram(h Histogram, filter *domain.ScoreFilter, l Layout) *scene.Scene {
	s := scene.New(SceneName(h.Metric), l.Width, l.Height)

	bottom := l.Height - l.Margin.Bottom
	xs := scene.NewLinear(domain.ScoreDomainMin, domain.ScoreDomainMax, l.Margin.Left, l.Width-l.Margin.Right).Clamped()
	ys := scene.NewLinear(0, float64(max(h.MaxCount(), 1)), bottom, l.Margin.Top)

	filtering := filter != nil && filter.Metric == h.Metric

	for _, b := range h.Bins {
		x0 := xs.Map(b.Range.Lo())
		x1 := xs.Map(b.Range.Hi())
		y := ys.Map(float64(b.Count))

		opacity := opacityActive
		if filtering && !b.Range.Overlaps(filter.Range) {
			opacity = opacityDimmed
		}

		s.Add(scene.Primitive{
			Kind:    scene.KindRect,
			Role:    scene.RoleBin,
			Target:  strconv.Itoa(b.Index),
			X:       x0 + l.BarGap/2,
			Y:       y,
			Width:   max(x1-x0-l.BarGap, 0),
			Height:  bottom - y,
			Fill:    h.BinColor(b),
			Opacity: opacity,
			Text:    strconv.Itoa(b.Count),
		})
	}

	s.Add(scene.Line(scene.RoleAxis, l.Margin.Left, bottom, l.Width-l.Margin.Right, bottom, scene.ColorAxis))
	for _, v := range xs.Ticks(BinCount / 2) {
		x := xs.Map(v)
		s.Add(scene.Text(scene.RoleTick, x, bottom+14, fmt.Sprintf("%.1f", utils.RoundDecimal(v, 1)), "middle"))
	}
	s.Add(scene.Text(scene.RoleTitle, l.Width/2, l.Height-6, h.Metric.Label(), "middle"))

	if h.Count > 0 {
		mx := xs.Map(h.Mean)
		line := scene.Line(scene.RoleMeanLine, mx, l.Margin.Top, mx, bottom, scene.ColorMean)
		line.Dash = "4 3"
		line.StrokeWidth = 1.5
		label := scene.Text(scene.RoleMeanLabel, mx+4, l.Margin.Top-6, MeanLabel(h.Mean), "start")
		label.Fill = scene.ColorMean
		s.Add(line, label)
	}

	return s
}

// BinColor shades a bin by where its midpoint falls in the observed range of the metric.
func (h Histogram) BinColor(b Bin) string {
	lo, hi := h.ColorDomain()
	t := scene.NewLinear(lo, hi, 0, 1).Clamped().Map((b.Range.Lo() + b.Range.Hi()) / 2)
	return scene.Blues.At(rampFloor + (1-rampFloor)*t)
}

func MeanLabel(mean float64) string {
	return "mean " + strconv.FormatFloat(utils.RoundDecimal(mean, domain.ScoreDecimalPlaces), 'f', domain.ScoreDecimalPlaces, 64)
}
