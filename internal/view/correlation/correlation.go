// Package correlation builds the scatter of retrieval similarity against LLM score.
package correlation

import (
	"fmt"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/scene"
	"github.com/DjordjeVuckovic/raglens/pkg/utils"
)

const (
	opacityDefault     = 0.8
	opacityHighlighted = 1.0
	opacityDimmed      = 0.1
	tickCount          = 5
)

type Layout struct {
	Width       float64      `yaml:"width"`
	Height      float64      `yaml:"height"`
	Margin      scene.Margin `yaml:"margin"`
	PointRadius float64      `yaml:"point_radius"`
}

func DefaultLayout() Layout {
	return Layout{
		Width:       480,
		Height:      360,
		Margin:      scene.Margin{Top: 20, Right: 20, Bottom: 44, Left: 52},
		PointRadius: 5,
	}
}

// Scales returns the x (avg similarity) and y (LLM score) pixel scales.
func (l Layout) Scales() (x, y scene.Linear) {
	x = scene.NewLinear(domain.ScoreDomainMin, domain.ScoreDomainMax, l.Margin.Left, l.Width-l.Margin.Right).Clamped()
	y = scene.NewLinear(domain.ScoreDomainMin, domain.ScoreDomainMax, l.Height-l.Margin.Bottom, l.Margin.Top).Clamped()
	return x, y
}

// Position returns the pixel position of a point's mark.
func (l Layout) Position(p domain.MetricPoint) (float64, float64) {
	xs, ys := l.Scales()
	return xs.Map(p.AvgSimilarity), ys.Map(p.LLMScore)
}

type Input struct {
	Points      []domain.MetricPoint
	Selected    domain.RunSet
	Highlighted domain.RunSet
	Mode        domain.InteractionMode
	Layout      Layout
}

// Build renders one mark per point. Zero points still yields axes.
func Build(in Input) *scene.Scene {
	l := in.Layout
	s := scene.New("correlation", l.Width, l.Height)
	drawAxes(s, l)

	dimming := in.Mode == domain.ModeHighlight && len(in.Highlighted) > 0

	var back, front []scene.Primitive
	for _, p := range in.Points {
		cx, cy := l.Position(p)
		mark := scene.Primitive{
			Kind:    scene.KindCircle,
			Role:    scene.RolePoint,
			Target:  p.RunID,
			X:       cx,
			Y:       cy,
			Radius:  l.PointRadius,
			Fill:    FillFor(p),
			Opacity: opacityDefault,
		}

		if in.Selected.Has(p.RunID) {
			mark.Stroke = scene.ColorSelection
			mark.StrokeWidth = 2
		}

		if dimming {
			if in.Highlighted.Has(p.RunID) {
				mark.Opacity = opacityHighlighted
				front = append(front, mark)
				continue
			}
			mark.Opacity = opacityDimmed
		}
		back = append(back, mark)
	}

	s.Add(back...)
	s.Add(front...)
	return s
}

// FillFor colours a mark by whether any human concern was raised; magnitude is irrelevant.
func FillFor(p domain.MetricPoint) string {
	if p.Flagged() {
		return scene.ColorFlagged
	}
	return scene.ColorUnflagged
}

func drawAxes(s *scene.Scene, l Layout) {
	xs, ys := l.Scales()
	bottom := l.Height - l.Margin.Bottom
	left := l.Margin.Left

	s.Add(
		scene.Line(scene.RoleAxis, left, bottom, l.Width-l.Margin.Right, bottom, scene.ColorAxis),
		scene.Line(scene.RoleAxis, left, l.Margin.Top, left, bottom, scene.ColorAxis),
	)

	for _, v := range xs.Ticks(tickCount) {
		x := xs.Map(v)
		s.Add(
			scene.Line(scene.RoleTick, x, bottom, x, bottom+4, scene.ColorAxis),
			scene.Text(scene.RoleTick, x, bottom+16, formatTick(v), "middle"),
		)
	}
	for _, v := range ys.Ticks(tickCount) {
		y := ys.Map(v)
		s.Add(
			scene.Line(scene.RoleTick, left-4, y, left, y, scene.ColorAxis),
			scene.Text(scene.RoleTick, left-8, y+4, formatTick(v), "end"),
		)
	}

	s.Add(
		scene.Text(scene.RoleTitle, (left+l.Width-l.Margin.Right)/2, l.Height-6, domain.MetricSimilarity.Label(), "middle"),
		scene.Text(scene.RoleTitle, 12, (l.Margin.Top+bottom)/2, domain.MetricLLM.Label(), "middle"),
	)
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.1f", utils.RoundDecimal(v, 1))
}
