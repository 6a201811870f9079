package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/view/correlation"
	"github.com/DjordjeVuckovic/raglens/internal/view/distribution"
)

// ErrNoData is returned when a chart has nothing to plot.
var ErrNoData = errors.New("chart has no data")

const (
	chartWidth  = 640
	chartHeight = 480
	dotWidth    = 5
	dimAlpha    = 40
)

// CorrelationSVG plots avg similarity against LLM score. Points outside a non
// empty highlight set are faded.
func CorrelationSVG(w io.Writer, points []domain.MetricPoint, highlighted domain.RunSet) error {
	if len(points) == 0 {
		return ErrNoData
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	colors := make([]drawing.Color, len(points))
	for i, p := range points {
		xs[i] = domain.ClampUnit(p.AvgSimilarity)
		ys[i] = domain.ClampUnit(p.LLMScore)
		c := hexColor(correlation.FillFor(p))
		if len(highlighted) > 0 && !highlighted.Has(p.RunID) {
			c.A = dimAlpha
		}
		colors[i] = c
	}

	ch := chart.Chart{
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  domain.MetricSimilarity.Label(),
			Range: unitRange(),
			Ticks: unitTicks(),
		},
		YAxis: chart.YAxis{
			Name:  domain.MetricLLM.Label(),
			Range: unitRange(),
			Ticks: unitTicks(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "runs",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    dotWidth,
					DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
						return colors[index]
					},
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	if err := ch.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render correlation chart: %w", err)
	}
	return nil
}

// DistributionSVG renders one histogram as a bar chart. Bars outside an active
// filter on the same metric are faded.
func DistributionSVG(w io.Writer, h distribution.Histogram, filter *domain.ScoreFilter) error {
	if h.Count == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, len(h.Bins))
	for _, b := range h.Bins {
		c := hexColor(h.BinColor(b))
		if filter != nil && filter.Metric == h.Metric && !b.Range.Overlaps(filter.Range) {
			c.A = dimAlpha
		}
		bars = append(bars, chart.Value{
			Label: formatScore(b.Range.Lo()),
			Value: float64(b.Count),
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}

	bc := chart.BarChart{
		Title:      fmt.Sprintf("%s (%s)", h.Metric.Label(), distribution.MeanLabel(h.Mean)),
		Width:      chartWidth,
		Height:     chartHeight / 2,
		BarWidth:   40,
		BarSpacing: 8,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(max(h.MaxCount(), 1))},
		},
		Bars: bars,
	}
	if err := bc.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render %s histogram: %w", h.Metric, err)
	}
	return nil
}

func unitRange() *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: domain.ScoreDomainMin, Max: domain.ScoreDomainMax}
}

func unitTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, 6)
	for i := 0; i <= 5; i++ {
		v := float64(i) / 5
		ticks = append(ticks, chart.Tick{Value: v, Label: formatScore(v)})
	}
	return ticks
}

func hexColor(hex string) drawing.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return drawing.ColorBlack
	}
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}
