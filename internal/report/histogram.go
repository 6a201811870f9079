package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/view/distribution"
)

const DefaultBarWidth = 40

// WriteHistogram renders a metric's bins as horizontal bars. The bin matching
// filter, when given, is marked.
func WriteHistogram(w io.Writer, h distribution.Histogram, filter *domain.ScoreFilter, barWidth int) error {
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}

	title := fmt.Sprintf("%s (n=%d, %s)", h.Metric.Label(), h.Count, distribution.MeanLabel(h.Mean))
	if _, err := fmt.Fprintf(w, "%s\n\n", SectionTitle(title)); err != nil {
		return fmt.Errorf("render histogram: %w", err)
	}

	t := NewTable(
		Column{Header: "BIN"},
		Column{Header: "COUNT", Align: AlignRight, Color: ColorCount},
		Column{Header: ""},
	)
	maxCount := h.MaxCount()
	for _, b := range h.Bins {
		label := binLabel(b.Range)
		if filter != nil && filter.Metric == h.Metric && filter.Range == b.Range {
			label += " *"
		}
		n := 0
		if maxCount > 0 {
			n = b.Count * barWidth / maxCount
		}
		if b.Count > 0 && n == 0 {
			n = 1
		}
		bar := strings.Repeat("█", n)
		t.AddStyledRow(
			[]string{label, strconv.Itoa(b.Count), bar},
			[]string{"", "", colorGreen.Sprint(bar)},
		)
	}
	return t.Render(w)
}

func binLabel(r domain.ScoreRange) string {
	closing := ")"
	if r.InclusiveTop() {
		closing = "]"
	}
	return "[" + formatScore(r.Lo()) + ", " + formatScore(r.Hi()) + closing
}
