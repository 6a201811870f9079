package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/fingerprint"
	"github.com/DjordjeVuckovic/raglens/pkg/utils"
)

const (
	// DefaultStripWidth caps the number of glyphs in a terminal fingerprint strip.
	DefaultStripWidth = 48

	glyphGap = '·'
)

// heat glyphs ordered by increasing severity
var glyphs = []rune{'░', '▒', '▓', '█'}

type FingerprintOptions struct {
	StripWidth int
	// Limit truncates the table to the first n documents; 0 means all.
	Limit int
}

// WriteFingerprints renders one table row per document with a heat strip of its chunks.
func WriteFingerprints(w io.Writer, r fingerprint.Result, opts FingerprintOptions) error {
	if opts.StripWidth <= 0 {
		opts.StripWidth = DefaultStripWidth
	}

	title := fmt.Sprintf("Document fingerprints (sort: %s, weight: %s)", r.SortBy, strconv.FormatFloat(r.SeverityWeight, 'f', -1, 64))
	if _, err := fmt.Fprintf(w, "%s\n\n", SectionTitle(title)); err != nil {
		return fmt.Errorf("render fingerprints: %w", err)
	}
	if len(r.Documents) == 0 {
		_, err := fmt.Fprintln(w, "  no retrieved documents")
		return err
	}

	t := NewTable(
		Column{Header: "DOCUMENT"},
		Column{Header: "CHUNKS", Align: AlignRight},
		Column{Header: "FLAGS", Align: AlignRight, Color: ColorFlags},
		Column{Header: "POOR", Align: AlignRight, Color: ColorCount},
		Column{Header: "RETRIEVED", Align: AlignRight},
		Column{Header: "SEVERITY", Align: AlignRight},
		Column{Header: "FINGERPRINT"},
	)

	docs := r.Documents
	if opts.Limit > 0 && len(docs) > opts.Limit {
		docs = docs[:opts.Limit]
	}
	for _, d := range docs {
		strip, styled := Strip(d, r.MaxChunkSeverity, opts.StripWidth)
		sev := strconv.FormatFloat(utils.RoundDecimal(d.Severity, domain.ScoreDecimalPlaces), 'f', -1, 64)
		raw := []string{
			d.Title,
			strconv.Itoa(d.ChunkCount),
			strconv.Itoa(d.HumanFlags),
			strconv.Itoa(d.PoorLLM),
			strconv.Itoa(d.TotalRetrievals),
			sev,
			strip,
		}
		display := []string{
			"", "", "", "", "",
			severityColor(d.Severity, r.MaxChunkSeverity).Sprint(sev),
			styled,
		}
		t.AddStyledRow(raw, display)
	}

	if err := t.Render(w); err != nil {
		return err
	}
	if len(docs) < len(r.Documents) {
		_, err := fmt.Fprintf(w, "  %s\n", colorFaint.Sprintf("… %d more documents", len(r.Documents)-len(docs)))
		return err
	}
	return nil
}

// Strip renders a document's chunk slots as glyphs, returning the plain and
// coloured forms. Documents wider than width fold several slots into one
// glyph showing the most severe of them.
func Strip(d fingerprint.DocumentFingerprint, maxSeverity float64, width int) (string, string) {
	if width <= 0 {
		width = DefaultStripWidth
	}
	n := max(d.ChunkCount, 1)
	per := 1
	if n > width {
		per = (n + width - 1) / width
	}
	cells := (n + per - 1) / per

	worst := make([]float64, cells)
	observed := make([]bool, cells)
	for _, c := range d.Chunks {
		cell := c.Index / per
		if c.Index < 0 || cell >= cells {
			continue
		}
		if !observed[cell] || c.Severity > worst[cell] {
			worst[cell] = c.Severity
		}
		observed[cell] = true
	}

	scale := fingerprint.NewColorScale(maxSeverity)
	var plain, styled strings.Builder
	for cell := range cells {
		if !observed[cell] {
			plain.WriteRune(glyphGap)
			styled.WriteString(colorFaint.Sprint(string(glyphGap)))
			continue
		}
		g := glyphFor(scale.T(worst[cell]))
		plain.WriteRune(g)
		styled.WriteString(severityColor(worst[cell], maxSeverity).Sprint(string(g)))
	}
	return plain.String(), styled.String()
}

func glyphFor(t float64) rune {
	if t <= 0 {
		return glyphs[0]
	}
	i := int(t * float64(len(glyphs)))
	return glyphs[max(1, min(len(glyphs)-1, i))]
}
