package fpview

import (
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/fingerprint"
)

const (
	DefaultPreviewLength = 120
	NoTextPlaceholder    = "No text available"

	ellipsis      = "…"
	tooltipOffset = 12
)

// ChunkClick resolves a clicked segment into a chunk selection carrying only
// the runs that retrieved that chunk.
func ChunkClick(r fingerprint.Result, key string) (domain.ChunkSelection, bool) {
	c, ok := r.Chunk(key)
	if !ok {
		return domain.ChunkSelection{}, false
	}
	idx := c.Index
	return domain.ChunkSelection{
		DocTitle:   c.DocTitle,
		ChunkKey:   &key,
		ChunkIndex: &idx,
		RunIDs:     slices.Clone(c.RunIDs),
	}, true
}

// DocumentClick resolves a clicked label into a whole-document selection.
func DocumentClick(r fingerprint.Result, title string) (domain.ChunkSelection, bool) {
	d, ok := r.Document(title)
	if !ok {
		return domain.ChunkSelection{}, false
	}
	return domain.ChunkSelection{
		DocTitle: d.Title,
		RunIDs:   slices.Clone(d.RunIDs),
	}, true
}

// HoverState is the segment currently under the cursor.
type HoverState struct {
	DocTitle string  `json:"docTitle"`
	ChunkKey string  `json:"chunkKey"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type TooltipView struct {
	DocTitle string  `json:"docTitle"`
	Ordinal  int     `json:"ordinal"`
	Preview  string  `json:"preview"`
	Flags    int     `json:"flags"`
	Poor     int     `json:"poor"`
	Runs     int     `json:"runs"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// Tooltip derives the tooltip from the hover state alone, so it exists exactly
// as long as something is hovered. A hover on a chunk that is gone returns nil.
func Tooltip(r fingerprint.Result, hover *HoverState, previewLength int) *TooltipView {
	if hover == nil {
		return nil
	}
	c, ok := r.Chunk(hover.ChunkKey)
	if !ok {
		return nil
	}
	if previewLength <= 0 {
		previewLength = DefaultPreviewLength
	}
	return &TooltipView{
		DocTitle: c.DocTitle,
		Ordinal:  c.Index + 1,
		Preview:  Preview(c.Text, previewLength),
		Flags:    c.Flags,
		Poor:     c.Poor,
		Runs:     c.Runs,
		X:        hover.X + tooltipOffset,
		Y:        hover.Y + tooltipOffset,
	}
}

// Preview collapses whitespace and truncates text to n runes.
func Preview(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return NoTextPlaceholder
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + ellipsis
}
