// Package fpview builds the document fingerprint rows: one coloured segment per
// chunk slot, with document and chunk level selection.
package fpview

import (
	"strconv"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/fingerprint"
	"github.com/DjordjeVuckovic/raglens/internal/scene"
)

const (
	SceneName = "fingerprints"

	opacityFull      = 1.0
	opacitySelectDim = 0.35
	opacityUnrelated = 0.15

	badgeCount = 3
	colorPoor  = "#f58518"
)

type Input struct {
	Result      fingerprint.Result
	Selection   *domain.ChunkSelection
	Highlighted domain.RunSet
	Mode        domain.InteractionMode
	Layout      Layout
}

// independentHighlight reports whether the highlight set came from somewhere
// other than the fingerprint selection itself.
func (in Input) independentHighlight() bool {
	if in.Mode != domain.ModeHighlight || len(in.Highlighted) == 0 {
		return false
	}
	if in.Selection == nil {
		return true
	}
	return !in.Highlighted.Equal(in.Selection.RunIDs)
}

func (in Input) documentSelected(title string) bool {
	return in.Selection != nil && in.Selection.IsDocument() && in.Selection.DocTitle == title
}

func (in Input) chunkSelectionActive() bool {
	return in.Selection != nil && !in.Selection.IsDocument()
}

func Build(in Input) *scene.Scene {
	l := in.Layout
	docs := in.Result.Documents
	s := scene.New(SceneName, l.Width, l.Height(len(docs)))
	colors := fingerprint.NewColorScale(in.Result.MaxChunkSeverity)
	independent := in.independentHighlight()

	for i, doc := range docs {
		y := l.RowY(i)
		selected := in.documentSelected(doc.Title)

		rowOpacity := opacityFull
		if independent && !selected && !in.Highlighted.Intersects(doc.RunIDs) {
			rowOpacity = opacityUnrelated
		}

		row := scene.Primitive{
			Kind:    scene.KindRect,
			Role:    scene.RoleRow,
			Target:  doc.Title,
			X:       l.Margin.Left,
			Y:       y,
			Width:   l.Width - l.Margin.Left - l.Margin.Right,
			Height:  l.RowHeight,
			Fill:    "none",
			Opacity: rowOpacity,
		}
		if selected {
			row.Fill = scene.ColorRowTint
			row.Stroke = scene.ColorRowBorder
			row.StrokeWidth = 1.5
		}
		s.Add(row)

		mid := y + l.RowHeight/2 + 4
		label := scene.Text(scene.RoleDocLabel, l.Margin.Left+4, mid, doc.Title, "start")
		label.Target = doc.Title
		label.Opacity = rowOpacity
		s.Add(label)

		badgeX := l.Margin.Left + l.LabelWidth
		for j, b := range badges(doc) {
			p := scene.Text(scene.RoleBadge, badgeX+float64(j)*l.BadgeWidth+l.BadgeWidth/2, mid, strconv.Itoa(b.value), "middle")
			p.Target = doc.Title
			p.Fill = b.color
			p.Opacity = rowOpacity
			s.Add(p)
		}

		addTrack(s, in, doc, y, rowOpacity, colors, independent)
	}

	return s
}

type badge struct {
	value int
	color string
}

// badges returns the flags, poor and retrieved counts in display order.
func badges(doc fingerprint.DocumentFingerprint) [badgeCount]badge {
	return [badgeCount]badge{
		{value: doc.HumanFlags, color: scene.ColorFlagged},
		{value: doc.PoorLLM, color: colorPoor},
		{value: doc.TotalRetrievals, color: scene.ColorAxis},
	}
}

func addTrack(s *scene.Scene, in Input, doc fingerprint.DocumentFingerprint, y, rowOpacity float64, colors fingerprint.ColorScale, independent bool) {
	l := in.Layout
	x0 := l.TrackX()

	if len(doc.Chunks) == 0 {
		s.Add(scene.Primitive{
			Kind:        scene.KindRect,
			Role:        scene.RoleTrack,
			Target:      doc.Title,
			X:           x0,
			Y:           y,
			Width:       l.TrackWidth(),
			Height:      l.RowHeight,
			Fill:        "none",
			Stroke:      scene.ColorGap,
			StrokeWidth: 1,
			Opacity:     rowOpacity,
		})
		return
	}

	slots := slotChunks(doc.Chunks)
	for _, seg := range Segments(l.TrackWidth(), l.MinSegmentWidth, doc.ChunkCount) {
		c, ok := slots[seg.Index]
		if !ok {
			s.Add(scene.Primitive{
				Kind:    scene.KindRect,
				Role:    scene.RoleGap,
				Target:  doc.Title,
				X:       x0 + seg.X,
				Y:       y,
				Width:   seg.Width,
				Height:  l.RowHeight,
				Fill:    scene.ColorGap,
				Opacity: rowOpacity,
			})
			continue
		}

		p := scene.Primitive{
			Kind:    scene.KindRect,
			Role:    scene.RoleSegment,
			Target:  c.Key,
			X:       x0 + seg.X,
			Y:       y,
			Width:   seg.Width,
			Height:  l.RowHeight,
			Fill:    colors.Color(c.Severity),
			Opacity: segmentOpacity(in, c, independent),
		}
		if in.Selection != nil && in.Selection.Selects(c.Key) {
			p.Stroke = scene.ColorSelection
			p.StrokeWidth = 2
		}
		s.Add(p)
	}
}

func segmentOpacity(in Input, c fingerprint.ChunkAggregate, independent bool) float64 {
	switch {
	case in.Selection != nil && in.Selection.Selects(c.Key):
		return opacityFull
	case independent:
		if in.Highlighted.Intersects(c.RunIDs) {
			return opacityFull
		}
		return opacityUnrelated
	case in.chunkSelectionActive():
		return opacitySelectDim
	default:
		return opacityFull
	}
}

// slotChunks maps each chunk index to the chunk drawn there. When several chunk
// ids share an index the most severe one wins.
func slotChunks(chunks []fingerprint.ChunkAggregate) map[int]fingerprint.ChunkAggregate {
	slots := make(map[int]fingerprint.ChunkAggregate, len(chunks))
	for _, c := range chunks {
		if cur, ok := slots[c.Index]; ok && cur.Severity >= c.Severity {
			continue
		}
		slots[c.Index] = c
	}
	return slots
}
