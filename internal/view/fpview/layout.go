package fpview

import (
	"math"

	"github.com/DjordjeVuckovic/raglens/internal/scene"
)

// minDrawableWidth is the narrowest slot a segment is given, whatever the layout says.
const minDrawableWidth = 0.5

type Layout struct {
	Width           float64      `yaml:"width"`
	RowHeight       float64      `yaml:"row_height"`
	RowGap          float64      `yaml:"row_gap"`
	LabelWidth      float64      `yaml:"label_width"`
	BadgeWidth      float64      `yaml:"badge_width"`
	MinSegmentWidth float64      `yaml:"min_segment_width"`
	Margin          scene.Margin `yaml:"margin"`
}

func DefaultLayout() Layout {
	return Layout{
		Width:           760,
		RowHeight:       22,
		RowGap:          6,
		LabelWidth:      180,
		BadgeWidth:      36,
		MinSegmentWidth: 4,
		Margin:          scene.Margin{Top: 8, Right: 12, Bottom: 8, Left: 8},
	}
}

// TrackX is where the segment track of every row begins.
func (l Layout) TrackX() float64 {
	return l.Margin.Left + l.LabelWidth + badgeCount*l.BadgeWidth
}

func (l Layout) TrackWidth() float64 {
	return max(l.Width-l.Margin.Right-l.TrackX(), 0)
}

// RowY is the top of row i.
func (l Layout) RowY(i int) float64 {
	return l.Margin.Top + float64(i)*(l.RowHeight+l.RowGap)
}

func (l Layout) Height(rows int) float64 {
	if rows == 0 {
		return l.Margin.Top + l.Margin.Bottom
	}
	return l.RowY(rows) - l.RowGap + l.Margin.Bottom
}

// Segment is the horizontal extent of one chunk slot relative to the track start.
type Segment struct {
	Index int
	X     float64
	Width float64
}

// Segments divides the track evenly between chunkCount slots. Each slot is at
// least minWidth wide; a slot reaching past the track end is clipped and slots
// starting at or beyond it are dropped, so the result never outgrows the track.
func Segments(trackWidth, minWidth float64, chunkCount int) []Segment {
	if chunkCount <= 0 || trackWidth <= 0 {
		return nil
	}
	w := max(trackWidth/float64(chunkCount), minWidth, minDrawableWidth)
	visible := min(chunkCount, int(math.Ceil(trackWidth/w)))

	segs := make([]Segment, 0, visible)
	for i := 0; i < visible; i++ {
		x := float64(i) * w
		if x >= trackWidth {
			break
		}
		segs = append(segs, Segment{Index: i, X: x, Width: min(w, trackWidth-x)})
	}
	return segs
}
