package coord

import "github.com/DjordjeVuckovic/raglens/internal/domain"

// Event is a selection request emitted by one of the views.
type Event interface {
	Type() string
}

// RegionSelected carries the run ids inside a dragged rectangle. No ids means
// the region was empty or a tap.
type RegionSelected struct {
	RunIDs []string
}

// PointToggled is a click on a single scatter mark.
type PointToggled struct {
	RunID string
}

type BinClicked struct {
	Filter domain.ScoreFilter
}

type ChunkClicked struct {
	Selection domain.ChunkSelection
}

type DocumentClicked struct {
	Selection domain.ChunkSelection
}

// ChunkSelectionCleared is the close affordance of the fingerprint view.
type ChunkSelectionCleared struct{}

type ModeChanged struct {
	Mode domain.InteractionMode
}

type ClearAll struct{}

func (RegionSelected) Type() string        { return "region_selected" }
func (PointToggled) Type() string          { return "point_toggled" }
func (BinClicked) Type() string            { return "bin_clicked" }
func (ChunkClicked) Type() string          { return "chunk_clicked" }
func (DocumentClicked) Type() string       { return "document_clicked" }
func (ChunkSelectionCleared) Type() string { return "chunk_selection_cleared" }
func (ModeChanged) Type() string           { return "mode_changed" }
func (ClearAll) Type() string              { return "clear_all" }
