// Package coord owns the shared selection state of the dashboard and derives
// what each view receives from it.
package coord

import (
	"slices"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
)

// State is replaced as a whole on every event; it is never patched in place.
type State struct {
	SelectedRunIDs []string               `json:"selectedRunIds"`
	ScoreFilter    *domain.ScoreFilter    `json:"activeScoreFilter"`
	ChunkSelection *domain.ChunkSelection `json:"activeChunkSelection"`
	Mode           domain.InteractionMode `json:"interactionMode"`
}

func NewState() State {
	return State{Mode: domain.ModeHighlight}
}

// Empty reports whether no selection of any kind is active.
func (s State) Empty() bool {
	return len(s.SelectedRunIDs) == 0 && s.ScoreFilter == nil && s.ChunkSelection == nil
}

func (s State) Selected() domain.RunSet {
	return domain.NewRunSet(s.SelectedRunIDs...)
}

func (s State) clone() State {
	out := State{Mode: s.Mode, SelectedRunIDs: slices.Clone(s.SelectedRunIDs)}
	if s.ScoreFilter != nil {
		f := *s.ScoreFilter
		out.ScoreFilter = &f
	}
	if s.ChunkSelection != nil {
		c := *s.ChunkSelection
		c.RunIDs = slices.Clone(c.RunIDs)
		out.ChunkSelection = &c
	}
	return out
}

// normalizeIDs sorts and de-duplicates run ids, returning nil for an empty set.
func normalizeIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
