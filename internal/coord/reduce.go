package coord

import (
	"slices"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
)

// Reduce applies one event and returns the next state. The input state is
// left untouched.
//
//	event                | selected          | score filter | chunk selection
//	region (non-empty)   | region ids        | cleared      | cleared
//	region (empty)       | cleared           | unchanged    | unchanged
//	bin click            | cleared           | replaced     | cleared
//	chunk/document click | resolved run ids  | cleared      | replaced
//	point click          | id toggled        | unchanged    | cleared
//	close affordance     | cleared if it was | unchanged    | cleared
//	                     | the chunk's runs  |              |
//	clear all            | cleared           | cleared      | cleared
func Reduce(s State, e Event) State {
	next := s.clone()

	switch ev := e.(type) {
	case RegionSelected:
		ids := normalizeIDs(ev.RunIDs)
		next.SelectedRunIDs = ids
		if len(ids) > 0 {
			next.ScoreFilter = nil
			next.ChunkSelection = nil
		}

	case PointToggled:
		if ev.RunID == "" {
			return next
		}
		next.SelectedRunIDs = toggle(next.SelectedRunIDs, ev.RunID)
		next.ChunkSelection = nil

	case BinClicked:
		if !ev.Filter.Metric.Valid() {
			return next
		}
		f := ev.Filter
		next.SelectedRunIDs = nil
		next.ScoreFilter = &f
		next.ChunkSelection = nil

	case ChunkClicked:
		next = selectChunk(next, ev.Selection)

	case DocumentClicked:
		sel := ev.Selection
		sel.ChunkKey = nil
		sel.ChunkIndex = nil
		next = selectChunk(next, sel)

	case ChunkSelectionCleared:
		if next.ChunkSelection == nil {
			return next
		}
		if slices.Equal(next.SelectedRunIDs, normalizeIDs(next.ChunkSelection.RunIDs)) {
			next.SelectedRunIDs = nil
		}
		next.ChunkSelection = nil

	case ModeChanged:
		if ev.Mode.Valid() {
			next.Mode = ev.Mode
		}

	case ClearAll:
		next = State{Mode: next.Mode}
	}

	return next
}

func selectChunk(s State, sel domain.ChunkSelection) State {
	sel.RunIDs = normalizeIDs(sel.RunIDs)
	s.SelectedRunIDs = slices.Clone(sel.RunIDs)
	s.ScoreFilter = nil
	s.ChunkSelection = &sel
	return s
}

func toggle(ids []string, id string) []string {
	if i, found := slices.BinarySearch(ids, id); found {
		return normalizeIDs(slices.Delete(ids, i, i+1))
	}
	return normalizeIDs(append(ids, id))
}
