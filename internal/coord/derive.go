package coord

import "github.com/DjordjeVuckovic/raglens/internal/domain"

// FilterMatches returns the run ids whose metric falls in the filter range.
// Membership does not depend on the interaction mode.
func FilterMatches(points []domain.MetricPoint, f *domain.ScoreFilter) domain.RunSet {
	out := make(domain.RunSet)
	if f == nil {
		return out
	}
	for _, p := range points {
		if f.Matches(p) {
			out[p.RunID] = struct{}{}
		}
	}
	return out
}

// HighlightIDs is the union of the selected runs and the runs matching the
// score filter, always derived from the full point list. Ids that no longer
// exist in the list are dropped, so a stale selection highlights nothing.
func HighlightIDs(points []domain.MetricPoint, s State) domain.RunSet {
	selected := s.Selected()
	matches := FilterMatches(points, s.ScoreFilter)

	out := make(domain.RunSet)
	for _, p := range points {
		if selected.Has(p.RunID) || matches.Has(p.RunID) {
			out[p.RunID] = struct{}{}
		}
	}
	return out
}

// ActiveSubset is the list every view renders. Highlight mode passes the full
// list through; filter mode applies the selection and the score filter as a
// logical AND.
func ActiveSubset(points []domain.MetricPoint, s State) []domain.MetricPoint {
	if s.Mode != domain.ModeFilter {
		return points
	}
	if len(s.SelectedRunIDs) == 0 && s.ScoreFilter == nil {
		return points
	}

	selected := s.Selected()
	out := make([]domain.MetricPoint, 0, len(points))
	for _, p := range points {
		if len(selected) > 0 && !selected.Has(p.RunID) {
			continue
		}
		if s.ScoreFilter != nil && !s.ScoreFilter.Matches(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// DetailRun returns the run the host may open a detail page for: the single
// selected run, or in filter mode the single point left by the filters.
func DetailRun(points []domain.MetricPoint, s State) (string, bool) {
	if len(s.SelectedRunIDs) == 1 {
		id := s.SelectedRunIDs[0]
		for _, p := range points {
			if p.RunID == id {
				return id, true
			}
		}
		return "", false
	}

	if s.Mode == domain.ModeFilter && !s.Empty() {
		if subset := ActiveSubset(points, s); len(subset) == 1 {
			return subset[0].RunID, true
		}
	}
	return "", false
}
