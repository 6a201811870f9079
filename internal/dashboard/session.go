// Package dashboard keeps one coordinated set of views per reviewer session.
package dashboard

import (
	"sync"
	"time"

	"github.com/DjordjeVuckovic/raglens/internal/config"
	"github.com/DjordjeVuckovic/raglens/internal/coord"
	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/fingerprint"
	"github.com/DjordjeVuckovic/raglens/internal/ingest"
	"github.com/DjordjeVuckovic/raglens/internal/metrics"
	"github.com/DjordjeVuckovic/raglens/internal/scene"
	"github.com/DjordjeVuckovic/raglens/internal/view/correlation"
	"github.com/DjordjeVuckovic/raglens/internal/view/distribution"
	"github.com/DjordjeVuckovic/raglens/internal/view/fpview"
	"github.com/google/uuid"
)

// Session serialises every event of one dashboard. Each event replaces the
// controller state as a whole; readers always see a complete snapshot.
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	ctrl     *coord.Controller
	weight   float64
	sortBy   domain.SortKey
	hover    *fpview.HoverState
	lastSeen time.Time

	settings config.Settings
	cache    *fingerprint.Cache
	metrics  *metrics.Metrics
	now      func() time.Time
}

func newSession(points []domain.MetricPoint, settings config.Settings, cache *fingerprint.Cache, m *metrics.Metrics, now func() time.Time) *Session {
	ctrl := coord.NewController(points)
	ctrl.Restore(coord.State{Mode: settings.Mode})

	return &Session{
		ID:       uuid.New(),
		ctrl:     ctrl,
		weight:   ingest.ClampWeight(settings.SeverityWeight),
		sortBy:   ingest.ParseSortKey(string(settings.SortBy)),
		lastSeen: now(),
		settings: settings,
		cache:    cache,
		metrics:  m,
		now:      now,
	}
}

// Snapshot is the JSON view of a session's state.
type Snapshot struct {
	ID             uuid.UUID      `json:"id"`
	State          coord.State    `json:"state"`
	SeverityWeight float64        `json:"severityWeight"`
	SortBy         domain.SortKey `json:"sortBy"`
	PointCount     int            `json:"pointCount"`
	DetailRunID    string         `json:"detailRunId,omitempty"`
}

// Dashboard is everything a front-end needs to paint the three views.
type Dashboard struct {
	State         coord.State         `json:"state"`
	Highlighted   []string            `json:"highlightedRunIds"`
	DetailRunID   string              `json:"detailRunId,omitempty"`
	Correlation   *scene.Scene        `json:"correlation"`
	Distributions []*scene.Scene      `json:"distributions"`
	Fingerprints  *scene.Scene        `json:"fingerprints"`
	Tooltip       *fpview.TooltipView `json:"tooltip"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	detail, _ := s.ctrl.DetailRun()
	return Snapshot{
		ID:             s.ID,
		State:          s.ctrl.State(),
		SeverityWeight: s.weight,
		SortBy:         s.sortBy,
		PointCount:     len(s.ctrl.Points()),
		DetailRunID:    detail,
	}
}

func (s *Session) Points() []domain.MetricPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Points()
}

// ActivePoints is the subset every view renders under the current mode.
func (s *Session) ActivePoints() []domain.MetricPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.ActiveSubset()
}

func (s *Session) Fingerprints() fingerprint.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.fingerprints()
}

// fingerprints aggregates the active subset, so filter mode drops rows whose
// runs were filtered away. Callers hold s.mu.
func (s *Session) fingerprints() fingerprint.Result {
	return s.cache.Get(s.ctrl.ActiveSubset(), s.weight, s.sortBy)
}

func (s *Session) Dashboard() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	state := s.ctrl.State()
	subset := s.ctrl.ActiveSubset()
	highlighted := s.ctrl.HighlightIDs()
	result := s.fingerprints()
	layouts := s.settings.Layout

	var filter *domain.ScoreFilter
	if state.ScoreFilter != nil {
		f := *state.ScoreFilter
		filter = &f
	}

	detail, _ := s.ctrl.DetailRun()
	return Dashboard{
		State:       state,
		Highlighted: highlighted.Sorted(),
		DetailRunID: detail,
		Correlation: correlation.Build(correlation.Input{
			Points:      subset,
			Selected:    state.Selected(),
			Highlighted: highlighted,
			Mode:        state.Mode,
			Layout:      layouts.Correlation,
		}),
		Distributions: distribution.Build(distribution.Input{
			Points: subset,
			Filter: filter,
			Layout: layouts.Distribution,
		}),
		Fingerprints: fpview.Build(fpview.Input{
			Result:      result,
			Selection:   state.ChunkSelection,
			Highlighted: highlighted,
			Mode:        state.Mode,
			Layout:      layouts.Fingerprints,
		}),
		Tooltip: fpview.Tooltip(result, s.hover, s.settings.PreviewLength),
	}
}

// ChartInputs returns the active subset, the highlight set and the score
// filter as one consistent read.
func (s *Session) ChartInputs() ([]domain.MetricPoint, domain.RunSet, *domain.ScoreFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	state := s.ctrl.State()
	return s.ctrl.ActiveSubset(), s.ctrl.HighlightIDs(), state.ScoreFilter
}

// SetHover records the segment under the cursor; nil is a mouse-leave.
func (s *Session) SetHover(h *fpview.HoverState) *fpview.TooltipView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if h == nil {
		s.hover = nil
		return nil
	}
	hv := *h
	s.hover = &hv
	return fpview.Tooltip(s.fingerprints(), s.hover, s.settings.PreviewLength)
}

func (s *Session) Clear() coord.State {
	out, _ := s.Dispatch(EventRequest{Type: EventClear})
	return out.State
}

// LastSeen reports when the session last served a request.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch() {
	s.lastSeen = s.now()
}
