package dashboard

import (
	"github.com/DjordjeVuckovic/raglens/internal/apperr"
	"github.com/DjordjeVuckovic/raglens/internal/coord"
	"github.com/DjordjeVuckovic/raglens/internal/ingest"
	"github.com/DjordjeVuckovic/raglens/internal/view/correlation"
	"github.com/DjordjeVuckovic/raglens/internal/view/distribution"
	"github.com/DjordjeVuckovic/raglens/internal/view/fpview"
)

const (
	EventRegion   = "region"
	EventPoint    = "point"
	EventBin      = "bin"
	EventChunk    = "chunk"
	EventDocument = "document"
	EventClose    = "close"
	EventMode     = "mode"
	EventClear    = "clear"
)

// EventRequest is a raw user event as sent by a front-end. Only the fields of
// the given Type are read.
type EventRequest struct {
	Type     string            `json:"type"`
	Region   *correlation.Rect `json:"region,omitempty"`
	RunIDs   []string          `json:"runIds,omitempty"`
	RunID    string            `json:"runId,omitempty"`
	Metric   string            `json:"metric,omitempty"`
	Bin      *int              `json:"bin,omitempty"`
	ChunkKey string            `json:"chunkKey,omitempty"`
	DocTitle string            `json:"docTitle,omitempty"`
	Mode     string            `json:"mode,omitempty"`
}

// Dispatch resolves the request against the views currently on screen and
// applies it to the controller.
func (s *Session) Dispatch(req EventRequest) (coord.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	ev, err := s.resolve(req)
	if err != nil {
		return coord.Outcome{}, err
	}

	out := s.ctrl.Dispatch(ev)
	s.metrics.RecordEvent(ev.Type())
	return out, nil
}

func (s *Session) resolve(req EventRequest) (coord.Event, error) {
	switch req.Type {
	case EventRegion:
		if req.Region == nil {
			return coord.RegionSelected{RunIDs: req.RunIDs}, nil
		}
		ids := correlation.SelectRegion(s.settings.Layout.Correlation, s.ctrl.ActiveSubset(), *req.Region)
		return coord.RegionSelected{RunIDs: ids}, nil

	case EventPoint:
		if req.RunID == "" {
			return nil, apperr.NewValidation("point event needs a runId")
		}
		return coord.PointToggled{RunID: req.RunID}, nil

	case EventBin:
		m, err := ingest.ParseMetric(req.Metric)
		if err != nil {
			return nil, err
		}
		if req.Bin == nil || *req.Bin < 0 || *req.Bin >= distribution.BinCount {
			return nil, apperr.NewValidation("bin must be between 0 and 9")
		}
		h := distribution.NewHistogram(nil, m)
		return coord.BinClicked{Filter: h.Click(*req.Bin)}, nil

	case EventChunk:
		sel, ok := fpview.ChunkClick(s.fingerprints(), req.ChunkKey)
		if !ok {
			return nil, apperr.NewNotFound("chunk", req.ChunkKey)
		}
		return coord.ChunkClicked{Selection: sel}, nil

	case EventDocument:
		sel, ok := fpview.DocumentClick(s.fingerprints(), req.DocTitle)
		if !ok {
			return nil, apperr.NewNotFound("document", req.DocTitle)
		}
		return coord.DocumentClicked{Selection: sel}, nil

	case EventClose:
		return coord.ChunkSelectionCleared{}, nil

	case EventMode:
		mode, err := ingest.ParseMode(req.Mode)
		if err != nil {
			return nil, err
		}
		return coord.ModeChanged{Mode: mode}, nil

	case EventClear:
		return coord.ClearAll{}, nil

	default:
		return nil, apperr.NewValidation("unknown event type " + req.Type)
	}
}

// SettingsRequest changes the aggregation inputs and the interaction mode.
// Nil fields are left unchanged.
type SettingsRequest struct {
	SeverityWeight *float64 `json:"severityWeight,omitempty"`
	SortBy         *string  `json:"sortBy,omitempty"`
	Mode           *string  `json:"mode,omitempty"`
}

func (s *Session) UpdateSettings(req SettingsRequest) (Snapshot, error) {
	var mode *coord.ModeChanged
	if req.Mode != nil {
		m, err := ingest.ParseMode(*req.Mode)
		if err != nil {
			return Snapshot{}, err
		}
		mode = &coord.ModeChanged{Mode: m}
	}

	s.mu.Lock()
	if req.SeverityWeight != nil {
		s.weight = ingest.ClampWeight(*req.SeverityWeight)
	}
	if req.SortBy != nil {
		s.sortBy = ingest.ParseSortKey(*req.SortBy)
	}
	if mode != nil {
		s.ctrl.Dispatch(*mode)
		s.metrics.RecordEvent(mode.Type())
	}
	s.mu.Unlock()

	return s.Snapshot(), nil
}
