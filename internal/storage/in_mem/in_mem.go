package in_mem

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/storage"
	"github.com/google/uuid"
)

// Store keeps points in memory in insertion order. Appending a point whose run
// id already exists replaces it in place.
type Store struct {
	storageLock sync.RWMutex
	points      []domain.MetricPoint
	index       map[string]int
}

func NewStore(seed ...domain.MetricPoint) *Store {
	s := &Store{index: make(map[string]int)}
	for _, p := range seed {
		s.put(p)
	}
	return s
}

func (s *Store) LoadPoints(ctx context.Context) ([]domain.MetricPoint, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	return slices.Clone(s.points), nil
}

func (s *Store) AppendPoint(ctx context.Context, p domain.MetricPoint) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if p.RunID == "" {
		p.RunID = uuid.NewString()
	}
	s.put(p)
	slog.Debug("Saved point to in-memory storage", "runId", p.RunID)
	return nil
}

func (s *Store) put(p domain.MetricPoint) {
	if i, ok := s.index[p.RunID]; ok {
		s.points[i] = p
		return
	}
	s.index[p.RunID] = len(s.points)
	s.points = append(s.points, p)
}

var (
	_ storage.PointReader   = (*Store)(nil)
	_ storage.PointAppender = (*Store)(nil)
)
