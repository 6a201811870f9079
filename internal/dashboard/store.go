package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/raglens/internal/apperr"
	"github.com/DjordjeVuckovic/raglens/internal/config"
	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/fingerprint"
	"github.com/DjordjeVuckovic/raglens/internal/metrics"
	"github.com/google/uuid"
)

type StoreOption func(*Store)

func WithMetrics(m *metrics.Metrics) StoreOption {
	return func(s *Store) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// Store holds the open sessions. All sessions share one fingerprint cache, so
// reviewers looking at the same data reuse each other's aggregation.
type Store struct {
	lock     sync.RWMutex
	sessions map[uuid.UUID]*Session

	settings config.Settings
	cache    *fingerprint.Cache
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewStore(settings config.Settings, opts ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[uuid.UUID]*Session),
		settings: settings,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = fingerprint.NewCache(
		fingerprint.WithCapacity(settings.CacheCapacity),
		fingerprint.WithMetrics(s.metrics),
	)
	return s
}

// Create opens a session over a one-shot snapshot of the points.
func (s *Store) Create(points []domain.MetricPoint) *Session {
	sess := newSession(points, s.settings, s.cache, s.metrics, s.now)

	s.lock.Lock()
	s.sessions[sess.ID] = sess
	s.lock.Unlock()

	s.metrics.SessionOpened()
	slog.Info("Dashboard session opened", "id", sess.ID, "points", len(points))
	return sess
}

func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperr.NewNotFound("session", id.String())
	}
	return sess, nil
}

func (s *Store) Delete(id uuid.UUID) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return apperr.NewNotFound("session", id.String())
	}
	delete(s.sessions, id)
	s.metrics.SessionClosed()
	return nil
}

func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the configured TTL.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.settings.SessionTTL)

	s.lock.Lock()
	defer s.lock.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			s.metrics.SessionClosed()
			removed++
		}
	}
	if removed > 0 {
		slog.Info("Expired idle dashboard sessions", "count", removed)
	}
	return removed
}

// RunSweeper sweeps periodically until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
