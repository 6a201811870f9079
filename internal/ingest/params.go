package ingest

import (
	"fmt"
	"math"
	"strings"

	"github.com/DjordjeVuckovic/raglens/internal/apperr"
	"github.com/DjordjeVuckovic/raglens/internal/domain"
)

const (
	DefaultSeverityWeight = 10.0
	MaxSeverityWeight     = 1000.0
)

// ClampWeight makes an externally supplied severity weight safe to feed into the aggregator.
func ClampWeight(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return DefaultSeverityWeight
	}
	if w > MaxSeverityWeight {
		return MaxSeverityWeight
	}
	return w
}

// ParseSortKey falls back to severity ordering for unknown keys.
func ParseSortKey(s string) domain.SortKey {
	k := domain.SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return domain.SortBySeverity
	}
	return k
}

func ParseMetric(s string) (domain.Metric, error) {
	m := domain.Metric(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", apperr.NewValidation(fmt.Sprintf("unknown metric %q, expected one of %v", s, domain.Metrics))
	}
	return m, nil
}

func ParseMode(s string) (domain.InteractionMode, error) {
	m := domain.InteractionMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", apperr.NewValidation(fmt.Sprintf("unknown interaction mode %q", s))
	}
	return m, nil
}
