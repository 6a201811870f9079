package storage

import (
	"context"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
)

// PointReader is the one-shot data feed of a dashboard.
type PointReader interface {
	LoadPoints(ctx context.Context) ([]domain.MetricPoint, error)
}

// PointAppender accepts points produced after start-up, e.g. by live generation.
type PointAppender interface {
	AppendPoint(ctx context.Context, p domain.MetricPoint) error
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	JSON  Type = "json"
	InMem Type = "in_mem"
)

var Types = []Type{ES, PG, JSON, InMem}

func (t Type) Valid() bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storage type: %s"
	ErrReadOnly          StorerError = "storage is read-only"
)

func (e StorerError) Error() string {
	return string(e)
}
