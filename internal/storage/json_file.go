package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/ingest"
)

// JSONFileReader serves points exported to a JSON array on disk.
type JSONFileReader struct {
	filePath string
}

func NewJSONFileReader(filePath string) *JSONFileReader {
	return &JSONFileReader{
		filePath: filePath,
	}
}

func (r *JSONFileReader) LoadPoints(ctx context.Context) ([]domain.MetricPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("read points file: %w", err)
	}

	points, err := ingest.ParsePoints(data)
	if err != nil {
		return nil, fmt.Errorf("parse points file %s: %w", r.filePath, err)
	}

	slog.Info("Loaded points from JSON file", "path", r.filePath, "count", len(points))
	return points, nil
}

var _ PointReader = (*JSONFileReader)(nil)
