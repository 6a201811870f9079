package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/raglens/internal/storage"
	"github.com/DjordjeVuckovic/raglens/internal/storage/es"
	"github.com/DjordjeVuckovic/raglens/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/raglens/internal/storage/pg"
	pkgserver "github.com/DjordjeVuckovic/raglens/pkg/server"
)

// Backend is an opened data source. Appender is nil for read-only sources.
type Backend struct {
	Reader   storage.PointReader
	Appender storage.PointAppender
	Health   pkgserver.HealthChecker
	close    func()
}

func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

func NewBackend(ctx context.Context, cfg *StorageConfig) (*Backend, error) {
	switch cfg.Type {
	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		reader, err := pg.NewReader(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{Reader: reader, Appender: reader, Health: pool, close: pool.Close}, nil

	case storage.ES:
		reader, err := es.NewReader(ctx, *cfg.Es)
		if err != nil {
			return nil, err
		}
		return &Backend{Reader: reader, Appender: reader, Health: reader}, nil

	case storage.JSON:
		return &Backend{
			Reader: storage.NewJSONFileReader(cfg.PointsFile),
			Health: pkgserver.NewOkHealthChecker(),
		}, nil

	case storage.InMem:
		store := in_mem.NewStore()
		return &Backend{Reader: store, Appender: store, Health: pkgserver.NewOkHealthChecker()}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
