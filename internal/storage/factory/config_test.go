package factory

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/raglens/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *StorageConfig)
	}{
		{name: "missing type", env: map[string]string{}, wantErr: true},
		{name: "unknown type", env: map[string]string{"STORAGE_TYPE": "sqlite"}, wantErr: true},
		{name: "pg without connection", env: map[string]string{"STORAGE_TYPE": "pg"}, wantErr: true},
		{name: "es without index", env: map[string]string{"STORAGE_TYPE": "es", "ES_ADDRESSES": "http://localhost:9200"}, wantErr: true},
		{name: "json without file", env: map[string]string{"STORAGE_TYPE": "json"}, wantErr: true},
		{
			name: "es",
			env: map[string]string{
				"STORAGE_TYPE":  "es",
				"ES_ADDRESSES":  "http://a:9200, http://b:9200,",
				"ES_INDEX_NAME": "runs",
			},
			check: func(t *testing.T, cfg *StorageConfig) {
				require.NotNil(t, cfg.Es)
				assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, cfg.Es.Addresses)
				assert.Equal(t, "runs", cfg.Es.IndexName)
			},
		},
		{
			name: "pg",
			env:  map[string]string{"STORAGE_TYPE": "pg", "PG_CONNECTION_STRING": "postgres://localhost/raglens"},
			check: func(t *testing.T, cfg *StorageConfig) {
				require.NotNil(t, cfg.Pg)
				assert.Equal(t, "postgres://localhost/raglens", cfg.Pg.ConnStr)
			},
		},
		{
			name: "json",
			env:  map[string]string{"STORAGE_TYPE": "json", "POINTS_FILE": "data/points.json"},
			check: func(t *testing.T, cfg *StorageConfig) {
				assert.Equal(t, storage.JSON, cfg.Type)
				assert.Equal(t, "data/points.json", cfg.PointsFile)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"STORAGE_TYPE", "PG_CONNECTION_STRING", "ES_ADDRESSES", "ES_INDEX_NAME", "POINTS_FILE"} {
				t.Setenv(key, tt.env[key])
			}

			cfg, err := LoadEnv()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestNewBackend_InMem(t *testing.T) {
	b, err := NewBackend(context.Background(), &StorageConfig{Type: storage.InMem})
	require.NoError(t, err)
	defer b.Close()

	assert.NotNil(t, b.Appender)
	assert.True(t, b.Health.Healthy(context.Background()))
	points, err := b.Reader.LoadPoints(context.Background())
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestNewBackend_JSONIsReadOnly(t *testing.T) {
	b, err := NewBackend(context.Background(), &StorageConfig{Type: storage.JSON, PointsFile: "points.json"})
	require.NoError(t, err)
	assert.Nil(t, b.Appender)
}
