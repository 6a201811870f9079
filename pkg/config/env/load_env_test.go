package env

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("RAGLENS_TEST_VALUE=from-file\n"), 0o600))

	t.Run("explicit ENV_PATH wins", func(t *testing.T) {
		t.Setenv("ENV_PATH", path)
		t.Setenv("RAGLENS_TEST_VALUE", "")
		require.NoError(t, os.Unsetenv("RAGLENS_TEST_VALUE"))

		require.NoError(t, LoadDotEnv("local", "does-not-exist.env"))
		assert.Equal(t, "from-file", os.Getenv("RAGLENS_TEST_VALUE"))
	})

	t.Run("missing file is an error locally", func(t *testing.T) {
		t.Setenv("ENV_PATH", "")
		assert.Error(t, LoadDotEnv("", filepath.Join(dir, "missing.env")))
	})

	t.Run("missing file is ignored elsewhere", func(t *testing.T) {
		t.Setenv("ENV_PATH", "")
		assert.NoError(t, LoadDotEnv("production", filepath.Join(dir, "missing.env")))
	})
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "WARN", want: slog.LevelWarn},
		{in: " error ", want: slog.LevelError},
		{in: "", want: slog.LevelInfo},
		{in: "verbose", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, LogLevel(tt.in, slog.LevelInfo))
		})
	}
}
