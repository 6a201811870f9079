package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/raglens/internal/config"
	"github.com/DjordjeVuckovic/raglens/internal/storage/factory"
	"github.com/DjordjeVuckovic/raglens/pkg/config/env"
)

const defaultSweepInterval = time.Minute

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type GenerationConfig struct {
	Enabled bool
	BaseURL string
}

type RagLensConfig struct {
	StorageConfig    factory.StorageConfig
	GenerationConfig GenerationConfig
	Dashboard        config.Settings
	LogLevel         slog.Level
	SweepInterval    time.Duration
}

func (as *AppConfig) Load() (*RagLensConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/raglens_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	settings := config.Default()
	if path := strings.TrimSpace(os.Getenv("DASHBOARD_CONFIG")); path != "" {
		settings, err = config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		slog.Info("Loaded dashboard settings", "path", path)
	}

	sweep := defaultSweepInterval
	if raw := os.Getenv("SESSION_SWEEP_INTERVAL"); raw != "" {
		sweep, err = time.ParseDuration(raw)
		if err != nil || sweep <= 0 {
			slog.Warn("Invalid SESSION_SWEEP_INTERVAL, using default", "value", raw, "default", defaultSweepInterval)
			sweep = defaultSweepInterval
		}
	}

	baseURL := strings.TrimSpace(os.Getenv("GENERATION_BASE_URL"))
	return &RagLensConfig{
		StorageConfig: *storageCfg,
		GenerationConfig: GenerationConfig{
			Enabled: baseURL != "",
			BaseURL: baseURL,
		},
		Dashboard:     *settings,
		LogLevel:      env.LogLevel(os.Getenv("LOG_LEVEL"), slog.LevelInfo),
		SweepInterval: sweep,
	}, nil
}
