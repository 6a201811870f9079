// Package main RAG Lens API
// @title RAG Lens API
// @version 1.0
// @description Diagnostics dashboard for retrieval-augmented generation runs
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	_ "github.com/DjordjeVuckovic/raglens/docs"
	"github.com/DjordjeVuckovic/raglens/internal/api/router"
	apiserver "github.com/DjordjeVuckovic/raglens/internal/api/server"
	"github.com/DjordjeVuckovic/raglens/internal/dashboard"
	"github.com/DjordjeVuckovic/raglens/internal/generation"
	"github.com/DjordjeVuckovic/raglens/internal/metrics"
	"github.com/DjordjeVuckovic/raglens/internal/storage/factory"
)

const backendOpenTimeout = 30 * time.Second

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	sCfg, err := apiserver.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	openCtx, cancel := context.WithTimeout(context.Background(), backendOpenTimeout)
	backend, err := factory.NewBackend(openCtx, &cfg.StorageConfig)
	cancel()
	if err != nil {
		slog.Error("Failed to open storage backend", "type", cfg.StorageConfig.Type, "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	s := apiserver.New(sCfg, backend.Health).
		SetupMiddlewares("/health", "/metrics").
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupMetrics("/metrics").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "RAG Lens API is running")
	})

	m := metrics.NewMetrics()
	sessions := dashboard.NewStore(cfg.Dashboard, dashboard.WithMetrics(m))
	go sessions.RunSweeper(s.Context(), cfg.SweepInterval)

	routerOpts := []router.DashboardRouterOption{router.WithMetrics(m)}
	if backend.Appender != nil {
		routerOpts = append(routerOpts, router.WithAppender(backend.Appender))
	}
	if cfg.GenerationConfig.Enabled {
		client, err := generation.NewClient(cfg.GenerationConfig.BaseURL)
		if err != nil {
			slog.Error("Failed to create generation client", "error", err)
			os.Exit(1)
		}
		routerOpts = append(routerOpts, router.WithGenerator(client))
		slog.Info("Live generation enabled", "baseURL", cfg.GenerationConfig.BaseURL)
	} else {
		slog.Info("Live generation disabled")
	}

	router.NewDashboardRouter(s.Echo, backend.Reader, sessions, routerOpts...).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
