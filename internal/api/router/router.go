package router

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/raglens/internal/apperr"
	"github.com/DjordjeVuckovic/raglens/internal/dashboard"
	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/generation"
	"github.com/DjordjeVuckovic/raglens/internal/metrics"
	"github.com/DjordjeVuckovic/raglens/internal/storage"
)

// Generator produces one answer for a question; implemented by generation.Client.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Response, error)
}

type DashboardRouterOption func(*DashboardRouter)

// WithAppender enables storing points produced by live generation.
func WithAppender(a storage.PointAppender) DashboardRouterOption {
	return func(r *DashboardRouter) {
		r.appender = a
	}
}

func WithGenerator(g Generator) DashboardRouterOption {
	return func(r *DashboardRouter) {
		r.generator = g
	}
}

func WithMetrics(m *metrics.Metrics) DashboardRouterOption {
	return func(r *DashboardRouter) {
		r.metrics = m
	}
}

type DashboardRouter struct {
	e         *echo.Echo
	reader    storage.PointReader
	sessions  *dashboard.Store
	appender  storage.PointAppender
	generator Generator
	metrics   *metrics.Metrics
}

func NewDashboardRouter(e *echo.Echo, reader storage.PointReader, sessions *dashboard.Store, opts ...DashboardRouterOption) *DashboardRouter {
	r := &DashboardRouter{
		e:        e,
		reader:   reader,
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *DashboardRouter) Bind() {
	api := r.e.Group("/api")
	api.GET("/points", r.listPoints)
	api.POST("/generate", r.generate)

	s := api.Group("/sessions")
	s.POST("", r.createSession)
	s.GET("/:id", r.getSession)
	s.DELETE("/:id", r.deleteSession)
	s.GET("/:id/scene", r.getScene)
	s.GET("/:id/fingerprints", r.getFingerprints)
	s.POST("/:id/events", r.dispatchEvent)
	s.POST("/:id/clear", r.clearSession)
	s.PUT("/:id/settings", r.updateSettings)
	s.PUT("/:id/hover", r.setHover)
	s.DELETE("/:id/hover", r.clearHover)
	s.GET("/:id/charts/correlation.svg", r.correlationChart)
	s.GET("/:id/charts/distribution/:metric", r.distributionChart)
}

// loadPoints performs the one-shot data fetch every session starts from.
func (r *DashboardRouter) loadPoints(ctx context.Context) ([]domain.MetricPoint, error) {
	points, err := r.reader.LoadPoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("load points: %w", err)
	}
	r.metrics.RecordPointsLoaded(len(points))
	slog.Debug("Loaded metric points", "count", len(points))
	return points, nil
}

func (r *DashboardRouter) session(c echo.Context) (*dashboard.Session, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.NewValidationWrap("invalid session id "+raw, err)
	}
	return r.sessions.Get(id)
}
