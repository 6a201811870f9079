package router

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/raglens/internal/apperr"
	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/generation"
	"github.com/DjordjeVuckovic/raglens/internal/storage"
)

const (
	outcomeOK       = "ok"
	outcomeFailed   = "failed"
	outcomeReadOnly = "read_only"
)

type GenerateResponse struct {
	Answer string             `json:"answer"`
	Point  domain.MetricPoint `json:"point"`
}

// generate godoc
// @Summary Run one live generation
// @Description Asks the generation backend and appends the resulting run to the data source
// @Tags generation
// @Accept json
// @Produce json
// @Param request body generation.Request true "Question and retrieval settings"
// @Success 201 {object} GenerateResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 501 {object} map[string]string
// @Router /api/generate [post]
func (r *DashboardRouter) generate(c echo.Context) error {
	if r.generator == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "live generation is not configured")
	}
	if r.appender == nil {
		r.metrics.RecordGeneration(outcomeReadOnly)
		return echo.NewHTTPError(http.StatusConflict, storage.ErrReadOnly.Error())
	}

	var req generation.Request
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid generation body", err)
	}

	ctx := c.Request().Context()
	resp, err := r.generator.Generate(ctx, req)
	if err != nil {
		var ve *apperr.ValidationError
		if !errors.As(err, &ve) {
			r.metrics.RecordGeneration(outcomeFailed)
		}
		return err
	}

	p := generation.ToPoint(req, resp, time.Now().UTC())
	if err := r.appender.AppendPoint(ctx, p); err != nil {
		r.metrics.RecordGeneration(outcomeFailed)
		return err
	}

	r.metrics.RecordGeneration(outcomeOK)
	slog.Info("Stored live generation", "runId", p.RunID, "model", p.ConfigModel)
	return c.JSON(http.StatusCreated, GenerateResponse{Answer: resp.Answer, Point: p})
}
