package router

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/raglens/internal/apperr"
	"github.com/DjordjeVuckovic/raglens/internal/ingest"
	"github.com/DjordjeVuckovic/raglens/internal/report"
	"github.com/DjordjeVuckovic/raglens/internal/view/distribution"
)

const mimeSVG = "image/svg+xml"

// correlationChart godoc
// @Summary Correlation scatter as SVG
// @Tags charts
// @Produce image/svg+xml
// @Param id path string true "Session ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/charts/correlation.svg [get]
func (r *DashboardRouter) correlationChart(c echo.Context) error {
	sess, err := r.session(c)
	if err != nil {
		return err
	}

	points, highlighted, _ := sess.ChartInputs()
	var buf bytes.Buffer
	if err := report.CorrelationSVG(&buf, points, highlighted); err != nil {
		return chartError(err, "correlation")
	}
	return c.Blob(http.StatusOK, mimeSVG, buf.Bytes())
}

// distributionChart godoc
// @Summary Metric histogram as SVG
// @Tags charts
// @Produce image/svg+xml
// @Param id path string true "Session ID"
// @Param metric path string true "llm.svg or similarity.svg"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/charts/distribution/{metric} [get]
func (r *DashboardRouter) distributionChart(c echo.Context) error {
	sess, err := r.session(c)
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(c.Param("metric"), ".svg")
	m, err := ingest.ParseMetric(name)
	if err != nil {
		return err
	}

	points, _, filter := sess.ChartInputs()
	var buf bytes.Buffer
	if err := report.DistributionSVG(&buf, distribution.NewHistogram(points, m), filter); err != nil {
		return chartError(err, string(m))
	}
	return c.Blob(http.StatusOK, mimeSVG, buf.Bytes())
}

func chartError(err error, chart string) error {
	if errors.Is(err, report.ErrNoData) {
		return apperr.NewNotFound("chart data", chart)
	}
	return err
}
