package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/raglens/internal/apperr"
	"github.com/DjordjeVuckovic/raglens/pkg/pagination"
)

// listPoints godoc
// @Summary List metric points
// @Description Returns the normalised runs of the configured data source, one page at a time
// @Tags points
// @Produce json
// @Param page query int false "Page, 1-based" default(1)
// @Param size query int false "Page size" default(100)
// @Success 200 {object} pagination.OffsetResult[domain.MetricPoint]
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/points [get]
func (r *DashboardRouter) listPoints(c echo.Context) error {
	var req pagination.OffsetRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid page parameters", err)
	}

	points, err := r.loadPoints(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.Paginate(points, req))
}
