package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/raglens/internal/apperr"
	"github.com/DjordjeVuckovic/raglens/internal/coord"
	"github.com/DjordjeVuckovic/raglens/internal/dashboard"
	"github.com/DjordjeVuckovic/raglens/internal/view/fpview"
)

// EventResponse is the controller outcome plus the drill-down target the
// host may offer after the event.
type EventResponse struct {
	State       coord.State `json:"state"`
	NavigateTo  string      `json:"navigateTo,omitempty"`
	DetailRunID string      `json:"detailRunId,omitempty"`
}

// createSession godoc
// @Summary Open a dashboard session
// @Description Fetches the points once and opens a session over them. The body is optional.
// @Tags sessions
// @Accept json
// @Produce json
// @Param settings body dashboard.SettingsRequest false "Initial weight, sort and mode"
// @Success 201 {object} dashboard.Snapshot
// @Failure 400 {object} map[string]string
// @Router /api/sessions [post]
func (r *DashboardRouter) createSession(c echo.Context) error {
	var req dashboard.SettingsRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid settings body", err)
	}

	points, err := r.loadPoints(c.Request().Context())
	if err != nil {
		return err
	}

	sess := r.sessions.Create(points)
	snap, err := sess.UpdateSettings(req)
	if err != nil {
		_ = r.sessions.Delete(sess.ID)
		return err
	}
	return c.JSON(http.StatusCreated, snap)
}

// getSession godoc
// @Summary Get session state
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dashboard.Snapshot
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id} [get]
func (r *DashboardRouter) getSession(c echo.Context) error {
	sess, err := r.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess.Snapshot())
}

// deleteSession godoc
// @Summary Close a session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id} [delete]
func (r *DashboardRouter) deleteSession(c echo.Context) error {
	sess, err := r.session(c)
	if err != nil {
		return err
	}
	if err := r.sessions.Delete(sess.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// getScene godoc
// @Summary Render the dashboard
// @Description Scenes for the correlation, distribution and fingerprint views plus the tooltip
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dashboard.Dashboard
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/scene [get]
func (r *DashboardRouter) getScene(c echo.Context) error {
	sess, err := r.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess.Dashboard())
}

// getFingerprints godoc
// @Summary Document fingerprints
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} fingerprint.Result
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/fingerprints [get]
func (r *DashboardRouter) getFingerprints(c echo.Context) error {
	sess, err := r.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess.Fingerprints())
}

// dispatchEvent godoc
// @Summary Dispatch a user event
// @Description One of region, point, bin, chunk, document, close, mode or clear
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param event body dashboard.EventRequest true "Event"
// @Success 200 {object} EventResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/events [post]
func (r *DashboardRouter) dispatchEvent(c echo.Context) error {
	sess, err := r.session(c)
	if err != nil {
		return err
	}

	var req dashboard.EventRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid event body", err)
	}

	out, err := sess.Dispatch(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, EventResponse{
		State:       out.State,
		NavigateTo:  out.NavigateTo,
		DetailRunID: sess.Snapshot().DetailRunID,
	})
}

// clearSession godoc
// @Summary Clear every selection
// @Description Clears run, score filter and chunk selections; the mode is kept
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} coord.State
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/clear [post]
func (r *DashboardRouter) clearSession(c echo.Context) error {
	sess, err := r.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess.Clear())
}

// updateSettings godoc
// @Summary Change weight, sort or mode
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param settings body dashboard.SettingsRequest true "Settings"
// @Success 200 {object} dashboard.Snapshot
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/settings [put]
func (r *DashboardRouter) updateSettings(c echo.Context) error {
	sess, err := r.session(c)
	if err != nil {
		return err
	}

	var req dashboard.SettingsRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid settings body", err)
	}

	snap, err := sess.UpdateSettings(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// setHover godoc
// @Summary Hover a fingerprint segment
// @Description Returns the tooltip for the hovered chunk, or null when the chunk is unknown
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param hover body fpview.HoverState true "Hovered segment and cursor position"
// @Success 200 {object} fpview.TooltipView
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/hover [put]
func (r *DashboardRouter) setHover(c echo.Context) error {
	sess, err := r.session(c)
	if err != nil {
		return err
	}

	var hover fpview.HoverState
	if err := c.Bind(&hover); err != nil {
		return apperr.NewValidationWrap("invalid hover body", err)
	}
	return c.JSON(http.StatusOK, sess.SetHover(&hover))
}

// clearHover godoc
// @Summary Mouse leave
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/hover [delete]
func (r *DashboardRouter) clearHover(c echo.Context) error {
	sess, err := r.session(c)
	if err != nil {
		return err
	}
	sess.SetHover(nil)
	return c.NoContent(http.StatusNoContent)
}
