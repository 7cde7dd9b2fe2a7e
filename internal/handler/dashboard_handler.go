package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"internhub/internal/service"
)

// DashboardHandler handles role dashboard endpoints.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Admin godoc
// @Summary Admin dashboard aggregates
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AdminStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	stats, err := h.dashboardService.AdminStats(c.Request().Context(), principal)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Supervisor godoc
// @Summary Supervisor dashboard aggregates
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.SupervisorStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /supervisor/dashboard [get]
func (h *DashboardHandler) Supervisor(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	stats, err := h.dashboardService.SupervisorStats(c.Request().Context(), principal)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Intern godoc
// @Summary Intern dashboard aggregates
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.InternStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /intern/dashboard [get]
func (h *DashboardHandler) Intern(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	stats, err := h.dashboardService.InternStats(c.Request().Context(), principal)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
