package handlers

import (
	"godavari-scm/internal/adapters/http/middleware"
	"godavari-scm/internal/core/services"
	"godavari-scm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the dashboard summary
// @Summary Dashboard stats
// @Description Storage counts by status, customer count, today's entries and revenue
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.Stats(c.Context(), middleware.ActorFromContext(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to compute dashboard stats")
	}

	return response.Success(c, "Dashboard stats computed", stats)
}
