package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sufia0/social-dashboard/internal/service"
)

type DashboardHandler struct {
	as service.AnalyticsService
	cs service.CollectorService
}

func NewDashboardHandler(analytics service.AnalyticsService, collector service.CollectorService) *DashboardHandler {
	return &DashboardHandler{as: analytics, cs: collector}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	userID := GetUserID(c)

	summary, err := h.as.Summarize(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}

// CollectMetrics triggers an on-demand collection run. Per-account failures
// ride inside the 200 result rather than failing the request.
func (h *DashboardHandler) CollectMetrics(c *fiber.Ctx) error {
	userID := GetUserID(c)

	result, err := h.cs.Collect(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
