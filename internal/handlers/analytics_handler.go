package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/hirematch/internal/services"
)

// AnalyticsHandler exposes usage reporting. Admin only.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// HandleOverview handles GET /analytics/overview
func (h *AnalyticsHandler) HandleOverview(c *fiber.Ctx) error {
	overview, err := h.analyticsService.SystemOverview()
	if err != nil {
		return err
	}

	return c.JSON(overview)
}

// HandleClients handles GET /analytics/clients
func (h *AnalyticsHandler) HandleClients(c *fiber.Ctx) error {
	stats, err := h.analyticsService.AllClientsSummary()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"clients": stats,
		"total":   len(stats),
	})
}

// HandleClient handles GET /analytics/clients/:client_id
func (h *AnalyticsHandler) HandleClient(c *fiber.Ctx) error {
	stats, err := h.analyticsService.ClientStatistics(c.Params("client_id"))
	if err != nil {
		return err
	}

	return c.JSON(stats)
}
