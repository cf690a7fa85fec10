package handler

import (
	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
	"store-pos/internal/reqctx"
	"store-pos/internal/service"
	"store-pos/pkg/logger"
)

type DashboardHandler struct {
	service service.DashboardService
	log     logger.Logger
}

func NewDashboardHandler(s service.DashboardService, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, log: log}
}

// GetDashboardStats handles GET /dashboard
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpDashboard); !d.Allowed() {
		return deny(c, rc, d)
	}

	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, stats, "")
}
