package handler

import (
	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
	"store-pos/internal/reqctx"
	"store-pos/internal/service"
	"store-pos/pkg/logger"
)

// PortalHandler serves the client-facing screens.
type PortalHandler struct {
	portal service.PortalService
	log    logger.Logger
}

func NewPortalHandler(p service.PortalService, log logger.Logger) *PortalHandler {
	return &PortalHandler{portal: p, log: log}
}

// Dashboard handles GET /portal
func (h *PortalHandler) Dashboard(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpPortalView); !d.Allowed() {
		return deny(c, rc, d)
	}

	dash, err := h.portal.Dashboard(rc.Principal.ClientID)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, dash, "")
}

// SaleDetail handles GET /portal/sales/:id. Sales of other clients are reported as not found.
func (h *PortalHandler) SaleDetail(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpPortalView); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	sale, err := h.portal.SaleDetail(rc.Principal.ClientID, id)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, sale, "")
}
