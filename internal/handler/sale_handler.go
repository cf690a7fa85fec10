package handler

import (
	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
	"store-pos/internal/reqctx"
	"store-pos/internal/service"
	"store-pos/pkg/logger"
)

const saleFormPath = "/sales/new"

type SaleHandler struct {
	sales service.SaleService
	log   logger.Logger
}

func NewSaleHandler(s service.SaleService, log logger.Logger) *SaleHandler {
	return &SaleHandler{sales: s, log: log}
}

// NewForm handles GET /sales/new
func (h *SaleHandler) NewForm(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpSaleCreate); !d.Allowed() {
		return deny(c, rc, d)
	}

	form, err := h.sales.Form()
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, form, "")
}

// Create handles POST /sales/new. Line items arrive as items[i][product_id] / items[i][quantity]
// in form posts, or as an "items" array in JSON.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpSaleCreate); !d.Allowed() {
		return deny(c, rc, d)
	}

	var in service.SaleInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, rc)
	}
	sale, err := h.sales.Register(rc.Principal, in)
	if err != nil {
		return fail(c, rc, h.log, err, saleFormPath)
	}
	rc.Success("Sale #" + sale.ID.String() + " registered successfully.")
	return respond(c, rc, fiber.StatusCreated, sale, access.LandingPath)
}
