package handler

import (
	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
	"store-pos/internal/reqctx"
	"store-pos/internal/service"
	"store-pos/pkg/logger"
)

const suppliersPath = "/suppliers"

type SupplierHandler struct {
	suppliers service.SupplierService
	log       logger.Logger
}

func NewSupplierHandler(s service.SupplierService, log logger.Logger) *SupplierHandler {
	return &SupplierHandler{suppliers: s, log: log}
}

// List handles GET /suppliers?q=
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpSupplierList); !d.Allowed() {
		return deny(c, rc, d)
	}

	suppliers, err := h.suppliers.List(c.Query("q"))
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, suppliers, "")
}

// NewForm handles GET /suppliers/new
func (h *SupplierHandler) NewForm(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpSupplierCreate); !d.Allowed() {
		return deny(c, rc, d)
	}
	return respond(c, rc, fiber.StatusOK, service.SupplierInput{}, "")
}

// Create handles POST /suppliers/new
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpSupplierCreate); !d.Allowed() {
		return deny(c, rc, d)
	}

	var in service.SupplierInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, rc)
	}
	supplier, err := h.suppliers.Create(rc.Principal, in)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("Supplier created successfully.")
	return respond(c, rc, fiber.StatusCreated, supplier, suppliersPath)
}

// EditForm handles GET /suppliers/:id/edit
func (h *SupplierHandler) EditForm(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpSupplierEdit); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	supplier, err := h.suppliers.Get(id)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, supplier, "")
}

// Update handles POST /suppliers/:id/edit
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpSupplierEdit); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	var in service.SupplierInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, rc)
	}
	supplier, err := h.suppliers.Update(rc.Principal, id, in)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("Supplier updated successfully.")
	return respond(c, rc, fiber.StatusOK, supplier, suppliersPath)
}

// ConfirmDelete handles GET /suppliers/:id/delete. Nothing is deleted.
func (h *SupplierHandler) ConfirmDelete(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpSupplierDelete); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	supplier, err := h.suppliers.Get(id)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return confirmDelete(c, rc, supplier)
}

// Delete handles POST /suppliers/:id/delete
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpSupplierDelete); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	if err := h.suppliers.Delete(rc.Principal, id); err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("Supplier deleted successfully.")
	return respond(c, rc, fiber.StatusOK, nil, suppliersPath)
}
