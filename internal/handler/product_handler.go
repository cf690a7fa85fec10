package handler

import (
	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
	"store-pos/internal/reqctx"
	"store-pos/internal/service"
	"store-pos/pkg/logger"
)

const productsPath = "/products"

type ProductHandler struct {
	products   service.ProductService
	categories service.CategoryService
	log        logger.Logger
}

func NewProductHandler(p service.ProductService, cat service.CategoryService, log logger.Logger) *ProductHandler {
	return &ProductHandler{products: p, categories: cat, log: log}
}

// List handles GET /products?q=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpProductList); !d.Allowed() {
		return deny(c, rc, d)
	}

	products, err := h.products.List(c.Query("q"))
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, products, "")
}

// NewForm handles GET /products/new
func (h *ProductHandler) NewForm(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpProductCreate); !d.Allowed() {
		return deny(c, rc, d)
	}

	categories, err := h.categories.List("")
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, fiber.Map{"categories": categories}, "")
}

// Create handles POST /products/new
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpProductCreate); !d.Allowed() {
		return deny(c, rc, d)
	}

	var in service.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, rc)
	}
	product, err := h.products.Create(rc.Principal, in)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("Product created successfully.")
	return respond(c, rc, fiber.StatusCreated, product, productsPath)
}

// EditForm handles GET /products/:id/edit
func (h *ProductHandler) EditForm(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpProductEdit); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	product, err := h.products.Get(id)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	categories, err := h.categories.List("")
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, fiber.Map{"product": product, "categories": categories}, "")
}

// Update handles POST /products/:id/edit
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpProductEdit); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	var in service.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, rc)
	}
	product, err := h.products.Update(rc.Principal, id, in)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("Product updated successfully.")
	return respond(c, rc, fiber.StatusOK, product, productsPath)
}

// ConfirmDelete handles GET /products/:id/delete. Nothing is deleted.
func (h *ProductHandler) ConfirmDelete(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpProductDelete); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	product, err := h.products.Get(id)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return confirmDelete(c, rc, product)
}

// Delete handles POST /products/:id/delete
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpProductDelete); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	if err := h.products.Delete(rc.Principal, id); err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("Product deleted successfully.")
	return respond(c, rc, fiber.StatusOK, nil, productsPath)
}
