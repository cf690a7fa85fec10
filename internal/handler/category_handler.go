package handler

import (
	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
	"store-pos/internal/reqctx"
	"store-pos/internal/service"
	"store-pos/pkg/logger"
)

const categoriesPath = "/categories"

type CategoryHandler struct {
	categories service.CategoryService
	log        logger.Logger
}

func NewCategoryHandler(s service.CategoryService, log logger.Logger) *CategoryHandler {
	return &CategoryHandler{categories: s, log: log}
}

// List handles GET /categories?q=
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpCategoryList); !d.Allowed() {
		return deny(c, rc, d)
	}

	categories, err := h.categories.List(c.Query("q"))
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, categories, "")
}

// NewForm handles GET /categories/new
func (h *CategoryHandler) NewForm(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpCategoryCreate); !d.Allowed() {
		return deny(c, rc, d)
	}
	return respond(c, rc, fiber.StatusOK, service.CategoryInput{}, "")
}

// Create handles POST /categories/new
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpCategoryCreate); !d.Allowed() {
		return deny(c, rc, d)
	}

	var in service.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, rc)
	}
	category, err := h.categories.Create(rc.Principal, in)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("Category created successfully.")
	return respond(c, rc, fiber.StatusCreated, category, categoriesPath)
}

// EditForm handles GET /categories/:id/edit
func (h *CategoryHandler) EditForm(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpCategoryEdit); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	category, err := h.categories.Get(id)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, category, "")
}

// Update handles POST /categories/:id/edit
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpCategoryEdit); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	var in service.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, rc)
	}
	category, err := h.categories.Update(rc.Principal, id, in)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("Category updated successfully.")
	return respond(c, rc, fiber.StatusOK, category, categoriesPath)
}

// ConfirmDelete handles GET /categories/:id/delete. Nothing is deleted.
func (h *CategoryHandler) ConfirmDelete(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpCategoryDelete); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	category, err := h.categories.Get(id)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return confirmDelete(c, rc, category)
}

// Delete handles POST /categories/:id/delete. Products of the category go with it.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpCategoryDelete); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	if err := h.categories.Delete(rc.Principal, id); err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("Category deleted successfully.")
	return respond(c, rc, fiber.StatusOK, nil, categoriesPath)
}
