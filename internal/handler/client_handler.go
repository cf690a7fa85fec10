package handler

import (
	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
	"store-pos/internal/reqctx"
	"store-pos/internal/service"
	"store-pos/pkg/logger"
)

const clientsPath = "/clients"

type ClientHandler struct {
	clients service.ClientService
	log     logger.Logger
}

func NewClientHandler(s service.ClientService, log logger.Logger) *ClientHandler {
	return &ClientHandler{clients: s, log: log}
}

// List handles GET /clients?q=
func (h *ClientHandler) List(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpClientList); !d.Allowed() {
		return deny(c, rc, d)
	}

	clients, err := h.clients.List(c.Query("q"))
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, clients, "")
}

// NewForm handles GET /clients/new
func (h *ClientHandler) NewForm(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpClientCreate); !d.Allowed() {
		return deny(c, rc, d)
	}
	return respond(c, rc, fiber.StatusOK, service.ClientInput{}, "")
}

// Create handles POST /clients/new
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpClientCreate); !d.Allowed() {
		return deny(c, rc, d)
	}

	var in service.ClientInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, rc)
	}
	client, err := h.clients.Create(rc.Principal, in)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("Client created successfully.")
	return respond(c, rc, fiber.StatusCreated, client, clientsPath)
}

// EditForm handles GET /clients/:id/edit
func (h *ClientHandler) EditForm(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpClientEdit); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	client, err := h.clients.Get(id)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, client, "")
}

// Update handles POST /clients/:id/edit
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpClientEdit); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	var in service.ClientInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, rc)
	}
	client, err := h.clients.Update(rc.Principal, id, in)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("Client updated successfully.")
	return respond(c, rc, fiber.StatusOK, client, clientsPath)
}

// ConfirmDelete handles GET /clients/:id/delete. Nothing is deleted.
func (h *ClientHandler) ConfirmDelete(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpClientDelete); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	client, err := h.clients.Get(id)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return confirmDelete(c, rc, client)
}

// Delete handles POST /clients/:id/delete
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpClientDelete); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	if err := h.clients.Delete(rc.Principal, id); err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("Client deleted successfully.")
	return respond(c, rc, fiber.StatusOK, nil, clientsPath)
}
