package handler

import (
	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
	"store-pos/internal/reqctx"
	"store-pos/internal/service"
	"store-pos/pkg/logger"
)

const usersPath = "/users"

type UserHandler struct {
	userService service.UserService
	log         logger.Logger
}

func NewUserHandler(userService service.UserService, log logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// GetUsers handles GET /users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpUserManage); !d.Allowed() {
		return deny(c, rc, d)
	}

	users, err := h.userService.GetAllUsers()
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, users, "")
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpUserManage); !d.Allowed() {
		return deny(c, rc, d)
	}

	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, rc)
	}
	user, err := h.userService.CreateUser(rc.Principal, req)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("User " + user.Username + " created successfully.")
	return respond(c, rc, fiber.StatusCreated, user, usersPath)
}

// UpdateProfile handles POST /users/:id/profile
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpUserManage); !d.Allowed() {
		return deny(c, rc, d)
	}

	id, ok := pathID(c)
	if !ok {
		return notFound(c, rc)
	}
	var req service.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, rc)
	}
	user, err := h.userService.UpdateProfile(rc.Principal, id, req)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	rc.Success("Profile of " + user.Username + " updated.")
	return respond(c, rc, fiber.StatusOK, user, usersPath)
}
