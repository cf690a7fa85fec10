package handler

import (
	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
	"store-pos/internal/model"
	"store-pos/internal/reqctx"
)

type RoleHandler struct{}

func NewRoleHandler() *RoleHandler {
	return &RoleHandler{}
}

// GetRoles returns all available roles
// GET /roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpRoleList); !d.Allowed() {
		return deny(c, rc, d)
	}
	return respond(c, rc, fiber.StatusOK, model.Roles, "")
}
