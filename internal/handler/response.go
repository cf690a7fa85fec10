package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"store-pos/internal/access"
	"store-pos/internal/reqctx"
	"store-pos/internal/service"
	"store-pos/pkg/e"
	"store-pos/pkg/logger"
	"store-pos/pkg/validator"
)

// Envelope is the body of every response.
type Envelope struct {
	Data     interface{}       `json:"data,omitempty"`
	Messages []reqctx.Notice   `json:"messages"`
	Errors   map[string]string `json:"errors,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

func respond(c *fiber.Ctx, rc *reqctx.Context, status int, data interface{}, redirect string) error {
	return c.Status(status).JSON(Envelope{
		Data:     data,
		Messages: rc.Notices(),
		Redirect: redirect,
	})
}

// deny renders a failed guard decision.
func deny(c *fiber.Ctx, rc *reqctx.Context, d access.Decision) error {
	status := fiber.StatusForbidden
	if d.Outcome == access.Unauthenticated {
		status = fiber.StatusUnauthorized
	}
	rc.Error(d.Notice)
	return respond(c, rc, status, nil, d.Redirect)
}

// fail maps a service error onto the response taxonomy. back is where a business-rule failure returns the user.
func fail(c *fiber.Ctx, rc *reqctx.Context, log logger.Logger, err error, back string) error {
	var verr *validator.ValidationError
	var stockErr *service.StockError

	switch {
	case errors.As(err, &verr):
		rc.Error("Please correct the errors below.")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(Envelope{
			Messages: rc.Notices(),
			Errors:   verr.Fields,
		})
	case errors.Is(err, e.ErrNotFound):
		return notFound(c, rc)
	case errors.As(err, &stockErr):
		rc.Error(stockErr.Error())
		return respond(c, rc, fiber.StatusConflict, nil, back)
	case errors.Is(err, e.ErrConflict):
		rc.Error("The operation could not be completed because the data changed. Please try again.")
		return respond(c, rc, fiber.StatusConflict, nil, back)
	case errors.Is(err, service.ErrNoClientAccount):
		rc.Error("Your account is not associated with a client.")
		return respond(c, rc, fiber.StatusForbidden, nil, access.LoginPath)
	default:
		log.Errorf(err, "%s %s", c.Method(), c.Path())
		rc.Error("An unexpected error occurred.")
		return respond(c, rc, fiber.StatusInternalServerError, nil, "")
	}
}

func notFound(c *fiber.Ctx, rc *reqctx.Context) error {
	rc.Error("Not found.")
	return respond(c, rc, fiber.StatusNotFound, nil, "")
}

func badRequest(c *fiber.Ctx, rc *reqctx.Context) error {
	rc.Error("The request body could not be read.")
	return respond(c, rc, fiber.StatusBadRequest, nil, "")
}

// pathID parses the :id route parameter. Malformed ids cannot match a record.
func pathID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// deleteConfirmation is the body of a GET on a delete route.
type deleteConfirmation struct {
	Object  interface{} `json:"object"`
	Confirm string      `json:"confirm"`
}

func confirmDelete(c *fiber.Ctx, rc *reqctx.Context, object interface{}) error {
	return respond(c, rc, fiber.StatusOK, deleteConfirmation{
		Object:  object,
		Confirm: "POST " + c.Path() + " to delete",
	}, "")
}
