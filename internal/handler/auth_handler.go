package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
	"store-pos/internal/reqctx"
	"store-pos/internal/service"
	"store-pos/pkg/e"
	"store-pos/pkg/logger"
)

type AuthHandler struct {
	authService service.AuthService
	cookieName  string
	log         logger.Logger
}

func NewAuthHandler(authService service.AuthService, cookieName string, log logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookieName: cookieName, log: log}
}

// LoginRequest represents the login form
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Home handles GET /
func (h *AuthHandler) Home(c *fiber.Ctx) error {
	return c.Redirect(access.LoginPath)
}

// LoginForm handles GET /login. Signed-in users are sent to the dashboard.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if rc.Principal.Authenticated() {
		return respond(c, rc, fiber.StatusOK, nil, access.LandingPath)
	}
	return respond(c, rc, fiber.StatusOK, LoginRequest{}, "")
}

// Login handles POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if rc.Principal.Authenticated() {
		return respond(c, rc, fiber.StatusOK, nil, access.LandingPath)
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, rc)
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		rc.Error("Incorrect username or password")
		return respond(c, rc, fiber.StatusUnauthorized, nil, "")
	}

	res, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, e.ErrInvalidCredentials) || errors.Is(err, e.ErrUserInactive) {
			h.log.Infof("failed login for %q from %s", req.Username, c.IP())
			rc.Error("Incorrect username or password")
			return respond(c, rc, fiber.StatusUnauthorized, nil, "")
		}
		return fail(c, rc, h.log, err, "")
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    res.Token,
		Path:     "/",
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	rc.Success("Welcome " + res.User.Username + "!")
	return respond(c, rc, fiber.StatusOK, res, access.LandingPath)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpSessionClose); !d.Allowed() {
		return deny(c, rc, d)
	}

	if err := h.authService.Logout(rc.Principal.UserID); err != nil {
		return fail(c, rc, h.log, err, "")
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	rc.Info("You have logged out successfully.")
	return respond(c, rc, fiber.StatusOK, nil, access.LoginPath)
}
