package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
	"store-pos/internal/reqctx"
	"store-pos/internal/service"
	"store-pos/pkg/e"
	"store-pos/pkg/jwt"
	"store-pos/pkg/logger"
)

// LoadSession resolves the session token, if any, and attaches a request context.
// It never rejects a request: handlers run the role guard themselves.
func LoadSession(auth service.AuthService, cookieName string, log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var principal *access.Principal

		if token := sessionToken(c, cookieName); token != "" {
			p, err := auth.Authenticate(token)
			switch {
			case err == nil:
				principal = p
			case errors.Is(err, jwt.ErrInvalidToken),
				errors.Is(err, e.ErrSessionExpired),
				errors.Is(err, e.ErrUserInactive):
				// stale credentials are treated as anonymous
			default:
				log.Errorf(err, "session lookup failed")
			}
		}

		reqctx.Attach(c, reqctx.New(principal))
		return c.Next()
	}
}

// sessionToken reads "Authorization: Bearer <token>" first, then the session cookie.
func sessionToken(c *fiber.Ctx, cookieName string) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies(cookieName)
}
