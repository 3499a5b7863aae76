package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"apptrack/internal/auth"
)

const (
	// AuthUserIDLocalKey stores the authenticated user's id in Fiber's context locals.
	AuthUserIDLocalKey = "auth_user_id"
	// AuthEmailLocalKey stores the authenticated user's email claim.
	AuthEmailLocalKey = "auth_email"
)

// Auth validates the bearer credential on every request it guards and
// stores the resolved principal in context locals. Handlers read the
// identity only from the locals, never from request input.
//
// Every failure mode (missing header, malformed scheme, invalid or expired
// token) is a 401; the global error handler renders the envelope.
func Auth(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authorization header missing")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header format")
		}

		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "empty bearer token")
		}

		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(AuthUserIDLocalKey, claims.UserID())
		c.Locals(AuthEmailLocalKey, claims.Email)

		return c.Next()
	}
}

// UserID returns the authenticated user id stored by Auth, or "" when the
// request was not authenticated.
func UserID(c *fiber.Ctx) string {
	v, _ := c.Locals(AuthUserIDLocalKey).(string)
	return v
}
