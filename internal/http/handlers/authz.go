package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "pricesmart/internal/log"
	"pricesmart/internal/services"
)

// bearerToken extracts the token from an Authorization header, or ""
// when the header is absent or malformed.
func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// RequireUser rejects requests without a valid bearer token and puts
// the resolved user into Locals("user").
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "authorization required"})
		}
		u, err := auth.UserFromToken(tok)
		if err != nil || u == nil {
			applog.Security(c, "access.denied", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "invalid token"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// OptionalUser attaches the user when a valid token is present but
// never rejects; anonymous search stays allowed.
func OptionalUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok := bearerToken(c); tok != "" {
			if u, err := auth.UserFromToken(tok); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}
