package http

import (
	"strings"

	"termchess/internal/core"

	"github.com/gofiber/fiber/v2"
)

// TokenValidator validates seat tokens
type TokenValidator func(token string) (seatID string, claims map[string]any, err error)

// OptionalAuth passes anonymous requests through and rejects malformed or
// expired seat tokens. Whether the token holds the right seat is decided
// by the service.
func OptionalAuth(validateToken TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c.Get("Authorization"))
		if token == "" {
			return c.Next()
		}

		seatID, _, err := validateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(core.ErrorResponse{
				Error: "invalid or expired token",
				Code:  core.ErrUnauthorized,
			})
		}

		c.Locals("seatID", seatID)
		c.Locals("seatToken", token)
		return c.Next()
	}
}

// extractBearerToken extracts the token from an Authorization header
func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
