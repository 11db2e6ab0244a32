package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bloodaid/backend/internal/auth"
	"github.com/bloodaid/backend/internal/dto"
)

// Protected gates an operation behind bearer-token verification. It runs
// before any store access: a missing or invalid credential short-circuits
// with 401 and the business handler never executes.
func Protected(verifier auth.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c)
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[1] == "" {
			return unauthorized(c)
		}

		principal, err := verifier.Verify(parts[1])
		if err != nil {
			slog.Warn("token verification failed", "error", err)
			return unauthorized(c)
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Message: "unauthorized access",
	})
}
