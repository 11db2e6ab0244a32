package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/bloodaid/backend/internal/auth"
)

const principalKey = "principal"

// GetPrincipal extracts the verified identity stored by Protected.
func GetPrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := c.Locals(principalKey).(*auth.Principal)
	if !ok || principal == nil {
		return nil, errors.New("no principal in context")
	}
	return principal, nil
}
