package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/student-dashboard-api/internal/utils"
)

// RequireRole admits requests whose token role, as stored by JWTProtected, is one of roles.
// Comparison is case-insensitive and a missing role is rejected.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		if normalized := normalizeRole(role); normalized != "" {
			allowed[normalized] = true
		}
	}

	return func(c *fiber.Ctx) error {
		if !allowed[normalizeRole(c.Locals(LocalUserRole))] {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

