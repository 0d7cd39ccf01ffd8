package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harshith-dev/coursehub-api/internal/models"
	"github.com/harshith-dev/coursehub-api/internal/utils"
)

// RequireRole ensures the bound actor holds one of the allowed roles.
// This is the coarse route gate; services re-check fine-grained
// ownership before every mutation.
func RequireRole(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromCtx(c)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		if _, ok := allowed[actor.Role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
