package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/harshith-dev/coursehub-api/internal/models"
	"github.com/harshith-dev/coursehub-api/internal/repository"
	"github.com/harshith-dev/coursehub-api/internal/service"
	"github.com/harshith-dev/coursehub-api/internal/utils"
)

const actorLocal = "actor"

// Authenticated validates the bearer token and stores its claims on the
// request.
func Authenticated(tokens service.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_role", claims.Role)

		return c.Next()
	}
}

// LoadActor resolves the authenticated account from storage and binds it
// to the request. A token whose account was deleted after issuance is
// rejected here, soft-deleted users cannot act.
func LoadActor(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := c.Locals("user_id")
		userID, ok := value.(uint)
		if !ok || userID == 0 {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		actor, err := users.FindByID(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.SendError(c, fiber.StatusUnauthorized, "account is no longer active")
			}
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve account")
		}

		c.Locals(actorLocal, actor)
		return c.Next()
	}
}

// ActorFromCtx returns the account bound by LoadActor.
func ActorFromCtx(c *fiber.Ctx) (models.User, bool) {
	actor, ok := c.Locals(actorLocal).(models.User)
	return actor, ok
}
