package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/harshith-dev/coursehub-api/internal/config"
	"github.com/harshith-dev/coursehub-api/internal/utils"
)

// HealthStatus is the liveness payload.
type HealthStatus struct {
	Status      string    `json:"status"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	StartedAt   time.Time `json:"started_at"`
	CheckedAt   time.Time `json:"checked_at"`
}

// HealthCheck reports process liveness and basic identity.
func HealthCheck(cfg config.Config) fiber.Handler {
	startedAt := time.Now().UTC()

	return func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "healthy", HealthStatus{
			Status:      "up",
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			StartedAt:   startedAt,
			CheckedAt:   time.Now().UTC(),
		})
	}
}
