package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harshith-dev/coursehub-api/internal/config"
	"github.com/harshith-dev/coursehub-api/internal/handler"
	"github.com/harshith-dev/coursehub-api/internal/middleware"
	"github.com/harshith-dev/coursehub-api/internal/models"
	"github.com/harshith-dev/coursehub-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	CourseHandler  *handler.CourseHandler
	AuditHandler   *handler.AuditHandler
	SupportHandler *handler.SupportHandler
	Authenticated  fiber.Handler
	LoadActor      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	authenticated := deps.Authenticated
	if authenticated == nil {
		authenticated = func(c *fiber.Ctx) error { return c.Next() }
	}
	loadActor := deps.LoadActor
	if loadActor == nil {
		loadActor = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	if deps.CourseHandler != nil {
		deps.CourseHandler.RegisterPublic(api.Group("/courses"))
		deps.CourseHandler.Register(api.Group("/courses", authenticated, loadActor))
	}

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/users", authenticated, loadActor))
	}

	if deps.SupportHandler != nil {
		deps.SupportHandler.RegisterPublic(api.Group("/support"))
	}

	admin := api.Group("/admin", authenticated, loadActor, middleware.RequireRole(models.RoleAdmin))
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterAdmin(admin.Group("/users"))
	}
	if deps.CourseHandler != nil {
		deps.CourseHandler.RegisterAdmin(admin.Group("/courses"))
	}
	if deps.AuditHandler != nil {
		deps.AuditHandler.Register(admin.Group("/audit-logs"))
	}
	if deps.SupportHandler != nil {
		deps.SupportHandler.RegisterAdmin(admin.Group("/support"))
	}
}
