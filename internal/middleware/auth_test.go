package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/harshith-dev/coursehub-api/internal/middleware"
	"github.com/harshith-dev/coursehub-api/internal/models"
	"github.com/harshith-dev/coursehub-api/internal/repository"
	"github.com/harshith-dev/coursehub-api/internal/service"
)

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB, service.TokenService) {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	tokens := service.NewTokenService("test-secret", 15*time.Minute)

	app := fiber.New()
	app.Use(middleware.Authenticated(tokens))
	app.Use(middleware.LoadActor(repository.NewUserRepository(db)))
	app.Get("/me", func(c *fiber.Ctx) error {
		actor, ok := middleware.ActorFromCtx(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(actor.Username)
	})

	return app, db, tokens
}

func perform(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthenticatedBindsActor(t *testing.T) {
	app, db, tokens := newAuthApp(t)

	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	token, _, err := tokens.Issue(user)
	require.NoError(t, err)

	resp := perform(t, app, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthenticatedRejectsMissingHeader(t *testing.T) {
	app, _, _ := newAuthApp(t)

	resp := perform(t, app, "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticatedRejectsGarbageToken(t *testing.T) {
	app, _, _ := newAuthApp(t)

	resp := perform(t, app, "not.a.token")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoadActorRejectsSoftDeletedAccount(t *testing.T) {
	app, db, tokens := newAuthApp(t)

	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	token, _, err := tokens.Issue(user)
	require.NoError(t, err)

	user.MarkDeleted(1, time.Now())
	require.NoError(t, db.Save(&user).Error)

	// A token issued before deletion no longer grants access.
	resp := perform(t, app, token)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
