package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/harshith-dev/coursehub-api/internal/dto"
	"github.com/harshith-dev/coursehub-api/internal/handler"
	"github.com/harshith-dev/coursehub-api/internal/models"
)

type stubUserService struct {
	loginResponse dto.LoginResponse
}

func (s stubUserService) Register(context.Context, dto.RegisterRequest) (dto.UserResponse, error) {
	return dto.UserResponse{}, nil
}

func (s stubUserService) Login(context.Context, dto.LoginRequest, string) (dto.LoginResponse, error) {
	return s.loginResponse, nil
}

func (s stubUserService) ChangePassword(context.Context, models.User, dto.ChangePasswordRequest) error {
	return nil
}

func (s stubUserService) Update(context.Context, models.User, uint, dto.UserUpdateRequest) (dto.UserResponse, error) {
	return dto.UserResponse{}, nil
}

func (s stubUserService) Delete(context.Context, models.User, uint) error { return nil }

func (s stubUserService) Get(context.Context, uint) (dto.UserResponse, error) {
	return dto.UserResponse{}, nil
}

func (s stubUserService) List(context.Context, models.User, dto.UserListRequest) (dto.UserListResponse, error) {
	return dto.UserListResponse{}, nil
}

func (s stubUserService) EnrolledCourses(context.Context, models.User) ([]dto.CourseResponse, error) {
	return nil, nil
}

func (s stubUserService) SeedAdmin(context.Context, string, string, string) error { return nil }

func TestLoginResponseContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "login.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	serviceStub := stubUserService{loginResponse: dto.LoginResponse{
		AccessToken: "header.payload.signature",
		TokenType:   "Bearer",
		ExpiresIn:   900,
		User: dto.UserResponse{
			ID:        42,
			Username:  "alice_dev",
			Email:     "alice@example.com",
			Role:      string(models.RoleMentor),
			CreatedAt: time.Now().UTC(),
		},
	}}

	authHandler := handler.NewAuthHandler(serviceStub, zerolog.Nop())

	app := fiber.New()
	authHandler.Register(app.Group("/api/v1/auth"))

	body := `{"username":"alice_dev","password":"Sup3rSecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.NoError(t, schema.Validate(payload))
}
