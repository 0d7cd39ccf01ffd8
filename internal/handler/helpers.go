package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/harshith-dev/coursehub-api/internal/middleware"
	"github.com/harshith-dev/coursehub-api/internal/models"
	"github.com/harshith-dev/coursehub-api/internal/service"
	"github.com/harshith-dev/coursehub-api/internal/utils"
)

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := strings.TrimSpace(c.Params(name))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

func parseQueryInt(c *fiber.Ctx, key string) int {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}

func parseQueryUintPtr(c *fiber.Ctx, key string) *uint {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil
	}
	id := uint(parsed)
	return &id
}

func actorFromCtx(c *fiber.Ctx) (models.User, bool) {
	return middleware.ActorFromCtx(c)
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// respondServiceError translates service-layer errors into HTTP
// responses. Unrecognized errors are logged and masked as 500s.
func respondServiceError(c *fiber.Ctx, logger *zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make(map[string]string, len(validationErrors))
		for _, fieldErr := range validationErrors {
			details[strings.ToLower(fieldErr.Field())] = fieldErr.Tag()
		}
		return utils.SendValidationError(c, details)
	}

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return utils.SendError(c, fiber.StatusBadRequest, validationErr.Error())
	}

	var authzErr *service.AuthorizationError
	if errors.As(err, &authzErr) {
		return utils.SendError(c, fiber.StatusForbidden, authzErr.Error())
	}

	var notFoundErr *service.NotFoundError
	if errors.As(err, &notFoundErr) {
		return utils.SendError(c, fiber.StatusNotFound, notFoundErr.Error())
	}

	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		return utils.SendError(c, fiber.StatusConflict, conflictErr.Error())
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrUploadTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrUploadTypeNotAllowed):
		return utils.SendError(c, fiber.StatusUnsupportedMediaType, err.Error())
	}

	var storageErr *service.StorageError
	if errors.As(err, &storageErr) {
		logger.Error().Err(err).Msg("storage backend failure")
		return utils.SendError(c, fiber.StatusBadGateway, "file storage unavailable")
	}

	logger.Error().Err(err).Msg("unhandled service error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
