package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/harshith-dev/coursehub-api/internal/dto"
	"github.com/harshith-dev/coursehub-api/internal/service"
	"github.com/harshith-dev/coursehub-api/internal/utils"
)

// SupportHandler serves the support inbox.
type SupportHandler struct {
	support service.SupportService
	logger  zerolog.Logger
}

// NewSupportHandler constructs a support handler.
func NewSupportHandler(support service.SupportService, logger zerolog.Logger) *SupportHandler {
	return &SupportHandler{
		support: support,
		logger:  logger.With().Str("component", "support_handler").Logger(),
	}
}

// RegisterPublic wires the open submission route.
func (h *SupportHandler) RegisterPublic(router fiber.Router) {
	router.Post("", h.submit)
}

// RegisterAdmin wires admin inbox routes.
func (h *SupportHandler) RegisterAdmin(router fiber.Router) {
	router.Get("", h.list)
	router.Post("/:id/reply", h.reply)
}

func (h *SupportHandler) submit(c *fiber.Ctx) error {
	var payload dto.SupportMessageRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	var userID *uint
	if id, ok := c.Locals("user_id").(uint); ok && id > 0 {
		userID = &id
	}

	response, err := h.support.Submit(c.UserContext(), userID, payload)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendCreated(c, "support message filed", response)
}

func (h *SupportHandler) list(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	unseen := strings.EqualFold(c.Query("unseen"), "true")

	response, err := h.support.List(c.UserContext(), actor, parseQueryInt(c, "page"), parseQueryInt(c, "page_size"), unseen)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "support messages", response)
}

func (h *SupportHandler) reply(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid message id")
	}

	var payload dto.SupportReplyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.support.Reply(c.UserContext(), actor, id, payload)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "reply sent", response)
}
