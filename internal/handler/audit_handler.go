package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/harshith-dev/coursehub-api/internal/dto"
	"github.com/harshith-dev/coursehub-api/internal/service"
	"github.com/harshith-dev/coursehub-api/internal/utils"
)

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	audit  service.AuditService
	logger zerolog.Logger
}

// NewAuditHandler constructs an audit handler.
func NewAuditHandler(audit service.AuditService, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		audit:  audit,
		logger: logger.With().Str("component", "audit_handler").Logger(),
	}
}

// Register wires audit trail routes.
func (h *AuditHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *AuditHandler) list(c *fiber.Ctx) error {
	req := dto.AuditLogListRequest{
		Page:     parseQueryInt(c, "page"),
		PageSize: parseQueryInt(c, "page_size"),
		ActorID:  parseQueryUintPtr(c, "actor_id"),
		Action:   c.Query("action"),
		EntityID: parseQueryUintPtr(c, "entity_id"),
	}

	response, err := h.audit.List(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "audit trail", response)
}
