package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/harshith-dev/coursehub-api/internal/dto"
	"github.com/harshith-dev/coursehub-api/internal/models"
	"github.com/harshith-dev/coursehub-api/internal/observability"
	"github.com/harshith-dev/coursehub-api/internal/repository"
)

// AuditEntry captures the details of one recorded mutation.
type AuditEntry struct {
	ActorID   uint
	Action    models.AuditAction
	Details   string
	EntityID  *uint
	Metadata  map[string]interface{}
	IPAddress string
	At        time.Time
}

// AuditRecorder records mutations after they succeed. Recording is
// best-effort: Record never returns an error and never panics, a failed
// write is logged and counted but the triggering operation already
// succeeded and must not be affected.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditService exposes the recorder plus read access to the trail.
type AuditService interface {
	AuditRecorder
	List(ctx context.Context, req dto.AuditLogListRequest) (dto.AuditLogListResponse, error)
}

type auditService struct {
	repo   repository.AuditLogRepository
	events *nats.Conn
	logger zerolog.Logger
	now    func() time.Time
}

// NewAuditService constructs the audit service. events may be nil;
// recording then skips event fan-out.
func NewAuditService(repo repository.AuditLogRepository, events *nats.Conn, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:   repo,
		events: events,
		logger: logger.With().Str("component", "audit_service").Logger(),
		now:    time.Now,
	}
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Str("action", string(entry.Action)).Msg("audit record panicked")
			s.countDropped(string(entry.Action))
		}
	}()

	if entry.Action == "" {
		s.logger.Warn().Msg("audit entry without action dropped")
		s.countDropped("unknown")
		return
	}

	at := entry.At
	if at.IsZero() {
		at = s.now()
	}

	model := models.AuditLog{
		ActorID:   entry.ActorID,
		Action:    entry.Action,
		Details:   strings.TrimSpace(entry.Details),
		EntityID:  entry.EntityID,
		Metadata:  maskMetadata(entry.Metadata),
		IPAddress: entry.IPAddress,
		CreatedAt: at,
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		s.logger.Error().Err(err).Str("action", string(entry.Action)).Uint("actor_id", entry.ActorID).Msg("failed to persist audit entry")
		s.countDropped(string(entry.Action))
		return
	}

	s.publish(model)
}

func (s *auditService) List(ctx context.Context, req dto.AuditLogListRequest) (dto.AuditLogListResponse, error) {
	filter := repository.AuditLogFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		ActorID:  req.ActorID,
		Action:   models.AuditAction(strings.TrimSpace(req.Action)),
		EntityID: req.EntityID,
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AuditLogListResponse{}, err
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(req.Page, 1),
		PageSize:   req.PageSize,
		TotalItems: total,
	}
	if req.PageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(req.PageSize)))
	} else {
		pagination.TotalPages = 1
	}

	return dto.AuditLogListResponse{
		Items:      dto.NewAuditLogResponseSlice(entries),
		Pagination: pagination,
	}, nil
}

// publish fans the entry out on the event bus. Fan-out failures are
// logged only; the entry is already durable in the trail.
func (s *auditService) publish(entry models.AuditLog) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(dto.NewAuditLogResponse(entry))
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode audit event")
		return
	}

	subject := "coursehub.audit." + strings.ToLower(string(entry.Action))
	if err := s.events.Publish(subject, payload); err != nil {
		s.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish audit event")
	}
}

func (s *auditService) countDropped(action string) {
	observability.AuditDropped().WithLabelValues(action).Inc()
}

// maskMetadata copies metadata while redacting keys that may carry
// credentials or contact details.
func maskMetadata(metadata map[string]interface{}) datatypes.JSONMap {
	if metadata == nil {
		return datatypes.JSONMap{}
	}

	masked := datatypes.JSONMap{}
	for key, value := range metadata {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "password") || strings.Contains(lower, "token") || strings.Contains(lower, "email") {
			masked[key] = "***"
			continue
		}
		masked[key] = value
	}
	return masked
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
