package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/harshith-dev/coursehub-api/internal/dto"
	"github.com/harshith-dev/coursehub-api/internal/models"
	"github.com/harshith-dev/coursehub-api/internal/observability"
	"github.com/harshith-dev/coursehub-api/internal/repository"
)

// SupportService manages the support inbox: anyone may file a message,
// admins read and reply.
type SupportService interface {
	Submit(ctx context.Context, userID *uint, payload dto.SupportMessageRequest) (dto.SupportMessageResponse, error)
	List(ctx context.Context, actor models.User, page, pageSize int, unseen bool) (dto.SupportMessageListResponse, error)
	Reply(ctx context.Context, actor models.User, messageID uint, payload dto.SupportReplyRequest) (dto.SupportMessageResponse, error)
}

type supportService struct {
	repo      repository.SupportMessageRepository
	audit     AuditRecorder
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewSupportService constructs the support inbox service.
func NewSupportService(repo repository.SupportMessageRepository, audit AuditRecorder, validate *validator.Validate, logger zerolog.Logger) SupportService {
	return &supportService{
		repo:      repo,
		audit:     audit,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "support_service").Logger(),
		now:       time.Now,
	}
}

func (s *supportService) Submit(ctx context.Context, userID *uint, payload dto.SupportMessageRequest) (dto.SupportMessageResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SupportMessageResponse{}, err
	}

	message := models.SupportMessage{
		ReferenceID: uuid.NewString(),
		UserID:      userID,
		Name:        strings.TrimSpace(s.sanitizer.Sanitize(payload.Name)),
		Email:       strings.ToLower(strings.TrimSpace(payload.Email)),
		Subject:     strings.TrimSpace(s.sanitizer.Sanitize(payload.Subject)),
		Message:     strings.TrimSpace(s.sanitizer.Sanitize(payload.Message)),
	}

	if err := s.repo.Create(ctx, &message); err != nil {
		return dto.SupportMessageResponse{}, err
	}

	s.logger.Info().Str("reference_id", message.ReferenceID).Msg("support message filed")
	return dto.NewSupportMessageResponse(message), nil
}

func (s *supportService) List(ctx context.Context, actor models.User, page, pageSize int, unseen bool) (dto.SupportMessageListResponse, error) {
	if authzErr := Authorize(actor, ActionSupportReply, Resource{}); authzErr != nil {
		return dto.SupportMessageListResponse{}, authzErr
	}

	page = maxInt(page, 1)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	messages, total, err := s.repo.List(ctx, repository.SupportMessageFilter{
		Page:     page,
		PageSize: pageSize,
		Unseen:   unseen,
	})
	if err != nil {
		return dto.SupportMessageListResponse{}, err
	}

	return dto.SupportMessageListResponse{
		Items: dto.NewSupportMessageResponseSlice(messages),
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		},
	}, nil
}

func (s *supportService) Reply(ctx context.Context, actor models.User, messageID uint, payload dto.SupportReplyRequest) (dto.SupportMessageResponse, error) {
	if authzErr := Authorize(actor, ActionSupportReply, Resource{}); authzErr != nil {
		return dto.SupportMessageResponse{}, authzErr
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.SupportMessageResponse{}, err
	}

	message, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SupportMessageResponse{}, NewNotFoundError("support message", messageID)
		}
		return dto.SupportMessageResponse{}, err
	}

	reply := strings.TrimSpace(s.sanitizer.Sanitize(payload.Reply))
	repliedAt := s.now()
	repliedBy := actor.ID
	message.AdminReply = &reply
	message.RepliedBy = &repliedBy
	message.RepliedAt = &repliedAt

	if err := s.repo.Update(ctx, &message); err != nil {
		return dto.SupportMessageResponse{}, err
	}

	observability.WorkflowMutations().WithLabelValues(string(models.AuditSupportReplied)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditSupportReplied,
		Details:  fmt.Sprintf("support message %s answered", message.ReferenceID),
		EntityID: &message.ID,
	})

	return dto.NewSupportMessageResponse(message), nil
}
