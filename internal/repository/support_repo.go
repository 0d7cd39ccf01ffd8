package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/harshith-dev/coursehub-api/internal/models"
)

// SupportMessageFilter narrows support inbox queries.
type SupportMessageFilter struct {
	Page     int
	PageSize int
	Unseen   bool
}

// SupportMessageRepository persists support messages and admin replies.
type SupportMessageRepository interface {
	FindByID(ctx context.Context, id uint) (models.SupportMessage, error)
	List(ctx context.Context, filter SupportMessageFilter) ([]models.SupportMessage, int64, error)
	Create(ctx context.Context, message *models.SupportMessage) error
	Update(ctx context.Context, message *models.SupportMessage) error
}

type supportMessageRepository struct {
	db *gorm.DB
}

// NewSupportMessageRepository constructs the support message repository.
func NewSupportMessageRepository(db *gorm.DB) SupportMessageRepository {
	return &supportMessageRepository{db: db}
}

func (r *supportMessageRepository) FindByID(ctx context.Context, id uint) (models.SupportMessage, error) {
	var message models.SupportMessage
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return models.SupportMessage{}, err
	}
	return message, nil
}

func (r *supportMessageRepository) List(ctx context.Context, filter SupportMessageFilter) ([]models.SupportMessage, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SupportMessage{})

	if filter.Unseen {
		query = query.Where("admin_reply IS NULL")
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var messages []models.SupportMessage
	if err := query.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (r *supportMessageRepository) Create(ctx context.Context, message *models.SupportMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *supportMessageRepository) Update(ctx context.Context, message *models.SupportMessage) error {
	return r.db.WithContext(ctx).Save(message).Error
}
