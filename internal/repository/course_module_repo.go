package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/harshith-dev/coursehub-api/internal/models"
)

// CourseModuleRepository defines persistence operations for course modules.
// Modules are hard-deleted; they carry no soft-delete tier of their own.
type CourseModuleRepository interface {
	FindByID(ctx context.Context, id uint) (models.CourseModule, error)
	ListByCourse(ctx context.Context, courseID uint) ([]models.CourseModule, error)
	Create(ctx context.Context, module *models.CourseModule) error
	Delete(ctx context.Context, id uint) error
}

type courseModuleRepository struct {
	db *gorm.DB
}

// NewCourseModuleRepository instantiates a GORM-backed module repository.
func NewCourseModuleRepository(db *gorm.DB) CourseModuleRepository {
	return &courseModuleRepository{db: db}
}

func (r *courseModuleRepository) FindByID(ctx context.Context, id uint) (models.CourseModule, error) {
	var module models.CourseModule
	if err := r.db.WithContext(ctx).First(&module, id).Error; err != nil {
		return models.CourseModule{}, err
	}
	return module, nil
}

func (r *courseModuleRepository) ListByCourse(ctx context.Context, courseID uint) ([]models.CourseModule, error) {
	var modules []models.CourseModule
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).
		Order("created_at ASC").Find(&modules).Error
	if err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *courseModuleRepository) Create(ctx context.Context, module *models.CourseModule) error {
	return r.db.WithContext(ctx).Create(module).Error
}

func (r *courseModuleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.CourseModule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
