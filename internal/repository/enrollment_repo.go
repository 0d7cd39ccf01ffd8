package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/harshith-dev/coursehub-api/internal/models"
)

// EnrollmentRepository manages the user-course join rows. Enroll runs its
// exists-check and insert in one transaction so two concurrent callers
// cannot both succeed; the composite unique index is the backstop.
type EnrollmentRepository interface {
	Enroll(ctx context.Context, userID, courseID uint) error
	Remove(ctx context.Context, userID, courseID uint) error
	Exists(ctx context.Context, userID, courseID uint) (bool, error)
	ListCourseIDs(ctx context.Context, userID uint) ([]uint, error)
	CountByCourse(ctx context.Context, courseID uint) (int64, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository instantiates a GORM-backed enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Enroll(ctx context.Context, userID, courseID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Enrollment{}).
			Where("user_id = ? AND course_id = ?", userID, courseID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyEnrolled
		}

		return tx.Create(&models.Enrollment{UserID: userID, CourseID: courseID}).Error
	})
}

// Remove deletes the association; removing a non-existent enrollment is
// not an error.
func (r *enrollmentRepository) Remove(ctx context.Context, userID, courseID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&models.Enrollment{}).Error
}

func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepository) ListCourseIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *enrollmentRepository) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
