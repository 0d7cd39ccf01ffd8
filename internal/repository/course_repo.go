package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/harshith-dev/coursehub-api/internal/models"
)

// CourseFilter describes pagination, search and ownership options for
// course listings.
type CourseFilter struct {
	Search   string
	Category string
	MentorID *uint
	Sort     string
	Page     int
	PageSize int
}

// EnrollmentStat aggregates how many users are enrolled per course.
type EnrollmentStat struct {
	CourseID uint   `json:"course_id"`
	Name     string `json:"name"`
	Enrolled int64  `json:"enrolled"`
}

// CourseRepository defines persistence operations for courses. Reads
// exclude soft-deleted rows unless the *Any variant is used.
type CourseRepository interface {
	FindByID(ctx context.Context, id uint) (models.Course, error)
	FindByIDAny(ctx context.Context, id uint) (models.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]models.Course, int64, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	EnrollmentStats(ctx context.Context) ([]EnrollmentStat, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository instantiates a GORM-backed course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) FindByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).Scopes(notDeleted).
		Preload("Mentor").Preload("Modules").Preload("Assignments").
		First(&course, id).Error
	if err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *courseRepository) FindByIDAny(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).Preload("Mentor").First(&course, id).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *courseRepository) List(ctx context.Context, filter CourseFilter) ([]models.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{}).Scopes(notDeleted)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	if filter.MentorID != nil {
		query = query.Where("mentor_id = ?", *filter.MentorID)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(normalizeCourseSort(filter.Sort))

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var courses []models.Course
	if err := query.Preload("Mentor").Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) EnrollmentStats(ctx context.Context) ([]EnrollmentStat, error) {
	var stats []EnrollmentStat
	err := r.db.WithContext(ctx).Model(&models.Course{}).
		Select("courses.id AS course_id, courses.name AS name, COUNT(enrollments.id) AS enrolled").
		Joins("LEFT JOIN enrollments ON enrollments.course_id = courses.id").
		Where("courses.deleted = ?", false).
		Group("courses.id, courses.name").
		Order("enrolled DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func normalizeCourseSort(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "name", "name:asc", "name.asc":
		return "name ASC"
	case "-name", "name:desc", "name.desc":
		return "name DESC"
	case "category", "category:asc":
		return "category ASC"
	case "duration", "duration:asc":
		return "duration ASC"
	case "-duration", "duration:desc":
		return "duration DESC"
	case "-created_at", "created_at:desc", "created_at.desc":
		return "created_at DESC"
	case "created_at", "created_at:asc", "created_at.asc":
		return "created_at ASC"
	default:
		return "created_at DESC"
	}
}
