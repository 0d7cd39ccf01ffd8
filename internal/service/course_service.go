package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/harshith-dev/coursehub-api/internal/dto"
	"github.com/harshith-dev/coursehub-api/internal/models"
	"github.com/harshith-dev/coursehub-api/internal/observability"
	"github.com/harshith-dev/coursehub-api/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	catalogVersionKey = "courses:catalog:version"

	// unknownStudent stands in when a submission's account is gone.
	unknownStudent = "Unknown Student"
)

// CourseService drives the course workflow: authoring, modules,
// assignments, enrollment, submission and grading. Every mutation is
// authorization-checked before any write and audited after a
// successful one.
type CourseService interface {
	Create(ctx context.Context, actor models.User, payload dto.CourseRequest) (dto.CourseResponse, error)
	Get(ctx context.Context, id uint) (dto.CourseResponse, error)
	List(ctx context.Context, req dto.CourseListRequest) (dto.CourseListResponse, error)
	Update(ctx context.Context, actor models.User, id uint, payload dto.CourseRequest) (dto.CourseResponse, error)
	Delete(ctx context.Context, actor models.User, id uint) error
	AddModule(ctx context.Context, actor models.User, courseID uint, payload dto.ModuleCreateRequest, video *multipart.FileHeader) (dto.ModuleResponse, error)
	DeleteModule(ctx context.Context, actor models.User, courseID, moduleID uint) error
	AddAssignment(ctx context.Context, actor models.User, courseID uint, payload dto.AssignmentCreateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, actor models.User, courseID, assignmentID uint) error
	Enroll(ctx context.Context, actor models.User, courseID uint) error
	DeEnroll(ctx context.Context, actor models.User, courseID uint) error
	Submit(ctx context.Context, actor models.User, assignmentID uint, file *multipart.FileHeader) (dto.AssignmentResponse, error)
	Grade(ctx context.Context, actor models.User, assignmentID uint, payload dto.GradeRequest) (dto.AssignmentResponse, error)
	GetSubmissions(ctx context.Context, actor models.User, courseID uint) ([]dto.SubmissionResponse, error)
	EnrollmentStats(ctx context.Context, actor models.User) ([]dto.EnrollmentStatResponse, error)
}

type courseService struct {
	courses     repository.CourseRepository
	modules     repository.CourseModuleRepository
	assignments repository.AssignmentRepository
	enrollments repository.EnrollmentRepository
	users       repository.UserRepository
	uploads     UploadService
	audit       AuditRecorder
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCourseService constructs the course workflow service. cache may be
// nil; catalog listings then always hit the database.
func NewCourseService(
	courses repository.CourseRepository,
	modules repository.CourseModuleRepository,
	assignments repository.AssignmentRepository,
	enrollments repository.EnrollmentRepository,
	users repository.UserRepository,
	uploads UploadService,
	audit AuditRecorder,
	validate *validator.Validate,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) CourseService {
	return &courseService{
		courses:     courses,
		modules:     modules,
		assignments: assignments,
		enrollments: enrollments,
		users:       users,
		uploads:     uploads,
		audit:       audit,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "course_service").Logger(),
		now:         time.Now,
	}
}

func (s *courseService) Create(ctx context.Context, actor models.User, payload dto.CourseRequest) (dto.CourseResponse, error) {
	if authzErr := Authorize(actor, ActionCourseCreate, Resource{}); authzErr != nil {
		return dto.CourseResponse{}, authzErr
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course := models.Course{
		Name:        s.sanitize(payload.Name),
		Description: s.sanitize(payload.Description),
		Category:    s.sanitize(payload.Category),
		Duration:    payload.Duration,
		MentorID:    actor.ID,
	}

	if err := s.courses.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.invalidateCatalog(ctx)
	observability.WorkflowMutations().WithLabelValues(string(models.AuditCourseCreated)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditCourseCreated,
		Details:  fmt.Sprintf("course %q created", course.Name),
		EntityID: &course.ID,
		Metadata: map[string]interface{}{"name": course.Name, "category": course.Category},
	})

	course.Mentor = actor
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Get(ctx context.Context, id uint) (dto.CourseResponse, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, NewNotFoundError("course", id)
		}
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

// List serves the catalog. Out-of-range paging values are coerced into
// range rather than rejected.
func (s *courseService) List(ctx context.Context, req dto.CourseListRequest) (dto.CourseListResponse, error) {
	page := maxInt(req.Page, 1)
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	cacheKey := s.catalogCacheKey(ctx, req, page, pageSize)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.CourseListResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Str("key", cacheKey).Msg("catalog cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read catalog cache")
		}
	}

	filter := repository.CourseFilter{
		Search:   strings.TrimSpace(req.Search),
		Category: strings.TrimSpace(req.Category),
		MentorID: req.MentorID,
		Sort:     req.Sort,
		Page:     page,
		PageSize: pageSize,
	}

	courses, total, err := s.courses.List(ctx, filter)
	if err != nil {
		return dto.CourseListResponse{}, err
	}

	response := dto.CourseListResponse{
		Items: dto.NewCourseResponseSlice(courses),
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		},
	}

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(response); marshalErr == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store catalog cache")
			}
		}
	}

	return response, nil
}

func (s *courseService) Update(ctx context.Context, actor models.User, id uint, payload dto.CourseRequest) (dto.CourseResponse, error) {
	course, err := s.loadCourse(ctx, id)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	if authzErr := Authorize(actor, ActionCourseUpdate, Resource{OwnerID: &course.MentorID}); authzErr != nil {
		return dto.CourseResponse{}, authzErr
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	previousName := course.Name
	course.Name = s.sanitize(payload.Name)
	course.Description = s.sanitize(payload.Description)
	course.Category = s.sanitize(payload.Category)
	course.Duration = payload.Duration

	if err := s.courses.Update(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.invalidateCatalog(ctx)
	observability.WorkflowMutations().WithLabelValues(string(models.AuditCourseUpdated)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditCourseUpdated,
		Details:  fmt.Sprintf("course %q updated", course.Name),
		EntityID: &course.ID,
		Metadata: map[string]interface{}{"old_name": previousName, "new_name": course.Name},
	})

	return dto.NewCourseResponse(course), nil
}

// Delete soft-deletes the course. The row and its audit history stay in
// place; reads simply stop returning it.
func (s *courseService) Delete(ctx context.Context, actor models.User, id uint) error {
	course, err := s.loadCourse(ctx, id)
	if err != nil {
		return err
	}

	if authzErr := Authorize(actor, ActionCourseDelete, Resource{OwnerID: &course.MentorID}); authzErr != nil {
		return authzErr
	}

	course.MarkDeleted(actor.ID, s.now())
	if err := s.courses.Update(ctx, &course); err != nil {
		return err
	}

	s.invalidateCatalog(ctx)
	observability.WorkflowMutations().WithLabelValues(string(models.AuditCourseDeleted)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditCourseDeleted,
		Details:  fmt.Sprintf("course %q deleted", course.Name),
		EntityID: &course.ID,
	})

	return nil
}

func (s *courseService) AddModule(ctx context.Context, actor models.User, courseID uint, payload dto.ModuleCreateRequest, video *multipart.FileHeader) (dto.ModuleResponse, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return dto.ModuleResponse{}, err
	}

	if authzErr := Authorize(actor, ActionModuleAdd, Resource{OwnerID: &course.MentorID}); authzErr != nil {
		return dto.ModuleResponse{}, authzErr
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.ModuleResponse{}, err
	}

	module := models.CourseModule{
		CourseID: course.ID,
		Title:    s.sanitize(payload.Title),
		Duration: payload.Duration,
	}

	if video != nil {
		url, uploadErr := s.uploads.UploadVideo(ctx, video)
		if uploadErr != nil {
			return dto.ModuleResponse{}, uploadErr
		}
		module.VideoURL = url
	}

	if err := s.modules.Create(ctx, &module); err != nil {
		return dto.ModuleResponse{}, err
	}

	observability.WorkflowMutations().WithLabelValues(string(models.AuditModuleAdded)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditModuleAdded,
		Details:  fmt.Sprintf("module %q added to course %q", module.Title, course.Name),
		EntityID: &module.ID,
		Metadata: map[string]interface{}{"course_id": course.ID},
	})

	return dto.NewModuleResponse(module), nil
}

func (s *courseService) DeleteModule(ctx context.Context, actor models.User, courseID, moduleID uint) error {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return err
	}

	if authzErr := Authorize(actor, ActionModuleDelete, Resource{OwnerID: &course.MentorID}); authzErr != nil {
		return authzErr
	}

	module, err := s.modules.FindByID(ctx, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("module", moduleID)
		}
		return err
	}
	if module.CourseID != course.ID {
		return NewNotFoundError("module", moduleID)
	}

	if err := s.modules.Delete(ctx, moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("module", moduleID)
		}
		return err
	}

	observability.WorkflowMutations().WithLabelValues(string(models.AuditModuleDeleted)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditModuleDeleted,
		Details:  fmt.Sprintf("module %q removed from course %q", module.Title, course.Name),
		EntityID: &moduleID,
		Metadata: map[string]interface{}{"course_id": course.ID},
	})

	return nil
}

func (s *courseService) AddAssignment(ctx context.Context, actor models.User, courseID uint, payload dto.AssignmentCreateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	if authzErr := Authorize(actor, ActionAssignmentAdd, Resource{OwnerID: &course.MentorID}); authzErr != nil {
		return dto.AssignmentResponse{}, authzErr
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment := models.Assignment{
		CourseID: course.ID,
		Title:    s.sanitize(payload.Title),
	}

	if file != nil {
		url, uploadErr := s.uploads.UploadDocument(ctx, file)
		if uploadErr != nil {
			return dto.AssignmentResponse{}, uploadErr
		}
		assignment.FileURL = url
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	observability.WorkflowMutations().WithLabelValues(string(models.AuditAssignmentAdded)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditAssignmentAdded,
		Details:  fmt.Sprintf("assignment %q added to course %q", assignment.Title, course.Name),
		EntityID: &assignment.ID,
		Metadata: map[string]interface{}{"course_id": course.ID},
	})

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *courseService) DeleteAssignment(ctx context.Context, actor models.User, courseID, assignmentID uint) error {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return err
	}

	if authzErr := Authorize(actor, ActionAssignmentDelete, Resource{OwnerID: &course.MentorID}); authzErr != nil {
		return authzErr
	}

	assignment, err := s.assignments.FindByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("assignment", assignmentID)
		}
		return err
	}
	if assignment.CourseID != course.ID {
		return NewNotFoundError("assignment", assignmentID)
	}

	if err := s.assignments.Delete(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("assignment", assignmentID)
		}
		return err
	}

	observability.WorkflowMutations().WithLabelValues(string(models.AuditAssignmentDeleted)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditAssignmentDeleted,
		Details:  fmt.Sprintf("assignment %q removed from course %q", assignment.Title, course.Name),
		EntityID: &assignmentID,
		Metadata: map[string]interface{}{"course_id": course.ID},
	})

	return nil
}

func (s *courseService) Enroll(ctx context.Context, actor models.User, courseID uint) error {
	if authzErr := Authorize(actor, ActionEnroll, Resource{}); authzErr != nil {
		return authzErr
	}

	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return err
	}

	if err := s.enrollments.Enroll(ctx, actor.ID, course.ID); err != nil {
		if errors.Is(err, repository.ErrAlreadyEnrolled) {
			return NewConflictError("already enrolled in this course")
		}
		return err
	}

	observability.WorkflowMutations().WithLabelValues(string(models.AuditUserEnrolled)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditUserEnrolled,
		Details:  fmt.Sprintf("enrolled in course %q", course.Name),
		EntityID: &course.ID,
	})

	return nil
}

func (s *courseService) DeEnroll(ctx context.Context, actor models.User, courseID uint) error {
	if authzErr := Authorize(actor, ActionDeEnroll, Resource{}); authzErr != nil {
		return authzErr
	}

	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return err
	}

	// Leaving a course the student never joined is a no-op, not an error.
	if err := s.enrollments.Remove(ctx, actor.ID, course.ID); err != nil {
		return err
	}

	observability.WorkflowMutations().WithLabelValues(string(models.AuditUserDeEnrolled)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditUserDeEnrolled,
		Details:  fmt.Sprintf("left course %q", course.Name),
		EntityID: &course.ID,
	})

	return nil
}

// Submit stores a student's answer file against an assignment. The
// student must be enrolled in the assignment's course.
func (s *courseService) Submit(ctx context.Context, actor models.User, assignmentID uint, file *multipart.FileHeader) (dto.AssignmentResponse, error) {
	if authzErr := Authorize(actor, ActionSubmit, Resource{}); authzErr != nil {
		return dto.AssignmentResponse{}, authzErr
	}

	assignment, err := s.assignments.FindByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, NewNotFoundError("assignment", assignmentID)
		}
		return dto.AssignmentResponse{}, err
	}

	if _, err := s.loadCourse(ctx, assignment.CourseID); err != nil {
		return dto.AssignmentResponse{}, err
	}

	enrolled, err := s.enrollments.Exists(ctx, actor.ID, assignment.CourseID)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}
	if !enrolled {
		return dto.AssignmentResponse{}, NewAuthorizationError(string(ActionSubmit), "not enrolled in this course")
	}

	if file == nil {
		return dto.AssignmentResponse{}, NewValidationError("file", "answer file is required")
	}

	url, err := s.uploads.UploadDocument(ctx, file)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	// Re-submission overwrites the previous answer; an existing grade
	// stays until the mentor regrades.
	submitterID := actor.ID
	assignment.AnswerFileURL = &url
	assignment.SubmittedBy = &submitterID

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	observability.WorkflowMutations().WithLabelValues(string(models.AuditAssignmentSubmitted)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditAssignmentSubmitted,
		Details:  fmt.Sprintf("assignment %q submitted", assignment.Title),
		EntityID: &assignment.ID,
		Metadata: map[string]interface{}{"course_id": assignment.CourseID},
	})

	return dto.NewAssignmentResponse(assignment), nil
}

// Grade records a mentor's grade for a submitted assignment. The grade
// range is checked after authorization so an unauthorized caller learns
// nothing about payload validity.
func (s *courseService) Grade(ctx context.Context, actor models.User, assignmentID uint, payload dto.GradeRequest) (dto.AssignmentResponse, error) {
	tracer := otel.Tracer("github.com/harshith-dev/coursehub-api/internal/service/course")
	ctx, span := tracer.Start(ctx, "course.grade")
	span.SetAttributes(
		attribute.Int64("grade.assignment_id", int64(assignmentID)),
		attribute.Int64("grade.actor_id", int64(actor.ID)),
	)
	defer span.End()

	assignment, err := s.assignments.FindByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "assignment_not_found")
			return dto.AssignmentResponse{}, NewNotFoundError("assignment", assignmentID)
		}
		span.RecordError(err)
		return dto.AssignmentResponse{}, err
	}

	course, err := s.loadCourse(ctx, assignment.CourseID)
	if err != nil {
		span.RecordError(err)
		return dto.AssignmentResponse{}, err
	}

	if authzErr := Authorize(actor, ActionGrade, Resource{OwnerID: &course.MentorID}); authzErr != nil {
		span.SetStatus(codes.Error, "not_authorized")
		return dto.AssignmentResponse{}, authzErr
	}

	if payload.Grade < 0 || payload.Grade > 100 {
		span.SetStatus(codes.Error, "grade_out_of_range")
		return dto.AssignmentResponse{}, NewValidationError("grade", "must be between 0 and 100")
	}

	if !assignment.IsSubmitted() {
		span.SetStatus(codes.Error, "not_submitted")
		return dto.AssignmentResponse{}, NewValidationError("assignment", "has no submission to grade")
	}

	var previous interface{}
	if assignment.Grade != nil {
		previous = *assignment.Grade
	}

	grade := payload.Grade
	assignment.Grade = &grade

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		span.RecordError(err)
		return dto.AssignmentResponse{}, err
	}

	observability.WorkflowMutations().WithLabelValues(string(models.AuditGradeChanged)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditGradeChanged,
		Details:  fmt.Sprintf("assignment %q graded", assignment.Title),
		EntityID: &assignment.ID,
		Metadata: map[string]interface{}{
			"course_id": assignment.CourseID,
			"old_grade": previous,
			"new_grade": grade,
		},
	})

	span.SetAttributes(attribute.Int("grade.value", grade))
	return dto.NewAssignmentResponse(assignment), nil
}

// GetSubmissions lists submitted answers for a course. A submission
// whose account has since been deleted is shown under a placeholder
// identity rather than dropped.
func (s *courseService) GetSubmissions(ctx context.Context, actor models.User, courseID uint) ([]dto.SubmissionResponse, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if authzErr := Authorize(actor, ActionSubmissionsView, Resource{OwnerID: &course.MentorID}); authzErr != nil {
		return nil, authzErr
	}

	assignments, err := s.assignments.ListSubmitted(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	submissions := make([]dto.SubmissionResponse, 0, len(assignments))
	for _, assignment := range assignments {
		submission := dto.SubmissionResponse{
			AssignmentID:    assignment.ID,
			Title:           assignment.Title,
			StudentID:       assignment.SubmittedBy,
			StudentUsername: unknownStudent,
			Grade:           assignment.Grade,
		}
		if assignment.AnswerFileURL != nil {
			submission.AnswerFileURL = *assignment.AnswerFileURL
		}
		if assignment.SubmittedBy != nil {
			if student, lookupErr := s.users.FindByIDAny(ctx, *assignment.SubmittedBy); lookupErr == nil && !student.IsDeleted() {
				submission.StudentUsername = student.Username
			}
		}
		submissions = append(submissions, submission)
	}

	return submissions, nil
}

func (s *courseService) EnrollmentStats(ctx context.Context, actor models.User) ([]dto.EnrollmentStatResponse, error) {
	if authzErr := Authorize(actor, ActionStatsView, Resource{}); authzErr != nil {
		return nil, authzErr
	}

	stats, err := s.courses.EnrollmentStats(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EnrollmentStatResponse, 0, len(stats))
	for _, stat := range stats {
		responses = append(responses, dto.EnrollmentStatResponse{
			CourseID: stat.CourseID,
			Name:     stat.Name,
			Enrolled: stat.Enrolled,
		})
	}
	return responses, nil
}

func (s *courseService) loadCourse(ctx context.Context, id uint) (models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Course{}, NewNotFoundError("course", id)
		}
		return models.Course{}, err
	}
	return course, nil
}

func (s *courseService) sanitize(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}

// catalogCacheKey derives a versioned key so invalidation is a single
// INCR instead of a keyspace scan.
func (s *courseService) catalogCacheKey(ctx context.Context, req dto.CourseListRequest, page, pageSize int) string {
	version := "0"
	if s.cache != nil {
		if v, err := s.cache.Get(ctx, catalogVersionKey).Result(); err == nil {
			version = v
		}
	}

	mentor := uint(0)
	if req.MentorID != nil {
		mentor = *req.MentorID
	}

	return fmt.Sprintf("courses:catalog:v%s:p%d:s%d:sort=%s:cat=%s:q=%s:m=%d",
		version, page, pageSize, req.Sort, req.Category, req.Search, mentor)
}

func (s *courseService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, catalogVersionKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}
