package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/harshith-dev/coursehub-api/internal/dto"
	"github.com/harshith-dev/coursehub-api/internal/models"
)

type courseFixture struct {
	users       *memUserRepo
	courses     *memCourseRepo
	modules     *memModuleRepo
	assignments *memAssignmentRepo
	enrollments *memEnrollmentRepo
	audit       *memAuditRepo
	uploader    *fakeUploader
	svc         CourseService
}

func newCourseFixture(t *testing.T, cache *redis.Client) *courseFixture {
	t.Helper()
	f := &courseFixture{
		users:       newMemUserRepo(),
		courses:     newMemCourseRepo(),
		modules:     newMemModuleRepo(),
		assignments: newMemAssignmentRepo(),
		enrollments: newMemEnrollmentRepo(),
		audit:       &memAuditRepo{},
		uploader:    &fakeUploader{},
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	recorder := NewAuditService(f.audit, nil, testLogger())
	f.svc = NewCourseService(f.courses, f.modules, f.assignments, f.enrollments, f.users, f.uploader, recorder, validate, cache, time.Minute, testLogger())
	return f
}

func (f *courseFixture) mentor() models.User {
	return f.users.put(models.User{Username: "mentor", Email: "mentor@example.com", Role: models.RoleMentor})
}

func (f *courseFixture) student() models.User {
	return f.users.put(models.User{Username: "student", Email: "student@example.com", Role: models.RoleUser})
}

func (f *courseFixture) course(mentor models.User) models.Course {
	return f.courses.put(models.Course{
		Name:        "Go Fundamentals",
		Description: "An introduction to the Go programming language.",
		Category:    "programming",
		Duration:    40,
		MentorID:    mentor.ID,
	})
}

func validCourseRequest() dto.CourseRequest {
	return dto.CourseRequest{
		Name:        "Go Fundamentals",
		Description: "An introduction to the Go programming language.",
		Category:    "programming",
		Duration:    40,
	}
}

func TestCourseServiceCreateRequiresMentorRole(t *testing.T) {
	f := newCourseFixture(t, nil)
	student := f.student()
	admin := f.users.put(models.User{Username: "root", Email: "root@example.com", Role: models.RoleAdmin})

	var authzErr *AuthorizationError

	_, err := f.svc.Create(context.Background(), student, validCourseRequest())
	require.ErrorAs(t, err, &authzErr)

	_, err = f.svc.Create(context.Background(), admin, validCourseRequest())
	require.ErrorAs(t, err, &authzErr)

	require.Empty(t, f.audit.entries)
}

func TestCourseServiceCreateAuditsOnce(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()

	response, err := f.svc.Create(context.Background(), mentor, validCourseRequest())
	require.NoError(t, err)
	require.NotZero(t, response.ID)
	require.Equal(t, mentor.ID, response.MentorID)

	require.Equal(t, []models.AuditAction{models.AuditCourseCreated}, f.audit.actions())
	require.Equal(t, response.ID, *f.audit.entries[0].EntityID)
}

func TestCourseServiceCreateSanitizesMarkup(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()

	payload := validCourseRequest()
	payload.Name = "Go <script>alert(1)</script>Fundamentals"

	response, err := f.svc.Create(context.Background(), mentor, payload)
	require.NoError(t, err)
	require.NotContains(t, response.Name, "<script>")
}

func TestCourseServiceUpdateOwnershipEnforced(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()
	other := f.users.put(models.User{Username: "rival", Email: "rival@example.com", Role: models.RoleMentor})
	admin := f.users.put(models.User{Username: "root", Email: "root@example.com", Role: models.RoleAdmin})
	course := f.course(mentor)

	payload := validCourseRequest()
	payload.Name = "Go Fundamentals v2"

	var authzErr *AuthorizationError

	_, err := f.svc.Update(context.Background(), other, course.ID, payload)
	require.ErrorAs(t, err, &authzErr)

	_, err = f.svc.Update(context.Background(), admin, course.ID, payload)
	require.ErrorAs(t, err, &authzErr)

	response, err := f.svc.Update(context.Background(), mentor, course.ID, payload)
	require.NoError(t, err)
	require.Equal(t, "Go Fundamentals v2", response.Name)
	require.Equal(t, []models.AuditAction{models.AuditCourseUpdated}, f.audit.actions())
}

func TestCourseServiceDeleteIsSoft(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()
	course := f.course(mentor)

	require.NoError(t, f.svc.Delete(context.Background(), mentor, course.ID))

	var notFound *NotFoundError
	_, err := f.svc.Get(context.Background(), course.ID)
	require.ErrorAs(t, err, &notFound)

	kept, err := f.courses.FindByIDAny(context.Background(), course.ID)
	require.NoError(t, err)
	require.True(t, kept.IsDeleted())
	require.Equal(t, mentor.ID, *kept.DeletedBy)

	require.Equal(t, []models.AuditAction{models.AuditCourseDeleted}, f.audit.actions())
}

func TestCourseServiceEnrollDuplicateConflict(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()
	student := f.student()
	course := f.course(mentor)

	require.NoError(t, f.svc.Enroll(context.Background(), student, course.ID))

	var conflict *ConflictError
	err := f.svc.Enroll(context.Background(), student, course.ID)
	require.ErrorAs(t, err, &conflict)

	// The failed second attempt must not produce a second entry.
	require.Equal(t, []models.AuditAction{models.AuditUserEnrolled}, f.audit.actions())
}

func TestCourseServiceDeEnroll(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()
	student := f.student()
	course := f.course(mentor)

	// Leaving a course the student never joined succeeds as a no-op.
	require.NoError(t, f.svc.DeEnroll(context.Background(), student, course.ID))

	require.NoError(t, f.svc.Enroll(context.Background(), student, course.ID))
	require.NoError(t, f.svc.DeEnroll(context.Background(), student, course.ID))

	enrolled, err := f.enrollments.Exists(context.Background(), student.ID, course.ID)
	require.NoError(t, err)
	require.False(t, enrolled)
}

func TestCourseServiceSubmitRequiresEnrollment(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()
	student := f.student()
	course := f.course(mentor)
	assignment := f.assignments.put(models.Assignment{CourseID: course.ID, Title: "Week 1"})

	file := newTestFileHeader(t, "answer.pdf", []byte("%PDF-1.4 test"))

	var authzErr *AuthorizationError
	_, err := f.svc.Submit(context.Background(), student, assignment.ID, file)
	require.ErrorAs(t, err, &authzErr)
	require.Zero(t, f.uploader.documentCalls)
}

func TestCourseServiceSubmitStoresAnswer(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()
	student := f.student()
	course := f.course(mentor)
	assignment := f.assignments.put(models.Assignment{CourseID: course.ID, Title: "Week 1"})

	require.NoError(t, f.svc.Enroll(context.Background(), student, course.ID))

	file := newTestFileHeader(t, "answer.pdf", []byte("%PDF-1.4 test"))
	response, err := f.svc.Submit(context.Background(), student, assignment.ID, file)
	require.NoError(t, err)
	require.NotNil(t, response.AnswerFileURL)
	require.Equal(t, student.ID, *response.SubmittedBy)
	require.Equal(t, models.AssignmentStatusSubmitted, response.Status)
	require.Equal(t, 1, f.uploader.documentCalls)

	require.Equal(t, []models.AuditAction{models.AuditUserEnrolled, models.AuditAssignmentSubmitted}, f.audit.actions())
}

func TestCourseServiceResubmitKeepsGrade(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()
	student := f.student()
	course := f.course(mentor)
	answer := "https://cdn.test/raw/first.pdf"
	grade := 85
	submitterID := student.ID
	assignment := f.assignments.put(models.Assignment{
		CourseID:      course.ID,
		Title:         "Week 1",
		AnswerFileURL: &answer,
		SubmittedBy:   &submitterID,
		Grade:         &grade,
	})

	require.NoError(t, f.svc.Enroll(context.Background(), student, course.ID))

	file := newTestFileHeader(t, "second.pdf", []byte("%PDF-1.4 revised answer"))
	response, err := f.svc.Submit(context.Background(), student, assignment.ID, file)
	require.NoError(t, err)

	// The answer is overwritten; the recorded grade survives until the
	// mentor regrades.
	require.Contains(t, *response.AnswerFileURL, "second.pdf")
	require.NotNil(t, response.Grade)
	require.Equal(t, 85, *response.Grade)
	require.Equal(t, models.AssignmentStatusGraded, response.Status)
}

func TestCourseServiceGrade(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()
	student := f.student()
	course := f.course(mentor)
	answer := "https://cdn.test/raw/answer.pdf"
	submitterID := student.ID
	assignment := f.assignments.put(models.Assignment{
		CourseID:      course.ID,
		Title:         "Week 1",
		AnswerFileURL: &answer,
		SubmittedBy:   &submitterID,
	})

	var validationErr *ValidationError
	_, err := f.svc.Grade(context.Background(), mentor, assignment.ID, dto.GradeRequest{Grade: 101})
	require.ErrorAs(t, err, &validationErr)

	_, err = f.svc.Grade(context.Background(), mentor, assignment.ID, dto.GradeRequest{Grade: -1})
	require.ErrorAs(t, err, &validationErr)

	response, err := f.svc.Grade(context.Background(), mentor, assignment.ID, dto.GradeRequest{Grade: 85})
	require.NoError(t, err)
	require.Equal(t, 85, *response.Grade)
	require.Equal(t, models.AssignmentStatusGraded, response.Status)

	require.Equal(t, []models.AuditAction{models.AuditGradeChanged}, f.audit.actions())
	require.Equal(t, 85, f.audit.entries[0].Metadata["new_grade"])
}

func TestCourseServiceGradeWithoutSubmission(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()
	course := f.course(mentor)
	assignment := f.assignments.put(models.Assignment{CourseID: course.ID, Title: "Week 1"})

	var validationErr *ValidationError
	_, err := f.svc.Grade(context.Background(), mentor, assignment.ID, dto.GradeRequest{Grade: 50})
	require.ErrorAs(t, err, &validationErr)
}

func TestCourseServiceSubmissionsPlaceholderForDeletedStudent(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()
	student := f.student()
	course := f.course(mentor)
	answer := "https://cdn.test/raw/answer.pdf"
	submitterID := student.ID
	f.assignments.put(models.Assignment{
		CourseID:      course.ID,
		Title:         "Week 1",
		AnswerFileURL: &answer,
		SubmittedBy:   &submitterID,
	})

	submissions, err := f.svc.GetSubmissions(context.Background(), mentor, course.ID)
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	require.Equal(t, "student", submissions[0].StudentUsername)

	deleted := f.users.users[student.ID]
	deleted.MarkDeleted(1, time.Now())
	f.users.users[student.ID] = deleted

	submissions, err = f.svc.GetSubmissions(context.Background(), mentor, course.ID)
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	require.Equal(t, "Unknown Student", submissions[0].StudentUsername)
}

func TestCourseServiceDeleteModuleOfOtherCourse(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()
	course := f.course(mentor)
	otherCourse := f.courses.put(models.Course{
		Name: "Rust Basics", Description: "Another course entirely for testing.",
		Duration: 10, MentorID: mentor.ID,
	})

	module := models.CourseModule{CourseID: otherCourse.ID, Title: "Intro"}
	require.NoError(t, f.modules.Create(context.Background(), &module))

	var notFound *NotFoundError
	err := f.svc.DeleteModule(context.Background(), mentor, course.ID, module.ID)
	require.ErrorAs(t, err, &notFound)
}

func TestCourseServiceListCoercesPagination(t *testing.T) {
	f := newCourseFixture(t, nil)
	mentor := f.mentor()
	f.course(mentor)

	response, err := f.svc.List(context.Background(), dto.CourseListRequest{Page: -5, PageSize: 0})
	require.NoError(t, err)
	require.Equal(t, 1, response.Pagination.Page)
	require.Equal(t, defaultPageSize, response.Pagination.PageSize)
	require.Len(t, response.Items, 1)

	response, err = f.svc.List(context.Background(), dto.CourseListRequest{Page: 1, PageSize: 10_000})
	require.NoError(t, err)
	require.Equal(t, maxPageSize, response.Pagination.PageSize)
}

func TestCourseServiceListUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	f := newCourseFixture(t, cache)
	mentor := f.mentor()
	f.course(mentor)

	first, err := f.svc.List(context.Background(), dto.CourseListRequest{})
	require.NoError(t, err)
	require.Len(t, first.Items, 1)

	// Mutating storage behind the cache must not change the cached page.
	f.courses.put(models.Course{Name: "Sneaky", Description: "Added behind the cache layer.", Duration: 5, MentorID: mentor.ID})

	cached, err := f.svc.List(context.Background(), dto.CourseListRequest{})
	require.NoError(t, err)
	require.Len(t, cached.Items, 1)

	// A workflow mutation bumps the catalog version and misses the cache.
	_, err = f.svc.Create(context.Background(), mentor, validCourseRequest())
	require.NoError(t, err)

	fresh, err := f.svc.List(context.Background(), dto.CourseListRequest{})
	require.NoError(t, err)
	require.Len(t, fresh.Items, 3)
}
