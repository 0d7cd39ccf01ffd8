package service

import (
	"context"
	"io"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/harshith-dev/coursehub-api/internal/models"
	"github.com/harshith-dev/coursehub-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// memUserRepo is an in-memory UserRepository for service tests.
type memUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uint]models.User{}, nextID: 1}
}

func (m *memUserRepo) put(user models.User) models.User {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	} else if user.ID >= m.nextID {
		m.nextID = user.ID + 1
	}
	m.users[user.ID] = user
	return user
}

func (m *memUserRepo) FindByID(_ context.Context, id uint) (models.User, error) {
	user, ok := m.users[id]
	if !ok || user.IsDeleted() {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memUserRepo) FindByIDAny(_ context.Context, id uint) (models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memUserRepo) FindByUsername(_ context.Context, username string) (models.User, error) {
	for _, user := range m.users {
		if user.Username == username && !user.IsDeleted() {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memUserRepo) List(_ context.Context, filter repository.UserFilter) ([]models.User, int64, error) {
	var out []models.User
	for _, user := range m.users {
		if user.IsDeleted() {
			continue
		}
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (m *memUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range m.users {
		if existing.IsDeleted() {
			continue
		}
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	*user = m.put(*user)
	return nil
}

func (m *memUserRepo) Update(_ context.Context, user *models.User) error {
	m.users[user.ID] = *user
	return nil
}

func (m *memUserRepo) UsernameTaken(_ context.Context, username string, excludeID uint) (bool, error) {
	for _, user := range m.users {
		if user.ID != excludeID && !user.IsDeleted() && user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) EmailTaken(_ context.Context, email string, excludeID uint) (bool, error) {
	for _, user := range m.users {
		if user.ID != excludeID && !user.IsDeleted() && user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) CountByRole(_ context.Context, role models.Role) (int64, error) {
	var count int64
	for _, user := range m.users {
		if !user.IsDeleted() && user.Role == role {
			count++
		}
	}
	return count, nil
}

// memCourseRepo is an in-memory CourseRepository.
type memCourseRepo struct {
	courses map[uint]models.Course
	nextID  uint
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{courses: map[uint]models.Course{}, nextID: 1}
}

func (m *memCourseRepo) put(course models.Course) models.Course {
	if course.ID == 0 {
		course.ID = m.nextID
		m.nextID++
	} else if course.ID >= m.nextID {
		m.nextID = course.ID + 1
	}
	m.courses[course.ID] = course
	return course
}

func (m *memCourseRepo) FindByID(_ context.Context, id uint) (models.Course, error) {
	course, ok := m.courses[id]
	if !ok || course.IsDeleted() {
		return models.Course{}, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (m *memCourseRepo) FindByIDAny(_ context.Context, id uint) (models.Course, error) {
	course, ok := m.courses[id]
	if !ok {
		return models.Course{}, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (m *memCourseRepo) List(_ context.Context, filter repository.CourseFilter) ([]models.Course, int64, error) {
	var out []models.Course
	for _, course := range m.courses {
		if course.IsDeleted() {
			continue
		}
		if filter.Category != "" && course.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(course.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.MentorID != nil && course.MentorID != *filter.MentorID {
			continue
		}
		out = append(out, course)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))

	if filter.PageSize > 0 {
		start := (filter.Page - 1) * filter.PageSize
		if start > len(out) {
			start = len(out)
		}
		end := start + filter.PageSize
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, total, nil
}

func (m *memCourseRepo) Create(_ context.Context, course *models.Course) error {
	*course = m.put(*course)
	return nil
}

func (m *memCourseRepo) Update(_ context.Context, course *models.Course) error {
	m.courses[course.ID] = *course
	return nil
}

func (m *memCourseRepo) EnrollmentStats(_ context.Context) ([]repository.EnrollmentStat, error) {
	var stats []repository.EnrollmentStat
	for _, course := range m.courses {
		if course.IsDeleted() {
			continue
		}
		stats = append(stats, repository.EnrollmentStat{CourseID: course.ID, Name: course.Name})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].CourseID < stats[j].CourseID })
	return stats, nil
}

// memModuleRepo is an in-memory CourseModuleRepository.
type memModuleRepo struct {
	modules map[uint]models.CourseModule
	nextID  uint
}

func newMemModuleRepo() *memModuleRepo {
	return &memModuleRepo{modules: map[uint]models.CourseModule{}, nextID: 1}
}

func (m *memModuleRepo) FindByID(_ context.Context, id uint) (models.CourseModule, error) {
	module, ok := m.modules[id]
	if !ok {
		return models.CourseModule{}, gorm.ErrRecordNotFound
	}
	return module, nil
}

func (m *memModuleRepo) ListByCourse(_ context.Context, courseID uint) ([]models.CourseModule, error) {
	var out []models.CourseModule
	for _, module := range m.modules {
		if module.CourseID == courseID {
			out = append(out, module)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memModuleRepo) Create(_ context.Context, module *models.CourseModule) error {
	module.ID = m.nextID
	m.nextID++
	m.modules[module.ID] = *module
	return nil
}

func (m *memModuleRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.modules[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.modules, id)
	return nil
}

// memAssignmentRepo is an in-memory AssignmentRepository.
type memAssignmentRepo struct {
	assignments map[uint]models.Assignment
	nextID      uint
}

func newMemAssignmentRepo() *memAssignmentRepo {
	return &memAssignmentRepo{assignments: map[uint]models.Assignment{}, nextID: 1}
}

func (m *memAssignmentRepo) put(assignment models.Assignment) models.Assignment {
	if assignment.ID == 0 {
		assignment.ID = m.nextID
		m.nextID++
	} else if assignment.ID >= m.nextID {
		m.nextID = assignment.ID + 1
	}
	m.assignments[assignment.ID] = assignment
	return assignment
}

func (m *memAssignmentRepo) FindByID(_ context.Context, id uint) (models.Assignment, error) {
	assignment, ok := m.assignments[id]
	if !ok {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (m *memAssignmentRepo) ListByCourse(_ context.Context, courseID uint) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, assignment := range m.assignments {
		if assignment.CourseID == courseID {
			out = append(out, assignment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memAssignmentRepo) ListSubmitted(_ context.Context, courseID uint) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, assignment := range m.assignments {
		if assignment.CourseID == courseID && assignment.AnswerFileURL != nil {
			out = append(out, assignment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memAssignmentRepo) Create(_ context.Context, assignment *models.Assignment) error {
	*assignment = m.put(*assignment)
	return nil
}

func (m *memAssignmentRepo) Update(_ context.Context, assignment *models.Assignment) error {
	m.assignments[assignment.ID] = *assignment
	return nil
}

func (m *memAssignmentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, id)
	return nil
}

// memEnrollmentRepo is an in-memory EnrollmentRepository.
type memEnrollmentRepo struct {
	pairs map[[2]uint]struct{}
}

func newMemEnrollmentRepo() *memEnrollmentRepo {
	return &memEnrollmentRepo{pairs: map[[2]uint]struct{}{}}
}

func (m *memEnrollmentRepo) Enroll(_ context.Context, userID, courseID uint) error {
	key := [2]uint{userID, courseID}
	if _, ok := m.pairs[key]; ok {
		return repository.ErrAlreadyEnrolled
	}
	m.pairs[key] = struct{}{}
	return nil
}

func (m *memEnrollmentRepo) Remove(_ context.Context, userID, courseID uint) error {
	delete(m.pairs, [2]uint{userID, courseID})
	return nil
}

func (m *memEnrollmentRepo) Exists(_ context.Context, userID, courseID uint) (bool, error) {
	_, ok := m.pairs[[2]uint{userID, courseID}]
	return ok, nil
}

func (m *memEnrollmentRepo) ListCourseIDs(_ context.Context, userID uint) ([]uint, error) {
	var ids []uint
	for key := range m.pairs {
		if key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *memEnrollmentRepo) CountByCourse(_ context.Context, courseID uint) (int64, error) {
	var count int64
	for key := range m.pairs {
		if key[1] == courseID {
			count++
		}
	}
	return count, nil
}

// memAuditRepo is an in-memory AuditLogRepository.
type memAuditRepo struct {
	entries []models.AuditLog
	failing bool
}

func (m *memAuditRepo) Create(_ context.Context, entry *models.AuditLog) error {
	if m.failing {
		return gorm.ErrInvalidDB
	}
	entry.ID = uint(len(m.entries) + 1)
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memAuditRepo) List(_ context.Context, filter repository.AuditLogFilter) ([]models.AuditLog, int64, error) {
	var out []models.AuditLog
	for _, entry := range m.entries {
		if filter.ActorID != nil && entry.ActorID != *filter.ActorID {
			continue
		}
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		if filter.EntityID != nil && (entry.EntityID == nil || *entry.EntityID != *filter.EntityID) {
			continue
		}
		out = append(out, entry)
	}
	return out, int64(len(out)), nil
}

func (m *memAuditRepo) actions() []models.AuditAction {
	actions := make([]models.AuditAction, 0, len(m.entries))
	for _, entry := range m.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

// memSupportRepo is an in-memory SupportMessageRepository.
type memSupportRepo struct {
	messages map[uint]models.SupportMessage
	nextID   uint
}

func newMemSupportRepo() *memSupportRepo {
	return &memSupportRepo{messages: map[uint]models.SupportMessage{}, nextID: 1}
}

func (m *memSupportRepo) FindByID(_ context.Context, id uint) (models.SupportMessage, error) {
	message, ok := m.messages[id]
	if !ok {
		return models.SupportMessage{}, gorm.ErrRecordNotFound
	}
	return message, nil
}

func (m *memSupportRepo) List(_ context.Context, filter repository.SupportMessageFilter) ([]models.SupportMessage, int64, error) {
	var out []models.SupportMessage
	for _, message := range m.messages {
		if filter.Unseen && message.AdminReply != nil {
			continue
		}
		out = append(out, message)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (m *memSupportRepo) Create(_ context.Context, message *models.SupportMessage) error {
	message.ID = m.nextID
	message.CreatedAt = time.Now()
	m.nextID++
	m.messages[message.ID] = *message
	return nil
}

func (m *memSupportRepo) Update(_ context.Context, message *models.SupportMessage) error {
	m.messages[message.ID] = *message
	return nil
}

// fakeUploader satisfies UploadService without touching storage.
type fakeUploader struct {
	videoCalls    int
	documentCalls int
	err           error
}

func (f *fakeUploader) UploadVideo(_ context.Context, file *multipart.FileHeader) (string, error) {
	f.videoCalls++
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.test/video/" + file.Filename, nil
}

func (f *fakeUploader) UploadDocument(_ context.Context, file *multipart.FileHeader) (string, error) {
	f.documentCalls++
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.test/raw/" + file.Filename, nil
}
