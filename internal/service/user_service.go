package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/harshith-dev/coursehub-api/internal/dto"
	"github.com/harshith-dev/coursehub-api/internal/models"
	"github.com/harshith-dev/coursehub-api/internal/observability"
	"github.com/harshith-dev/coursehub-api/internal/repository"
	"github.com/harshith-dev/coursehub-api/pkg/hash"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// UserService drives the account lifecycle: registration, login,
// password rotation, profile updates and soft deletion.
type UserService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest, ip string) (dto.LoginResponse, error)
	ChangePassword(ctx context.Context, actor models.User, payload dto.ChangePasswordRequest) error
	Update(ctx context.Context, actor models.User, targetID uint, payload dto.UserUpdateRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, actor models.User, targetID uint) error
	Get(ctx context.Context, id uint) (dto.UserResponse, error)
	List(ctx context.Context, actor models.User, req dto.UserListRequest) (dto.UserListResponse, error)
	EnrolledCourses(ctx context.Context, actor models.User) ([]dto.CourseResponse, error)
	SeedAdmin(ctx context.Context, username, email, password string) error
}

type userService struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	tokens      TokenService
	audit       AuditRecorder
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewUserService constructs the user lifecycle service.
func NewUserService(
	users repository.UserRepository,
	courses repository.CourseRepository,
	enrollments repository.EnrollmentRepository,
	tokens TokenService,
	audit AuditRecorder,
	validate *validator.Validate,
	logger zerolog.Logger,
) UserService {
	return &userService{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		tokens:      tokens,
		audit:       audit,
		validator:   validate,
		logger:      logger.With().Str("component", "user_service").Logger(),
		now:         time.Now,
	}
}

func (s *userService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	username := strings.TrimSpace(payload.Username)
	if !usernamePattern.MatchString(username) {
		return dto.UserResponse{}, NewValidationError("username", "must be 3-30 characters of letters, digits or underscore")
	}

	if err := checkPasswordPolicy(payload.Password); err != nil {
		return dto.UserResponse{}, err
	}

	role := models.RoleUser
	if payload.Role != "" {
		role = models.Role(payload.Role)
		if !role.Valid() {
			return dto.UserResponse{}, NewValidationError("role", "unknown role")
		}
	}

	hashed, err := hash.Password(payload.Password)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		PasswordHash: hashed,
		Role:         role,
		Phone:        strings.TrimSpace(payload.Phone),
	}

	if err := s.users.Create(ctx, &user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return dto.UserResponse{}, NewConflictError("username already taken")
		case errors.Is(err, repository.ErrDuplicateEmail):
			return dto.UserResponse{}, NewConflictError("email already registered")
		}
		return dto.UserResponse{}, err
	}

	observability.WorkflowMutations().WithLabelValues(string(models.AuditUserRegistered)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  user.ID,
		Action:   models.AuditUserRegistered,
		Details:  fmt.Sprintf("user %q registered", user.Username),
		EntityID: &user.ID,
		Metadata: map[string]interface{}{"role": string(user.Role)},
	})

	return dto.NewUserResponse(user), nil
}

// Login verifies credentials and issues an access token. Every failure
// path returns the same error so callers cannot probe which usernames
// exist.
func (s *userService) Login(ctx context.Context, payload dto.LoginRequest, ip string) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(payload.Username))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error().Err(err).Msg("login lookup failed")
		}
		s.recordLoginFailure(ctx, 0, ip)
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if !hash.Compare(user.PasswordHash, payload.Password) {
		s.recordLoginFailure(ctx, user.ID, ip)
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:   user.ID,
		Action:    models.AuditUserLogin,
		Details:   fmt.Sprintf("user %q logged in", user.Username),
		EntityID:  &user.ID,
		IPAddress: ip,
	})

	return dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *userService) ChangePassword(ctx context.Context, actor models.User, payload dto.ChangePasswordRequest) error {
	if authzErr := Authorize(actor, ActionPasswordChange, Resource{SubjectID: &actor.ID}); authzErr != nil {
		return authzErr
	}

	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("user", actor.ID)
		}
		return err
	}

	if !hash.Compare(user.PasswordHash, payload.OldPassword) {
		return NewValidationError("old_password", "does not match current password")
	}

	if err := checkPasswordPolicy(payload.NewPassword); err != nil {
		return err
	}

	hashed, err := hash.Password(payload.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashed
	if err := s.users.Update(ctx, &user); err != nil {
		return err
	}

	observability.WorkflowMutations().WithLabelValues(string(models.AuditPasswordChanged)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditPasswordChanged,
		Details:  fmt.Sprintf("user %q changed password", user.Username),
		EntityID: &user.ID,
	})

	return nil
}

// Update applies a partial profile update. Nil fields are left alone.
func (s *userService) Update(ctx context.Context, actor models.User, targetID uint, payload dto.UserUpdateRequest) (dto.UserResponse, error) {
	if authzErr := Authorize(actor, ActionUserUpdate, Resource{SubjectID: &targetID}); authzErr != nil {
		return dto.UserResponse{}, authzErr
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, NewNotFoundError("user", targetID)
		}
		return dto.UserResponse{}, err
	}

	changed := map[string]interface{}{}

	if payload.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*payload.Email))
		if email != user.Email {
			taken, takenErr := s.users.EmailTaken(ctx, email, user.ID)
			if takenErr != nil {
				return dto.UserResponse{}, takenErr
			}
			if taken {
				return dto.UserResponse{}, NewConflictError("email already registered")
			}
			user.Email = email
			changed["email"] = email
		}
	}

	if payload.Phone != nil {
		user.Phone = strings.TrimSpace(*payload.Phone)
		changed["phone"] = user.Phone
	}

	if payload.Role != nil {
		if !actor.IsAdmin() {
			return dto.UserResponse{}, NewAuthorizationError(string(ActionUserUpdate), "only admins may change roles")
		}
		role := models.Role(*payload.Role)
		if role != user.Role {
			user.Role = role
			changed["role"] = string(role)
		}
	}

	if len(changed) == 0 {
		return dto.NewUserResponse(user), nil
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	observability.WorkflowMutations().WithLabelValues(string(models.AuditUserUpdated)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditUserUpdated,
		Details:  fmt.Sprintf("user %q updated", user.Username),
		EntityID: &user.ID,
		Metadata: changed,
	})

	return dto.NewUserResponse(user), nil
}

// Delete soft-deletes the account. The row remains for audit purposes
// and its username becomes available to new registrations.
func (s *userService) Delete(ctx context.Context, actor models.User, targetID uint) error {
	if authzErr := Authorize(actor, ActionUserDelete, Resource{SubjectID: &targetID}); authzErr != nil {
		return authzErr
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("user", targetID)
		}
		return err
	}

	user.MarkDeleted(actor.ID, s.now())
	if err := s.users.Update(ctx, &user); err != nil {
		return err
	}

	observability.WorkflowMutations().WithLabelValues(string(models.AuditUserDeleted)).Inc()
	s.audit.Record(ctx, AuditEntry{
		ActorID:  actor.ID,
		Action:   models.AuditUserDeleted,
		Details:  fmt.Sprintf("user %q deleted", user.Username),
		EntityID: &user.ID,
	})

	return nil
}

func (s *userService) Get(ctx context.Context, id uint) (dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, NewNotFoundError("user", id)
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, actor models.User, req dto.UserListRequest) (dto.UserListResponse, error) {
	if authzErr := Authorize(actor, ActionUserList, Resource{}); authzErr != nil {
		return dto.UserListResponse{}, authzErr
	}

	page := maxInt(req.Page, 1)
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := repository.UserFilter{
		Role:     models.Role(strings.TrimSpace(req.Role)),
		Search:   strings.TrimSpace(req.Search),
		Page:     page,
		PageSize: pageSize,
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return dto.UserListResponse{}, err
	}

	return dto.UserListResponse{
		Items: dto.NewUserResponseSlice(users),
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		},
	}, nil
}

// EnrolledCourses returns the actor's active enrollments. Courses
// deleted since enrollment are skipped.
func (s *userService) EnrolledCourses(ctx context.Context, actor models.User) ([]dto.CourseResponse, error) {
	ids, err := s.enrollments.ListCourseIDs(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	courses := make([]dto.CourseResponse, 0, len(ids))
	for _, id := range ids {
		course, findErr := s.courses.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, findErr
		}
		courses = append(courses, dto.NewCourseResponse(course))
	}

	return courses, nil
}

// SeedAdmin creates the bootstrap admin account when no admin exists.
func (s *userService) SeedAdmin(ctx context.Context, username, email, password string) error {
	count, err := s.users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := hash.Password(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
	}

	if err := s.users.Create(ctx, &admin); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("bootstrap admin account created")
	return nil
}

func (s *userService) recordLoginFailure(ctx context.Context, actorID uint, ip string) {
	s.audit.Record(ctx, AuditEntry{
		ActorID:   actorID,
		Action:    models.AuditLoginFailed,
		Details:   "login attempt failed",
		IPAddress: ip,
	})
}

// checkPasswordPolicy requires a lowercase letter, an uppercase letter,
// a digit and a minimum length of 8.
func checkPasswordPolicy(password string) error {
	if len(password) < 8 {
		return NewValidationError("password", "must be at least 8 characters")
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit {
		return NewValidationError("password", "must contain a lowercase letter, an uppercase letter and a digit")
	}
	return nil
}
