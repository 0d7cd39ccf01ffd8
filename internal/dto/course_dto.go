package dto

import (
	"time"

	"github.com/harshith-dev/coursehub-api/internal/models"
)

// CourseRequest is the payload for creating or updating a course.
type CourseRequest struct {
	Name        string `form:"name" json:"name" validate:"required,min=3,max=200"`
	Description string `form:"description" json:"description" validate:"required,min=10,max=2000"`
	Category    string `form:"category" json:"category" validate:"omitempty,max=100"`
	Duration    int    `form:"duration" json:"duration" validate:"required,min=1"`
}

// CourseListRequest carries catalog listing parameters. Out-of-range page
// and page size values are coerced by the service, never rejected.
type CourseListRequest struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Sort     string `query:"sort"`
	Category string `query:"category"`
	Search   string `query:"search"`
	MentorID *uint  `query:"mentor_id"`
}

// ModuleCreateRequest is the payload for adding a module to a course.
type ModuleCreateRequest struct {
	Title    string `form:"title" json:"title" validate:"required,min=3,max=200"`
	Duration int    `form:"duration" json:"duration" validate:"omitempty,min=0"`
}

// AssignmentCreateRequest is the payload for adding an assignment.
type AssignmentCreateRequest struct {
	Title string `form:"title" json:"title" validate:"required,min=3,max=200"`
}

// ModuleResponse is the serialized representation of a course module.
type ModuleResponse struct {
	ID        uint      `json:"id"`
	CourseID  uint      `json:"course_id"`
	Title     string    `json:"title"`
	Duration  int       `json:"duration"`
	VideoURL  string    `json:"video_url"`
	CreatedAt time.Time `json:"created_at"`
}

// CourseResponse is the serialized representation returned to API clients.
type CourseResponse struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Duration    int              `json:"duration"`
	MentorID    uint             `json:"mentor_id"`
	MentorName  string           `json:"mentor_name,omitempty"`
	Modules     []ModuleResponse `json:"modules,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CourseListResponse wraps a catalog page.
type CourseListResponse struct {
	Items      []CourseResponse `json:"items"`
	Pagination PaginationMeta   `json:"pagination"`
}

// EnrollmentStatResponse reports per-course enrollment totals.
type EnrollmentStatResponse struct {
	CourseID uint   `json:"course_id"`
	Name     string `json:"name"`
	Enrolled int64  `json:"enrolled"`
}

// NewModuleResponse converts a module model into a DTO.
func NewModuleResponse(model models.CourseModule) ModuleResponse {
	return ModuleResponse{
		ID:        model.ID,
		CourseID:  model.CourseID,
		Title:     model.Title,
		Duration:  model.Duration,
		VideoURL:  model.VideoURL,
		CreatedAt: model.CreatedAt,
	}
}

// NewCourseResponse converts a course model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	response := CourseResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Category:    model.Category,
		Duration:    model.Duration,
		MentorID:    model.MentorID,
		MentorName:  model.Mentor.Username,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}

	for _, module := range model.Modules {
		response.Modules = append(response.Modules, NewModuleResponse(module))
	}

	return response
}

// NewCourseResponseSlice converts a slice of course models into DTOs.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}
	return responses
}
