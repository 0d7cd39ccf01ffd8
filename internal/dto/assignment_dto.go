package dto

import (
	"time"

	"github.com/harshith-dev/coursehub-api/internal/models"
)

// GradeRequest carries a mentor's grade for a submitted assignment.
type GradeRequest struct {
	Grade int `form:"grade" json:"grade"`
}

// AssignmentResponse is the serialized representation of an assignment.
type AssignmentResponse struct {
	ID            uint      `json:"id"`
	CourseID      uint      `json:"course_id"`
	Title         string    `json:"title"`
	FileURL       string    `json:"file_url"`
	AnswerFileURL *string   `json:"answer_file_url,omitempty"`
	SubmittedBy   *uint     `json:"submitted_by,omitempty"`
	Grade         *int      `json:"grade,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SubmissionResponse enriches a submitted assignment with the submitting
// student's display identity.
type SubmissionResponse struct {
	AssignmentID    uint    `json:"assignment_id"`
	Title           string  `json:"title"`
	StudentID       *uint   `json:"student_id,omitempty"`
	StudentUsername string  `json:"student_username"`
	AnswerFileURL   string  `json:"answer_file_url"`
	Grade           *int    `json:"grade,omitempty"`
}

// NewAssignmentResponse converts an assignment model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:            model.ID,
		CourseID:      model.CourseID,
		Title:         model.Title,
		FileURL:       model.FileURL,
		AnswerFileURL: model.AnswerFileURL,
		SubmittedBy:   model.SubmittedBy,
		Grade:         model.Grade,
		Status:        model.Status(),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of assignment models.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}
	return responses
}
