package models

import "time"

// Assignment lifecycle states derived from the submission fields.
const (
	AssignmentStatusCreated   = "created"
	AssignmentStatusSubmitted = "submitted"
	AssignmentStatusGraded    = "graded"
)

// Assignment is a gradeable task owned exclusively by its course. A
// student's answer overwrites any previous one; grades may be re-set.
type Assignment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CourseID      uint      `gorm:"not null;index" json:"course_id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	FileURL       string    `gorm:"size:512" json:"file_url"`
	AnswerFileURL *string   `gorm:"size:512" json:"answer_file_url,omitempty"`
	SubmittedBy   *uint     `json:"submitted_by,omitempty"`
	Grade         *int      `json:"grade,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsSubmitted reports whether a student answer has been uploaded.
func (a Assignment) IsSubmitted() bool {
	return a.AnswerFileURL != nil && a.SubmittedBy != nil
}

// Status derives the lifecycle state from the submission and grade fields.
func (a Assignment) Status() string {
	switch {
	case a.Grade != nil:
		return AssignmentStatusGraded
	case a.IsSubmitted():
		return AssignmentStatusSubmitted
	default:
		return AssignmentStatusCreated
	}
}
