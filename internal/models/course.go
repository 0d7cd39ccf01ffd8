package models

import "time"

// Course is an authored unit of learning content owned by exactly one
// mentor. The mentor is set at creation and never reassigned.
type Course struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"size:2000" json:"description"`
	Category    string         `gorm:"size:100" json:"category"`
	Duration    int            `gorm:"not null" json:"duration"`
	MentorID    uint           `gorm:"not null;index" json:"mentor_id"`
	Mentor      User           `gorm:"foreignKey:MentorID" json:"mentor"`
	Modules     []CourseModule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"modules,omitempty"`
	Assignments []Assignment   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignments,omitempty"`
	Lifecycle
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourseModule is a content unit owned exclusively by its course. Modules
// have no soft-delete tier; they are removed outright.
type CourseModule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Duration  int       `json:"duration"`
	VideoURL  string    `gorm:"size:512" json:"video_url"`
	CreatedAt time.Time `json:"created_at"`
}
