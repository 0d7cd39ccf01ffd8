package models

import "time"

// Enrollment is the join row granting a user access to a course. The
// composite unique index keeps duplicate enrollments out even under
// concurrent writers.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_enrollments_user_course" json:"user_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_enrollments_user_course" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}
