package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditAction tags an audit trail entry with the operation that produced it.
type AuditAction string

const (
	AuditCourseCreated        AuditAction = "COURSE_CREATED"
	AuditCourseUpdated        AuditAction = "COURSE_UPDATED"
	AuditCourseDeleted        AuditAction = "COURSE_DELETED"
	AuditModuleAdded          AuditAction = "MODULE_ADDED"
	AuditModuleDeleted        AuditAction = "MODULE_DELETED"
	AuditAssignmentAdded      AuditAction = "ASSIGNMENT_ADDED"
	AuditAssignmentDeleted    AuditAction = "ASSIGNMENT_DELETED"
	AuditAssignmentSubmitted  AuditAction = "ASSIGNMENT_SUBMITTED"
	AuditGradeChanged         AuditAction = "GRADE_CHANGED"
	AuditUserEnrolled         AuditAction = "USER_ENROLLED"
	AuditUserDeEnrolled       AuditAction = "USER_DE_ENROLLED"
	AuditUserRegistered       AuditAction = "USER_REGISTERED"
	AuditUserUpdated          AuditAction = "USER_UPDATED"
	AuditUserDeleted          AuditAction = "USER_DELETED"
	AuditUserLogin            AuditAction = "USER_LOGIN"
	AuditLoginFailed          AuditAction = "LOGIN_FAILED"
	AuditPasswordChanged      AuditAction = "PASSWORD_CHANGED"
	AuditSupportReplied       AuditAction = "SUPPORT_REPLIED"
)

// AuditLog is an immutable, append-only record of who did what to which
// entity and when. Rows are never updated or deleted.
type AuditLog struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	ActorID   uint              `gorm:"not null;index" json:"actor_id"`
	Action    AuditAction       `gorm:"size:64;not null;index" json:"action"`
	Details   string            `gorm:"size:1000" json:"details"`
	EntityID  *uint             `gorm:"index" json:"entity_id,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata,omitempty"`
	IPAddress string            `gorm:"size:45" json:"ip_address,omitempty"`
	CreatedAt time.Time         `gorm:"index" json:"created_at"`
}
