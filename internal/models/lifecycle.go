package models

import "time"

// Lifecycle carries the soft-delete state embedded in entities that are
// hidden instead of physically removed.
type Lifecycle struct {
	Deleted   bool       `gorm:"not null;default:false;index" json:"deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *uint      `json:"deleted_by,omitempty"`
}

// MarkDeleted flags the record as deleted by the given actor.
func (l *Lifecycle) MarkDeleted(actorID uint, at time.Time) {
	l.Deleted = true
	l.DeletedAt = &at
	l.DeletedBy = &actorID
}

// IsDeleted reports whether the record has been soft-deleted.
func (l Lifecycle) IsDeleted() bool {
	return l.Deleted
}
