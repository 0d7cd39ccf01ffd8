package models

import "time"

// SupportMessage is a question filed by a user for the platform team.
// Admins attach a single reply in place.
type SupportMessage struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ReferenceID string     `gorm:"size:36;uniqueIndex" json:"reference_id"`
	UserID      *uint      `gorm:"index" json:"user_id,omitempty"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Email       string     `gorm:"size:100;not null" json:"email"`
	Subject     string     `gorm:"size:200;not null" json:"subject"`
	Message     string     `gorm:"size:2000;not null" json:"message"`
	AdminReply  *string    `gorm:"size:2000" json:"admin_reply,omitempty"`
	RepliedBy   *uint      `json:"replied_by,omitempty"`
	RepliedAt   *time.Time `json:"replied_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsReplied reports whether an admin has answered the message.
func (m SupportMessage) IsReplied() bool {
	return m.AdminReply != nil
}
