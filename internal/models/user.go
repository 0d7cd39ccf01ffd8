package models

import "time"

// Role is the closed set of platform roles.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMentor Role = "MENTOR"
	RoleUser   Role = "USER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMentor, RoleUser:
		return true
	}
	return false
}

// User represents a platform account. Username and email are unique among
// non-deleted rows only, so uniqueness is enforced in the repository
// transaction rather than by a database constraint.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:50;not null;index" json:"username"`
	Email        string `gorm:"size:100;not null;index" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         Role   `gorm:"size:16;not null;default:USER" json:"role"`
	Phone        string `gorm:"size:20" json:"phone,omitempty"`
	Lifecycle
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsMentor reports whether the user holds the MENTOR role.
func (u User) IsMentor() bool {
	return u.Role == RoleMentor
}
