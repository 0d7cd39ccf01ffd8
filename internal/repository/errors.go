package repository

import "errors"

// Sentinel errors surfaced by repositories so services can translate them
// into the API error taxonomy without inspecting driver details.
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrAlreadyEnrolled   = errors.New("user already enrolled in course")
)
