package service

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned for any login failure. It carries no
// detail so callers cannot distinguish a missing account from a wrong
// password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ValidationError reports input that failed domain validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a field-scoped validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports a missing or soft-deleted entity.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// NewNotFoundError builds a not-found error for the given entity.
func NewNotFoundError(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports a state conflict such as a duplicate username or
// a repeated enrollment.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError builds a conflict error.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// AuthorizationError reports that the actor may not perform the requested
// action on the target resource.
type AuthorizationError struct {
	Action string
	Reason string
}

func (e *AuthorizationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("not authorized to %s", e.Action)
	}
	return fmt.Sprintf("not authorized to %s: %s", e.Action, e.Reason)
}

// NewAuthorizationError builds an authorization error.
func NewAuthorizationError(action, reason string) *AuthorizationError {
	return &AuthorizationError{Action: action, Reason: reason}
}

// StorageError wraps a file storage backend failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
