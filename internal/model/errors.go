package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("conflict")
	ErrInvalidToken       = errors.New("token invalid or expired")
	ErrMissingSigningKey  = errors.New("no JWT key available")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// NotFoundError is returned when a lookup by id or username yields no row.
type NotFoundError struct {
	Entity string
	Field  string
	Value  any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Entity, e.Field, e.Value)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFoundByID builds the "<Entity> not found with ID: <id>" error.
func NotFoundByID(entity string, id int) error {
	return &NotFoundError{Entity: entity, Field: "ID", Value: id}
}

// ValidationError reports a missing or malformed field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UnauthorizedError wraps ErrUnauthorized with a caller-facing reason.
func UnauthorizedError(reason string) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, reason)
}
