package models

import (
	"errors"
	"strings"
)

// Application-wide standard errors
var (
	// Resource errors
	ErrUserNotFound        = errors.New("user not found")
	ErrCatwayNotFound      = errors.New("catway not found")
	ErrReservationNotFound = errors.New("reservation not found")

	// Uniqueness / conflicts. All of them are reported to clients as 400.
	ErrUserAlreadyExists   = errors.New("user with this username already exists")
	ErrEmailAlreadyExists  = errors.New("user with this email already exists")
	ErrCatwayAlreadyExists = errors.New("catway with this number already exists")
	ErrReservationOverlap  = errors.New("catway is already reserved for this period")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")

	// Token errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// General request/server errors
	ErrInvalidInput = errors.New("invalid input data")
)

// ValidationError collects the messages of every failed field constraint.
// errors.Is(err, ErrInvalidInput) holds for it.
type ValidationError struct {
	Messages []string
}

// NewValidationError returns nil when no messages are given, so callers can
// build the message list unconditionally.
func NewValidationError(messages ...string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
