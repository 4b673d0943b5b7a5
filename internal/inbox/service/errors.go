package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated   = errors.New("not authenticated")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrMessagingDisabled = errors.New("user is not accepting messages")

	// ErrService marks a failed call to an external dependency (mail, AI).
	ErrService = errors.New("external service failure")
	// ErrInternal marks an unexpected store failure.
	ErrInternal = errors.New("internal error")

	ErrInvalidCredentials = errors.New("incorrect credentials")
	ErrNotVerified        = errors.New("account not verified")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCode        = errors.New("incorrect verification code")
	ErrCodeExpired        = errors.New("verification code expired")

	// ErrMailDelivery is an ErrService raised when the verification e-mail
	// could not be sent. The account is kept.
	ErrMailDelivery = fmt.Errorf("%w: mail delivery failed", ErrService)
)

// ValidationError carries a message fit to show the caller. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
