package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrArtistNotFound signals a missing or inactive artist.
	ErrArtistNotFound = fmt.Errorf("artist %w", ErrNotFound)
	// ErrUserNotFound signals a missing or inactive user.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrBookingNotFound signals a missing booking.
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)

	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmailTaken signals a registration with an email already in use.
	ErrEmailTaken = fmt.Errorf("email %w", ErrAlreadyExists)
	// ErrReviewExists signals a second review for the same booking.
	ErrReviewExists = fmt.Errorf("review for booking %w", ErrAlreadyExists)

	// ErrInvalidInput signals a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials signals an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized signals a missing or invalid bearer token.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError names the offending field. It unwraps to ErrInvalidInput.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid creates a validation error for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
