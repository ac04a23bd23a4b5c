// Package common defines shared constants and sentinel errors used across
// client and server layers of quizhub. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level error kinds. Every error returned by a service matches
	// exactly one of these through errors.Is.
	ErrorValidation   = errors.New("validation error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorStorage      = errors.New("storage error")
	ErrorTransaction  = errors.New("transaction error")
	ErrorInternal     = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Error is a kinded service error. Message is safe to show to clients,
// Cause is kept for logs only.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

// NewError builds an Error of the given kind.
func NewError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// FieldViolation describes one failed constraint on one input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates every constraint an input failed.
type ValidationError struct {
	Message    string
	Violations []FieldViolation
}

// NewValidationError returns a ValidationError carrying a single message and
// no field-level details, e.g. for a missing path parameter.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// Add records a violation for field.
func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// HasViolations reports whether any violation was recorded.
func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

// OrNil returns e when it holds violations and nil otherwise, so callers can
// write `return v.OrNil()` without returning a typed nil.
func (e *ValidationError) OrNil() error {
	if e == nil || !e.HasViolations() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Invalid inputs. Please check your inputs and try again."
	}
	if len(e.Violations) == 0 {
		return msg
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return msg + " (" + strings.Join(parts, "; ") + ")"
}

// Is makes every ValidationError match ErrorValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrorValidation
}

// PublicMessage returns the client-facing text of err: the Message of a
// kinded Error or ValidationError, or fallback for anything else.
func PublicMessage(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		if ve.Message != "" {
			return ve.Message
		}
		return "Invalid inputs. Please check your inputs and try again."
	}
	var ce *Error
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
