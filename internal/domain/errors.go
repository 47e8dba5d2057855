package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrValidation        = errors.New("validation error")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrCredentialMissing = errors.New("no API key configured")
	ErrProvider          = errors.New("provider error")
	ErrNetwork           = errors.New("network error")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Messages returns the field messages joined for display.
func (e *ValidationError) Messages() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ProviderError is returned when the AI provider answers with an error
// envelope or a response shape that carries no completion.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return "provider: " + e.Message
}

func (e *ProviderError) Unwrap() error { return ErrProvider }

// NewProviderError creates a ProviderError. An empty message becomes "invalid response".
func NewProviderError(message string) *ProviderError {
	if strings.TrimSpace(message) == "" {
		message = "invalid response"
	}
	return &ProviderError{Message: message}
}

// ErrorKind classifies an error for the wire envelope.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindAuth              ErrorKind = "auth"
	KindCredentialMissing ErrorKind = "credential_missing"
	KindAPI               ErrorKind = "api"
	KindNetwork           ErrorKind = "network"
	KindNotFound          ErrorKind = "not_found"
	KindInternal          ErrorKind = "internal"
)

// KindOf returns the ErrorKind for err. Unknown errors are KindInternal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return KindAuth
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrCredentialMissing):
		return KindCredentialMissing
	case errors.Is(err, ErrProvider):
		return KindAPI
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}
