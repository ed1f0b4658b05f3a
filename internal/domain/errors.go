package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	ErrUpstreamModel        = errors.New("text generation failed")
	ErrMalformedModelOutput = errors.New("malformed model output")
	ErrCredentialMissing    = errors.New("google credential missing")
	ErrCredentialExpired    = errors.New("google credential expired")
	ErrProviderAPI          = errors.New("form provider rejected the call")
	ErrPersistence          = errors.New("persistence failed")
)

// Entities named by NotFoundError.
const (
	EntityUser       = "user"
	EntityCredential = "credential"
	EntityForm       = "form"
)

// NotFoundError reports a missing record of a known entity. It matches ErrNotFound.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError creates a NotFoundError for the given entity and id.
func NewNotFoundError(entity string, id fmt.Stringer) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id.String()}
}

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

// NewEmptyPromptError is returned before any model call when the prompt is blank.
func NewEmptyPromptError() *ValidationError {
	return NewValidationError("prompt", "required")
}

// MalformedOutputError reports model text that is not a usable JSON array.
// Raw is kept for server-side logging only.
type MalformedOutputError struct {
	Stage  string
	Reason string
	Raw    string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("%s: malformed model output: %s", e.Stage, e.Reason)
}

func (e *MalformedOutputError) Unwrap() error { return ErrMalformedModelOutput }

// UpstreamError wraps a failed text-generation call.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

// Is lets errors.Is match ErrUpstreamModel while Unwrap keeps the cause reachable.
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstreamModel }

func (e *UpstreamError) Unwrap() error { return e.Err }

// ProviderAPIError carries the diagnostic detail returned by the form provider.
type ProviderAPIError struct {
	Op      string
	Status  int
	Code    string
	Message string
}

func (e *ProviderAPIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("forms %s: %d %s: %s", e.Op, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("forms %s: %d: %s", e.Op, e.Status, e.Message)
}

func (e *ProviderAPIError) Unwrap() error { return ErrProviderAPI }

// PersistenceError wraps a failed document-store write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }
