package errors

import (
	"net/http"
	"strings"
)

// FieldError describes why a single input field was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level detail for malformed input.
// It matches ErrValidationFailed under errors.Is.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a validation error for the given fields.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Details()
}

// Is lets callers match any ValidationError against ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func (e *ValidationError) HTTPCode() int { return http.StatusBadRequest }

func (e *ValidationError) ErrorCode() string { return ErrValidationFailed.ErrorCode() }

func (e *ValidationError) Message() string { return ErrValidationFailed.Message() }

// Details joins the field messages.
func (e *ValidationError) Details() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return strings.Join(parts, "; ")
}
