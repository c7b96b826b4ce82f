package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ReportError represents a standardized error response returned by the HTTP and MCP surfaces
type ReportError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// Error implements the error interface
func (e *ReportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for different failure scenarios
const (
	ErrInvalidInput     = "INVALID_INPUT"
	ErrValidation       = "VALIDATION_ERROR"
	ErrGeneration       = "GENERATION_ERROR"
	ErrEnhancement      = "ENHANCEMENT_ERROR"
	ErrStorage          = "STORAGE_ERROR"
	ErrNotFound         = "NOT_FOUND"
	ErrRateLimit        = "RATE_LIMIT_EXCEEDED"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrUnknownTemplate  = "UNKNOWN_TEMPLATE"
	ErrDuplicateSection = "DUPLICATE_SECTION"
)

var (
	// ErrValidationFailed is returned when an assessment contains invalid enum values
	// and the caller has not acknowledged them.
	ErrValidationFailed = errors.New("assessment validation failed")

	// ErrDuplicateOrder is returned when two sections share the same order value.
	ErrDuplicateOrder = errors.New("duplicate section order")

	// ErrUnknownSection is returned when a section key has no registered generator.
	ErrUnknownSection = errors.New("unknown section")
)

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewReportError creates a new ReportError with timestamp
func NewReportError(code, message, details, requestID string) *ReportError {
	return &ReportError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// ValidationResult is the boolean-plus-reasons outcome of validating an assessment
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Reasons []string          `json:"reasons,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult returns a passing result
func NewValidationResult() ValidationResult {
	return ValidationResult{Valid: true}
}

// Add records a failure and marks the result invalid
func (r *ValidationResult) Add(field, message string, value interface{}) {
	r.Valid = false
	verr := NewValidationError(field, message, value)
	r.Errors = append(r.Errors, *verr)
	r.Reasons = append(r.Reasons, verr.Error())
}

// Err returns nil for a valid result, otherwise an error wrapping ErrValidationFailed
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(r.Reasons, "; "))
}
