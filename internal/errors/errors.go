package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// WithDetails returns a copy of e carrying message and details
func (e *APIError) WithDetails(message string, details interface{}) *APIError {
	return NewWithDetails(e.StatusCode, e.ErrorCode, message, details)
}

// Predefined error types for common scenarios
var (
	ErrValidationFailed   = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrRegionNotFound     = New(http.StatusNotFound, "REGION_NOT_FOUND", "Region not found")
	ErrRateLimitExceeded  = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
	ErrDatasetUnavailable = New(http.StatusInternalServerError, "DATASET_UNAVAILABLE", "Dataset could not be loaded")
	ErrInternalServer     = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ErrFieldValidation creates a validation error with field details
func ErrFieldValidation(field, message string) *APIError {
	return ErrValidationFailed.WithDetails(ErrValidationFailed.Message, ValidationError{
		Field:   field,
		Message: message,
	})
}

// NewValidationErrors creates validation errors from multiple fields
func NewValidationErrors(errors []ValidationError) *APIError {
	return ErrValidationFailed.WithDetails(ErrValidationFailed.Message, errors)
}
