package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeLoad       ErrorType = "LOAD"
	ErrTypeEmptyView  ErrorType = "EMPTY_VIEW"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// Sentinels for errors.Is. A sentinel matches any AppError of the same type.
var (
	ErrLoad       = &AppError{Type: ErrTypeLoad}
	ErrEmptyView  = &AppError{Type: ErrTypeEmptyView}
	ErrParsing    = &AppError{Type: ErrTypeParsing}
	ErrValidation = &AppError{Type: ErrTypeValidation}
	ErrNotFound   = &AppError{Type: ErrTypeNotFound}
	ErrConfig     = &AppError{Type: ErrTypeConfig}
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("[%s]", e.Type)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's type
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Type == e.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewLoadError creates an error for a dataset that could not be loaded
func NewLoadError(message string, cause error) *AppError {
	return NewAppError(ErrTypeLoad, message, cause)
}

// NewEmptyViewError creates an error for a statistic requested on zero rows
func NewEmptyViewError(statistic string) *AppError {
	return NewAppError(ErrTypeEmptyView, fmt.Sprintf("no data for %s statistics", statistic), nil).
		WithContext("statistic", statistic)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or "".
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}
