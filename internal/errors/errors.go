// Package errors provides a lightweight structured error type (DocServeError)
// for category-based classification in the HTTP and CLI adapters.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies a DocServeError for adapter mapping.
type ErrorCategory string

const (
	// User-facing input and configuration errors
	CategoryValidation ErrorCategory = "validation"
	CategoryConfig     ErrorCategory = "config"

	// Content resolution errors
	CategoryNotFound ErrorCategory = "not_found"
	CategoryCompose  ErrorCategory = "compose"

	// Infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRuntime    ErrorCategory = "runtime"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

// DocServeError is a structured error with category and context fields.
type DocServeError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocServeError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *DocServeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap supports errors.Is/errors.As chains.
func (e *DocServeError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *DocServeError) WithContext(key string, value any) *DocServeError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DocServeError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocServeError {
	return &DocServeError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DocServeError that wraps an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocServeError {
	return &DocServeError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks whether err (or anything it wraps) belongs to category.
func IsCategory(err error, category ErrorCategory) bool {
	var dse *DocServeError
	if errors.As(err, &dse) {
		return dse.Category == category
	}
	return false
}

// CategoryOf returns the category of err, or CategoryInternal for
// unclassified errors.
func CategoryOf(err error) ErrorCategory {
	var dse *DocServeError
	if errors.As(err, &dse) {
		return dse.Category
	}
	return CategoryInternal
}
