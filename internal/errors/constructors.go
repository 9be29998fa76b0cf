package errors

// Convenience constructors for the common categories. All default to
// SeverityError; callers needing a different severity use New directly.

// ValidationError creates a validation-category error (maps to 400 / exit 2).
func ValidationError(message string) *DocServeError {
	return New(CategoryValidation, SeverityError, message)
}

// NotFoundError creates a not_found-category error (maps to 404).
func NotFoundError(message string) *DocServeError {
	return New(CategoryNotFound, SeverityError, message)
}

// ComposeError creates a compose-category error for cycle and broken-include
// failures (maps to 422).
func ComposeError(message string) *DocServeError {
	return New(CategoryCompose, SeverityError, message)
}

// ConfigError creates a config-category error.
func ConfigError(message string) *DocServeError {
	return New(CategoryConfig, SeverityError, message)
}

// InternalError creates an internal-category error.
func InternalError(message string) *DocServeError {
	return New(CategoryInternal, SeverityError, message)
}

// WrapFileSystem wraps a filesystem-level failure.
func WrapFileSystem(err error, message string) *DocServeError {
	return Wrap(err, CategoryFileSystem, SeverityError, message)
}
