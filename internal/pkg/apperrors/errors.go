package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Ingestion errors
var (
	// ErrSchemaMismatch is returned when a batch carries a value the
	// already-fixed table shape cannot accept (e.g. text into a numeric
	// column). The whole batch is rolled back.
	ErrSchemaMismatch = errors.New("row values incompatible with the existing table schema")
	// ErrResultTableMissing is returned when a year has no result table yet.
	ErrResultTableMissing = errors.New("no results uploaded for this year yet")
	// ErrStoreFailure wraps connectivity or corruption errors at the
	// database boundary. Never retried; fatal for the request.
	ErrStoreFailure = errors.New("store failure")
)

// Student / admin errors
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrAdminNotFound   = errors.New("admin not found")
	ErrResultNotFound  = errors.New("result record not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a user-visible validation error. Validation
// precedes side effects, so these never leave partial state.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewSchemaMismatchError wraps the underlying store cause so the message
// shown to the administrator includes why the batch was rejected.
func NewSchemaMismatchError(message string) error {
	return &CustomError{Err: ErrSchemaMismatch, Message: message}
}

// NewNotFoundError creates a recoverable not-found error with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}
