// Package errors defines the application error taxonomy surfaced to callers.
package errors

import (
	"net/http"

	"loyaltysync/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Predefined error types
var (
	// ErrValidation covers missing or malformed caller input. It is detected
	// before any store mutation and is not retryable.
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"request validation failed",
		"",
	)

	// ErrNotFound covers identifiers that do not resolve to a known resource.
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	// ErrAccountNotFound is returned when neither identifier resolves to a
	// known loyalty account.
	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"loyalty account not found",
		"",
	)

	// ErrSessionNotFound is returned when a sync token does not resolve.
	ErrSessionNotFound = NewBaseError(
		http.StatusNotFound,
		"SESSION_NOT_FOUND",
		"sync session not found",
		"",
	)

	// ErrSessionNotUsable is returned when a session can no longer complete a
	// handshake: it expired or was already consumed.
	ErrSessionNotUsable = NewBaseError(
		http.StatusConflict,
		"SESSION_NOT_USABLE",
		"sync session is not usable for linking",
		"",
	)

	// ErrStoreTimeout is surfaced distinctly from storage failures: the store
	// call exceeded its bound and the caller may safely retry.
	ErrStoreTimeout = NewBaseError(
		http.StatusGatewayTimeout,
		"STORE_TIMEOUT",
		"store operation timed out",
		"",
	)

	// ErrUnauthorized is returned by the API-key middleware.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"missing or invalid API key",
		"",
	)

	// ErrInternal is the fallback for unclassified failures.
	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// StoreExecuteError represents an underlying store failure. The caller sees an
// opaque category; the details string is for operator diagnosis and must not
// expose internal schema.
type StoreExecuteError struct {
	err     error
	details string
}

// NewStoreExecuteError creates a store-related error
func NewStoreExecuteError(err error, details string) AppError {
	return &StoreExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StoreExecuteError) Error() string {
	return errors.Wrap(e.err, "store execution failed").Error()
}

// Unwrap exposes the underlying store error for errors.Is / errors.As.
func (e *StoreExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *StoreExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *StoreExecuteError) ErrorCode() string {
	return "STORAGE_FAILED"
}

// Message returns the user-friendly error message
func (e *StoreExecuteError) Message() string {
	return "storage operation failed"
}

// Details returns detailed error information
func (e *StoreExecuteError) Details() string {
	return e.details
}
