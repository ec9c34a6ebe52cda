package models

import (
	"errors"
	"fmt"
)

// AppError is the application error type. Code distinguishes the error
// classes the sync engine reacts to: uniqueness conflicts are retried with
// a new candidate or treated as "already exists", not-found is a soft
// condition on secondary lookups, and store errors are surfaced as
// retryable.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error codes used across the module.
const (
	CodeConflict   = "CONFLICT"
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeStore      = "STORE_ERROR"
)

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewConflictError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Err:     err,
	}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewStoreError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeStore,
		Message: message,
		Err:     err,
	}
}

// IsConflict reports whether err is a uniqueness-conflict error.
func IsConflict(err error) bool {
	return hasCode(err, CodeConflict)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

func hasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
