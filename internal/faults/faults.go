// Package faults defines the error categories that may cross the service
// boundary. Internal errors are wrapped into one of these before they are
// surfaced to a caller, so handlers can map them to a response without
// inspecting package-specific error types.
package faults

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation")
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrAlreadyExists      = errors.New("already exists")
	ErrFailedPrecondition = errors.New("failed precondition")
)

// Validationf wraps a formatted message as a validation error.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// NotFoundf wraps a formatted message as a not-found error.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// PermissionDeniedf wraps a formatted message as a permission-denied error.
func PermissionDeniedf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrPermissionDenied}, args...)...)
}

// AlreadyExistsf wraps a formatted message as an already-exists error.
func AlreadyExistsf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrAlreadyExists}, args...)...)
}

// FailedPreconditionf wraps a formatted message as a failed-precondition error.
func FailedPreconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrFailedPrecondition}, args...)...)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsPermissionDenied reports whether err is a permission-denied error.
func IsPermissionDenied(err error) bool { return errors.Is(err, ErrPermissionDenied) }

// IsAlreadyExists reports whether err is an already-exists error.
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrAlreadyExists) }

// IsFailedPrecondition reports whether err is a failed-precondition error.
func IsFailedPrecondition(err error) bool { return errors.Is(err, ErrFailedPrecondition) }
