package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrCredentialMismatch = errors.New("credential mismatch")
	ErrAccountRestricted  = errors.New("account restricted")
	ErrAccessDenied       = errors.New("access denied")
)

// CodeCredentialMismatch is reported with a wrong password.
const CodeCredentialMismatch = -14004

// LoginError is a rejected login. Message, LoginAttempts and ErrorCode are
// safe to show to the caller; Kind tells which of the sentinel errors above
// it represents.
type LoginError struct {
	Kind          error
	Message       string
	LoginAttempts int
	ErrorCode     int
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("%v: %s (code %d)", e.Kind, e.Message, e.ErrorCode)
}

func (e *LoginError) Unwrap() error {
	return e.Kind
}

// ValidationError is a request rejected before any store call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
