package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx answer from the server. LoginAttempts and
// ErrorCode are only filled in by /login.
type APIError struct {
	Status        int    `json:"-"`
	Message       string `json:"message"`
	LoginAttempts int    `json:"loginAttempts"`
	ErrorCode     int    `json:"errorCode"`
}

func (e *APIError) Error() string {
	if e.ErrorCode != 0 {
		return fmt.Sprintf("%d: %s (code %d, attempts %d)", e.Status, e.Message, e.ErrorCode, e.LoginAttempts)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Unwrap lets callers match 401 and 403 answers with ErrUnauthorized.
func (e *APIError) Unwrap() error {
	if e.Status == 401 || e.Status == 403 {
		return ErrUnauthorized
	}
	return nil
}
