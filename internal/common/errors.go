// Package common defines shared constants and sentinel errors used across
// the server, the CLI and the HTTP layer. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
