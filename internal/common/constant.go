package common

const (
	// AuthorizationHeaderName carries "Bearer <access token>" on protected routes.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName is echoed back on every response.
	RequestIDHeaderName = "X-Request-ID"
)
