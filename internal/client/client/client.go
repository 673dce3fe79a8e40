// Package client talks to the report API over HTTP on behalf of the CLI.
package client

import "context"

// User mirrors the profile the server returns on login.
type User struct {
	UserID        int    `json:"userId"`
	Username      string `json:"username"`
	UserWorkEmail string `json:"userWorkEmail"`
	LoginAttempts int    `json:"loginAttempts"`
}

// Session is a token pair, plus the profile when it came from a login.
type Session struct {
	Message      string `json:"message"`
	User         *User  `json:"user,omitempty"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type Client interface {
	Login(ctx context.Context, username string, password []byte) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	Ping(ctx context.Context) error
}
