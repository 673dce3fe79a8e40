package models

// LoginValidation is what validate-login reports about a username.
type LoginValidation struct {
	ErrorCode       int
	EncodedPassword []byte
	LoginAttempts   int
	UserWorkEmail   string
}

// FailedAttempt is the audit entry written when a password does not match.
type FailedAttempt struct {
	Username   string
	IPAddress  string
	Comments   string
	AccessCode string
}

// User is the profile returned to a client after a successful login.
type User struct {
	UserID        int    `json:"userId"`
	Username      string `json:"username"`
	UserWorkEmail string `json:"userWorkEmail"`
	LoginAttempts int    `json:"loginAttempts"`
}
