// Package auth mints and verifies the signed session tokens handed out by the
// login and refresh endpoints.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/escc-report-api/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the claim set shared by access and refresh tokens.
// Among the registered claims only jti, iat and exp are set.
type Claims struct {
	jwt.RegisteredClaims
	UserID          int    `json:"userId"`
	Username        string `json:"username"`
	UserWorkEmail   string `json:"userWorkEmail"`
	SourceIPAddress string `json:"sourceIPAddress"`
}

// Identity returns a copy of c without registered claims.
func (c *Claims) Identity() Claims {
	return Claims{
		UserID:          c.UserID,
		Username:        c.Username,
		UserWorkEmail:   c.UserWorkEmail,
		SourceIPAddress: c.SourceIPAddress,
	}
}

// GenerateToken signs claims with HS256 and sets the expiry to now+validity.
// Every call gets a fresh token id, so two tokens minted within the same
// second still differ.
func GenerateToken(claims Claims, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString against secretKey. Expired tokens yield
// common.ErrTokenExpired, every other failure common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
