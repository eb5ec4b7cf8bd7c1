package domain

import (
	"errors"
	"time"
)

// DefaultTokenTTL is the validity window of a freshly minted token.
const DefaultTokenTTL = 14 * 24 * time.Hour

var (
	// ErrUnauthorized means no credential was presented.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidToken means a credential was presented but does not resolve.
	ErrInvalidToken = errors.New("invalid token")

	ErrTokenNotFound = errors.New("token not found")
)

// Token is an opaque bearer credential bound to a user.
type Token struct {
	ID        int64
	UserID    int64
	Token     string
	Expiry    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpiredAt reports whether the token is no longer valid at now.
func (t *Token) ExpiredAt(now time.Time) bool {
	return !t.Expiry.After(now)
}
