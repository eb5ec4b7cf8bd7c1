package ports

import (
	"context"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

// LoginInput carries the credentials of a login attempt.
type LoginInput struct {
	Email    string
	Password string
	RemoteIP string
}

// RegisterInput carries the data needed to create a restaurant owner.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	RemoteIP string
}

// ChangePasswordInput carries a password change by the authenticated user.
type ChangePasswordInput struct {
	UserID   int64
	Current  string
	Next     string
	RemoteIP string
}

// AuthService covers token issuance and request authentication.
type AuthService interface {
	Login(ctx context.Context, sess Session, in LoginInput) (*LoginResult, error)
	Register(ctx context.Context, sess Session, in RegisterInput) (*domain.User, error)
	ChangePassword(ctx context.Context, sess Session, in ChangePasswordInput) error
	// Resolve maps a raw bearer credential to a principal. An empty raw value
	// yields domain.ErrUnauthorized; anything that does not resolve yields
	// domain.ErrInvalidToken.
	Resolve(ctx context.Context, sess Session, raw string) (*domain.Principal, error)
	// Bootstrap makes sure the administrator account exists.
	Bootstrap(ctx context.Context, sess Session) (*domain.User, error)
}

// LoginResult is the token handed out by a successful login. Reused is true
// when an unexpired token already existed and was returned unchanged.
type LoginResult struct {
	Token  *domain.Token
	Reused bool
}
