package ports

import (
	"context"
	"time"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

// UserRepository persists users. Email lookups are case-insensitive.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
}

// TokenRepository persists bearer tokens.
type TokenRepository interface {
	// FindActiveByUser returns a token of userID whose expiry is after now,
	// or domain.ErrTokenNotFound.
	FindActiveByUser(ctx context.Context, userID int64, now time.Time) (*domain.Token, error)
	// FindByToken is an exact-match lookup that ignores expiry.
	FindByToken(ctx context.Context, raw string) (*domain.Token, error)
	Create(ctx context.Context, token *domain.Token) (*domain.Token, error)
}
