package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/menuhub/restaurant-api/internal/core/domain"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

// tokenBytes is the amount of randomness in a bearer token (128 bits).
const tokenBytes = 16

// TokenStore issues and looks up opaque bearer tokens.
type TokenStore struct {
	tokens   ports.TokenRepository
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)
}

// NewTokenStore binds a token store to a repository. A nil clock means
// time.Now; a non-positive ttl means domain.DefaultTokenTTL.
func NewTokenStore(tokens ports.TokenRepository, ttl time.Duration, now func() time.Time) *TokenStore {
	if ttl <= 0 {
		ttl = domain.DefaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &TokenStore{tokens: tokens, ttl: ttl, now: now, generate: GenerateToken}
}

// IssueOrReuse returns the user's unexpired token unchanged if there is one and
// mints a new token otherwise. The boolean is true on reuse.
//
// The lookup and the insert are not atomic: two concurrent logins may both
// mint a token. Each call still returns exactly one valid token.
func (s *TokenStore) IssueOrReuse(ctx context.Context, userID int64) (*domain.Token, bool, error) {
	now := s.now().UTC()

	existing, err := s.tokens.FindActiveByUser(ctx, userID, now)
	switch {
	case err == nil:
		return existing, true, nil
	case !errors.Is(err, domain.ErrTokenNotFound):
		return nil, false, fmt.Errorf("find active token: %w", err)
	}

	raw, err := s.generate()
	if err != nil {
		return nil, false, fmt.Errorf("generate token: %w", err)
	}

	created, err := s.tokens.Create(ctx, &domain.Token{
		UserID:    userID,
		Token:     raw,
		Expiry:    now.Add(s.ttl),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create token: %w", err)
	}
	return created, false, nil
}

// FindByTokenString looks a token up by exact value. Expiry is not checked.
func (s *TokenStore) FindByTokenString(ctx context.Context, raw string) (*domain.Token, error) {
	return s.tokens.FindByToken(ctx, raw)
}

// GenerateToken returns 128 random bits, hex-encoded.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
