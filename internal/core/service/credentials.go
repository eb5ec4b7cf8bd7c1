package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/menuhub/restaurant-api/internal/core/domain"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

// CredentialStore owns password hashing and user lookup by email.
type CredentialStore struct {
	users ports.UserRepository
	cost  int
}

// NewCredentialStore binds a credential store to a user repository. A cost
// outside bcrypt's accepted range falls back to bcrypt.DefaultCost.
func NewCredentialStore(users ports.UserRepository, cost int) *CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{users: users, cost: cost}
}

// VerifyPassword reports whether candidate matches the user's stored hash.
func (s *CredentialStore) VerifyPassword(user *domain.User, candidate string) bool {
	if user == nil || user.HashedPassword == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(candidate)) == nil
}

// FindByEmail returns domain.ErrUserNotFound when no user has that address.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.users.FindByEmail(ctx, email)
}

// SavePassword replaces the stored hash of user with a hash of plaintext.
func (s *CredentialStore) SavePassword(ctx context.Context, user *domain.User, plaintext string) error {
	hash, err := s.hash(plaintext)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("save password: %w", err)
	}
	user.HashedPassword = hash
	return nil
}

// Register stores a new active user with a hashed password.
func (s *CredentialStore) Register(ctx context.Context, name, email, plaintext string, role domain.Role) (*domain.User, error) {
	hash, err := s.hash(plaintext)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.users.Create(ctx, &domain.User{
		Name:           name,
		Email:          domain.NormalizeEmail(email),
		HashedPassword: hash,
		Role:           role,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func (s *CredentialStore) hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", domain.ValidationError("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.ValidationError("password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
