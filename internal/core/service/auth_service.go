package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/menuhub/restaurant-api/internal/core/domain"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

// AuthConfig holds the knobs of the authentication core.
type AuthConfig struct {
	TokenTTL time.Duration
	// EnforceExpiry rejects tokens past their expiry at verification time.
	// When false an expired token keeps authorizing requests.
	EnforceExpiry bool
	BcryptCost    int

	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// AuthService implements login, registration and request authentication.
type AuthService struct {
	cfg   AuthConfig
	audit ports.AuditRecorder
	log   zerolog.Logger
	now   func() time.Time
}

func NewAuthService(cfg AuthConfig, audit ports.AuditRecorder, log zerolog.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = domain.DefaultTokenTTL
	}
	if audit == nil {
		audit = nopRecorder{}
	}
	return &AuthService{cfg: cfg, audit: audit, log: log, now: time.Now}
}

func (s *AuthService) credentials(sess ports.Session) *CredentialStore {
	return NewCredentialStore(sess.Users(), s.cfg.BcryptCost)
}

func (s *AuthService) tokens(sess ports.Session) *TokenStore {
	return NewTokenStore(sess.Tokens(), s.cfg.TokenTTL, s.now)
}

func (s *AuthService) Login(ctx context.Context, sess ports.Session, in ports.LoginInput) (*ports.LoginResult, error) {
	creds := s.credentials(sess)

	if in.Email == "" || in.Password == "" {
		s.record(domain.EventLoginFailed, 0, in.Email, 0, in.RemoteIP)
		return nil, domain.ErrInvalidCredentials
	}

	user, err := creds.FindByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		s.record(domain.EventLoginFailed, 0, in.Email, 0, in.RemoteIP)
		return nil, domain.ErrInvalidCredentials
	}

	if !creds.VerifyPassword(user, in.Password) {
		s.record(domain.EventLoginFailed, user.ID, user.Email, 0, in.RemoteIP)
		return nil, domain.ErrInvalidCredentials
	}

	token, reused, err := s.tokens(sess).IssueOrReuse(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.record(domain.EventLoginSucceeded, user.ID, user.Email, token.ID, in.RemoteIP)
	if reused {
		s.record(domain.EventTokenReused, user.ID, user.Email, token.ID, in.RemoteIP)
	} else {
		s.record(domain.EventTokenIssued, user.ID, user.Email, token.ID, in.RemoteIP)
	}

	s.log.Debug().Int64("user_id", user.ID).Bool("reused", reused).Msg("login succeeded")
	return &ports.LoginResult{Token: token, Reused: reused}, nil
}

func (s *AuthService) Register(ctx context.Context, sess ports.Session, in ports.RegisterInput) (*domain.User, error) {
	if in.Name == "" || domain.NormalizeEmail(in.Email) == "" || in.Password == "" {
		return nil, domain.ValidationError("name, email and password are required")
	}

	user, err := s.credentials(sess).Register(ctx, in.Name, in.Email, in.Password, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}

	s.record(domain.EventUserRegistered, user.ID, user.Email, 0, in.RemoteIP)
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, sess ports.Session, in ports.ChangePasswordInput) error {
	if in.Next == "" {
		return domain.ValidationError("new password is required")
	}

	user, err := sess.Users().FindByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	creds := s.credentials(sess)
	if !creds.VerifyPassword(user, in.Current) {
		return domain.ErrInvalidCredentials
	}
	if err := creds.SavePassword(ctx, user, in.Next); err != nil {
		return err
	}

	s.record(domain.EventPasswordChanged, user.ID, user.Email, 0, in.RemoteIP)
	return nil
}

// Resolve runs the token lookup and then loads the owner by id.
func (s *AuthService) Resolve(ctx context.Context, sess ports.Session, raw string) (*domain.Principal, error) {
	if raw == "" {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.tokens(sess).FindByTokenString(ctx, raw)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	if s.cfg.EnforceExpiry && token.ExpiredAt(s.now().UTC()) {
		return nil, domain.ErrInvalidToken
	}

	user, err := sess.Users().FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("find token owner: %w", err)
	}

	principal := domain.NewPrincipal(user)
	return &principal, nil
}

// Bootstrap creates the configured administrator unless a user with that
// email already exists. Calling it repeatedly is safe.
func (s *AuthService) Bootstrap(ctx context.Context, sess ports.Session) (*domain.User, error) {
	creds := s.credentials(sess)

	user, err := creds.FindByEmail(ctx, s.cfg.AdminEmail)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	user, err = creds.Register(ctx, s.cfg.AdminName, s.cfg.AdminEmail, s.cfg.AdminPassword, domain.RoleAdmin)
	if errors.Is(err, domain.ErrUserExists) {
		// lost a race with a concurrent bootstrap
		return creds.FindByEmail(ctx, s.cfg.AdminEmail)
	}
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("admin user created")
	return user, nil
}

func (s *AuthService) record(kind domain.AuthEventKind, userID int64, email string, tokenID int64, ip string) {
	s.audit.Record(domain.AuthEvent{
		Kind:       kind,
		UserID:     userID,
		Email:      email,
		TokenID:    tokenID,
		RemoteIP:   ip,
		OccurredAt: s.now().UTC(),
	})
}

type nopRecorder struct{}

func (nopRecorder) Record(domain.AuthEvent) {}
