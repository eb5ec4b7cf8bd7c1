package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

var hexToken = regexp.MustCompile(`^[0-9a-f]{32}$`)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestGenerateToken_Format(t *testing.T) {
	a, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	b, _ := GenerateToken()
	if !hexToken.MatchString(a) {
		t.Fatalf("expected 32 hex chars, got %q", a)
	}
	if a == b {
		t.Fatalf("expected distinct tokens")
	}
}

func TestTokenStore_IssueOrReuse_NewToken(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	sess := newStubSession()
	store := NewTokenStore(sess.Tokens(), 0, clock.Now)

	tok, reused, err := store.IssueOrReuse(context.Background(), 7)
	if err != nil {
		t.Fatalf("IssueOrReuse returned error: %v", err)
	}
	if reused {
		t.Fatalf("expected a fresh token")
	}
	if tok.UserID != 7 {
		t.Fatalf("expected user 7, got %d", tok.UserID)
	}
	if !tok.Expiry.Equal(clock.t.Add(domain.DefaultTokenTTL)) {
		t.Fatalf("unexpected expiry %v", tok.Expiry)
	}
	if !hexToken.MatchString(tok.Token) {
		t.Fatalf("unexpected token format %q", tok.Token)
	}
}

func TestTokenStore_IssueOrReuse_ReturnsSameTokenWhileValid(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	sess := newStubSession()
	store := NewTokenStore(sess.Tokens(), time.Hour, clock.Now)
	ctx := context.Background()

	first, _, _ := store.IssueOrReuse(ctx, 1)
	clock.Advance(59 * time.Minute)
	second, reused, err := store.IssueOrReuse(ctx, 1)
	if err != nil {
		t.Fatalf("IssueOrReuse returned error: %v", err)
	}
	if !reused || second.Token != first.Token {
		t.Fatalf("expected reuse of %q, got %q (reused=%v)", first.Token, second.Token, reused)
	}
	if !second.Expiry.Equal(first.Expiry) {
		t.Fatalf("reuse must not extend expiry")
	}
	if len(sess.tokens.tokens) != 1 {
		t.Fatalf("expected one stored token, got %d", len(sess.tokens.tokens))
	}
}

func TestTokenStore_IssueOrReuse_NewTokenAfterExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	sess := newStubSession()
	store := NewTokenStore(sess.Tokens(), time.Hour, clock.Now)
	ctx := context.Background()

	first, _, _ := store.IssueOrReuse(ctx, 1)
	clock.Advance(time.Hour)
	second, reused, err := store.IssueOrReuse(ctx, 1)
	if err != nil {
		t.Fatalf("IssueOrReuse returned error: %v", err)
	}
	if reused || second.Token == first.Token {
		t.Fatalf("expected a new token after expiry")
	}
	if len(sess.tokens.tokens) != 2 {
		t.Fatalf("expired tokens are kept, expected 2 got %d", len(sess.tokens.tokens))
	}
}

func TestTokenStore_IssueOrReuse_CreateError(t *testing.T) {
	sess := newStubSession()
	sess.tokens.createErr = errors.New("db down")
	store := NewTokenStore(sess.Tokens(), time.Hour, nil)

	if _, _, err := store.IssueOrReuse(context.Background(), 1); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTokenStore_FindByTokenString_IgnoresExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	sess := newStubSession()
	store := NewTokenStore(sess.Tokens(), time.Minute, clock.Now)
	ctx := context.Background()

	tok, _, _ := store.IssueOrReuse(ctx, 3)
	clock.Advance(time.Hour)

	found, err := store.FindByTokenString(ctx, tok.Token)
	if err != nil {
		t.Fatalf("FindByTokenString returned error: %v", err)
	}
	if found.ID != tok.ID {
		t.Fatalf("unexpected token %+v", found)
	}
	if _, err := store.FindByTokenString(ctx, "nope"); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}
