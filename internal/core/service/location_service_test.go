package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

type stubProvider struct {
	calls int
	loc   domain.Location
	err   error
}

func (p *stubProvider) Lookup(_ context.Context, _ string) (domain.Location, error) {
	p.calls++
	return p.loc, p.err
}

type stubLocationCache struct {
	data   map[string]domain.Location
	getErr error
	setErr error
}

func (c *stubLocationCache) Get(_ context.Context, ip string) (domain.Location, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	loc, ok := c.data[ip]
	return loc, ok, nil
}

func (c *stubLocationCache) Set(_ context.Context, ip string, loc domain.Location, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	if c.data == nil {
		c.data = make(map[string]domain.Location)
	}
	c.data[ip] = loc
	return nil
}

func TestLocationService_CachesProviderAnswer(t *testing.T) {
	provider := &stubProvider{loc: domain.Location{"status": "success", "country": "Chile"}}
	cache := &stubLocationCache{}
	svc := NewLocationService(provider, cache, time.Hour, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		loc, err := svc.Locate(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("Locate returned error: %v", err)
		}
		if loc["country"] != "Chile" {
			t.Fatalf("unexpected location %v", loc)
		}
	}
	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}
}

func TestLocationService_ProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("timeout")}
	svc := NewLocationService(provider, nil, time.Hour, zerolog.Nop())

	if _, err := svc.Locate(context.Background(), "1.2.3.4"); !errors.Is(err, domain.ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
}

func TestLocationService_CacheFailureIsNonFatal(t *testing.T) {
	provider := &stubProvider{loc: domain.Location{"status": "success"}}
	cache := &stubLocationCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	svc := NewLocationService(provider, cache, time.Hour, zerolog.Nop())

	if _, err := svc.Locate(context.Background(), "1.2.3.4"); err != nil {
		t.Fatalf("expected lookup to succeed despite cache errors, got %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("expected provider to be called, got %d", provider.calls)
	}
}
