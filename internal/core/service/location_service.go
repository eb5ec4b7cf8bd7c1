package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/menuhub/restaurant-api/internal/core/domain"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

// LocationService answers geolocation lookups, consulting the cache first.
// The cache is optional; its failures never fail a lookup.
type LocationService struct {
	provider ports.LocationProvider
	cache    ports.LocationCache
	ttl      time.Duration
	logger   zerolog.Logger
}

func NewLocationService(provider ports.LocationProvider, cache ports.LocationCache, ttl time.Duration, logger zerolog.Logger) *LocationService {
	return &LocationService{provider: provider, cache: cache, ttl: ttl, logger: logger}
}

func (s *LocationService) Locate(ctx context.Context, ip string) (domain.Location, error) {
	if s.cache != nil && ip != "" {
		loc, ok, err := s.cache.Get(ctx, ip)
		if err != nil {
			s.logger.Warn().Err(err).Msg("location cache read failed")
		} else if ok {
			return loc, nil
		}
	}

	loc, err := s.provider.Lookup(ctx, ip)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}

	if s.cache != nil && ip != "" && s.ttl > 0 {
		if err := s.cache.Set(ctx, ip, loc, s.ttl); err != nil {
			s.logger.Warn().Err(err).Msg("location cache write failed")
		}
	}
	return loc, nil
}
