package ports

import (
	"context"
	"time"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

// LocationProvider resolves an IP address through a third-party service.
type LocationProvider interface {
	Lookup(ctx context.Context, ip string) (domain.Location, error)
}

// LocationCache stores provider answers keyed by IP.
type LocationCache interface {
	Get(ctx context.Context, ip string) (domain.Location, bool, error)
	Set(ctx context.Context, ip string, loc domain.Location, ttl time.Duration) error
}

// LocationService is the use case behind the geolocation endpoint.
type LocationService interface {
	Locate(ctx context.Context, ip string) (domain.Location, error)
}
