package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

// LocationCache keeps geolocation answers per IP.
// Key format: geo:<ip>
type LocationCache struct {
	client redis.Cmdable
}

func NewLocationCache(client redis.Cmdable) *LocationCache {
	return &LocationCache{client: client}
}

func (c *LocationCache) Get(ctx context.Context, ip string) (domain.Location, bool, error) {
	raw, err := c.client.Get(ctx, locationKey(ip)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("location cache get: %w", err)
	}

	loc, err := decodeLocation(raw)
	if err != nil {
		return nil, false, err
	}
	return loc, true, nil
}

func (c *LocationCache) Set(ctx context.Context, ip string, loc domain.Location, ttl time.Duration) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("location cache encode: %w", err)
	}
	return c.client.Set(ctx, locationKey(ip), raw, ttl).Err()
}

func locationKey(ip string) string {
	return "geo:" + ip
}

func decodeLocation(raw []byte) (domain.Location, error) {
	var loc domain.Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil, fmt.Errorf("location cache decode: %w", err)
	}
	return loc, nil
}
