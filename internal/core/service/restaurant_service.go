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

const (
	logoImageKey = "logo"
	itemImageKey = "image"
)

// discardImage removes an upload whose owning row was never written.
func discardImage(ctx context.Context, images ports.ImageStore, logger zerolog.Logger, path string) {
	if path == "" || path == domain.DefaultImagePath {
		return
	}
	if err := images.Remove(ctx, path); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("orphaned image not removed")
	}
}

type RestaurantService struct {
	images ports.ImageStore
	logger zerolog.Logger
}

func NewRestaurantService(images ports.ImageStore, logger zerolog.Logger) *RestaurantService {
	return &RestaurantService{images: images, logger: logger}
}

func (s *RestaurantService) Get(ctx context.Context, sess ports.Session, owner domain.Principal) (*domain.Restaurant, error) {
	return sess.Restaurants().FindByUser(ctx, owner.ID)
}

// Upsert creates the owner's restaurant on first call and overwrites the
// profile afterwards. Without an uploaded logo the current one is kept.
func (s *RestaurantService) Upsert(ctx context.Context, sess ports.Session, owner domain.Principal, in ports.RestaurantInput) (*domain.Restaurant, error) {
	if in.Name == "" {
		return nil, domain.ValidationError("name is required")
	}

	repo := sess.Restaurants()
	now := time.Now().UTC()

	r, err := repo.FindByUser(ctx, owner.ID)
	switch {
	case errors.Is(err, domain.ErrRestaurantNotFound):
		r = &domain.Restaurant{UserID: owner.ID, Logo: domain.DefaultImagePath, CreatedAt: now}
	case err != nil:
		return nil, fmt.Errorf("find restaurant: %w", err)
	}

	r.Name = in.Name
	r.Email = in.Email
	r.Mobile = in.Mobile
	r.Address = in.Address
	r.OpeningTime = in.OpeningTime
	r.ClosingTime = in.ClosingTime
	r.UpdatedAt = now

	if in.Logo != nil {
		path, err := s.images.Save(ctx, logoImageKey, in.Logo.Filename, in.Logo.Content)
		if err != nil {
			return nil, fmt.Errorf("save logo: %w", err)
		}
		r.Logo = path
	}

	saved, err := repo.Upsert(ctx, r)
	if err != nil {
		if in.Logo != nil {
			discardImage(ctx, s.images, s.logger, r.Logo)
		}
		return nil, fmt.Errorf("upsert restaurant: %w", err)
	}
	s.logger.Info().Int64("restaurant_id", saved.ID).Int64("user_id", owner.ID).Msg("restaurant saved")
	return saved, nil
}
