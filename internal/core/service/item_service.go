package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/menuhub/restaurant-api/internal/core/domain"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

type ItemService struct {
	images ports.ImageStore
	logger zerolog.Logger
}

func NewItemService(images ports.ImageStore, logger zerolog.Logger) *ItemService {
	return &ItemService{images: images, logger: logger}
}

func (s *ItemService) List(ctx context.Context, sess ports.Session, restaurantID int64) ([]*domain.Item, error) {
	if _, err := sess.Restaurants().FindByID(ctx, restaurantID); err != nil {
		return nil, err
	}
	return sess.Items().ListByRestaurant(ctx, restaurantID)
}

func (s *ItemService) Create(ctx context.Context, sess ports.Session, owner domain.Principal, in ports.CreateItemInput) (*domain.Item, error) {
	if err := validateItem(in.ItemInput); err != nil {
		return nil, err
	}
	if _, err := s.ownedRestaurant(ctx, sess, owner, in.RestaurantID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &domain.Item{
		RestaurantID: in.RestaurantID,
		Image:        domain.DefaultImagePath,
		CreatedAt:    now,
	}
	if err := s.apply(ctx, item, in.ItemInput, now); err != nil {
		return nil, err
	}

	created, err := sess.Items().Create(ctx, item)
	if err != nil {
		if in.Image != nil {
			discardImage(ctx, s.images, s.logger, item.Image)
		}
		return nil, fmt.Errorf("create item: %w", err)
	}
	s.logger.Info().Int64("item_id", created.ID).Int64("restaurant_id", created.RestaurantID).Msg("item created")
	return created, nil
}

func (s *ItemService) Update(ctx context.Context, sess ports.Session, owner domain.Principal, itemID int64, in ports.ItemInput) (*domain.Item, error) {
	if err := validateItem(in); err != nil {
		return nil, err
	}

	item, err := s.ownedItem(ctx, sess, owner, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, item, in, time.Now().UTC()); err != nil {
		return nil, err
	}

	updated, err := sess.Items().Update(ctx, item)
	if err != nil {
		if in.Image != nil {
			discardImage(ctx, s.images, s.logger, item.Image)
		}
		return nil, fmt.Errorf("update item: %w", err)
	}
	return updated, nil
}

func (s *ItemService) Delete(ctx context.Context, sess ports.Session, owner domain.Principal, itemID int64) error {
	if _, err := s.ownedItem(ctx, sess, owner, itemID); err != nil {
		return err
	}
	return sess.Items().Delete(ctx, itemID)
}

// DeleteAll removes every item of the owner's restaurant. An owner without a
// restaurant has nothing to delete.
func (s *ItemService) DeleteAll(ctx context.Context, sess ports.Session, owner domain.Principal) (int64, error) {
	r, err := sess.Restaurants().FindByUser(ctx, owner.ID)
	if errors.Is(err, domain.ErrRestaurantNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	n, err := sess.Items().DeleteByRestaurant(ctx, r.ID)
	if err != nil {
		return 0, fmt.Errorf("delete items: %w", err)
	}
	s.logger.Info().Int64("restaurant_id", r.ID).Int64("deleted", n).Msg("items deleted")
	return n, nil
}

// ownedRestaurant hides restaurants of other owners behind ErrRestaurantNotFound.
func (s *ItemService) ownedRestaurant(ctx context.Context, sess ports.Session, owner domain.Principal, restaurantID int64) (*domain.Restaurant, error) {
	r, err := sess.Restaurants().FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r.UserID != owner.ID {
		return nil, domain.ErrRestaurantNotFound
	}
	return r, nil
}

func (s *ItemService) ownedItem(ctx context.Context, sess ports.Session, owner domain.Principal, itemID int64) (*domain.Item, error) {
	item, err := sess.Items().FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedRestaurant(ctx, sess, owner, item.RestaurantID); err != nil {
		if errors.Is(err, domain.ErrRestaurantNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *ItemService) apply(ctx context.Context, item *domain.Item, in ports.ItemInput, now time.Time) error {
	item.Name = in.Name
	item.Description = in.Description
	item.Cost = roundCents(in.Cost)
	item.Price = roundCents(in.Price)
	item.IsActive = in.IsActive
	item.UpdatedAt = now

	if in.Image != nil {
		path, err := s.images.Save(ctx, itemImageKey, in.Image.Filename, in.Image.Content)
		if err != nil {
			return fmt.Errorf("save item image: %w", err)
		}
		item.Image = path
	}
	return nil
}

// maxAmount is the largest value a numeric(10,2) column holds.
const maxAmount = 99999999.99

func validateItem(in ports.ItemInput) error {
	if in.Name == "" {
		return domain.ValidationError("name is required")
	}
	if in.Cost < 0 || in.Cost > maxAmount {
		return domain.ValidationError("cost must be between 0 and %.2f", maxAmount)
	}
	if in.Price < 0 || in.Price > maxAmount {
		return domain.ValidationError("price must be between 0 and %.2f", maxAmount)
	}
	return nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
