package ports

import (
	"context"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

// RestaurantRepository persists restaurant profiles.
type RestaurantRepository interface {
	FindByUser(ctx context.Context, userID int64) (*domain.Restaurant, error)
	FindByID(ctx context.Context, id int64) (*domain.Restaurant, error)
	// Upsert creates the user's restaurant or overwrites its profile fields.
	Upsert(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error)
}

// ItemRepository persists menu items.
type ItemRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]*domain.Item, error)
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
	DeleteByRestaurant(ctx context.Context, restaurantID int64) (int64, error)
}
