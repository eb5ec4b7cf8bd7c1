package ports

import (
	"context"
	"io"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

// ImageUpload is an uploaded file handed from the transport layer.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// RestaurantInput is the full restaurant profile submitted by its owner.
type RestaurantInput struct {
	Name        string
	Email       string
	Mobile      string
	Address     string
	OpeningTime string
	ClosingTime string
	Logo        *ImageUpload // optional
}

// ItemInput carries the editable fields of a menu item.
type ItemInput struct {
	Name        string
	Description string
	Cost        float64
	Price       float64
	IsActive    bool
	Image       *ImageUpload // optional
}

// CreateItemInput adds the target restaurant to ItemInput.
type CreateItemInput struct {
	RestaurantID int64
	ItemInput
}

// RestaurantService manages the caller's restaurant profile.
type RestaurantService interface {
	Get(ctx context.Context, sess Session, owner domain.Principal) (*domain.Restaurant, error)
	Upsert(ctx context.Context, sess Session, owner domain.Principal, in RestaurantInput) (*domain.Restaurant, error)
}

// ItemService manages menu items. Writes are scoped to the caller's restaurant.
type ItemService interface {
	List(ctx context.Context, sess Session, restaurantID int64) ([]*domain.Item, error)
	Create(ctx context.Context, sess Session, owner domain.Principal, in CreateItemInput) (*domain.Item, error)
	Update(ctx context.Context, sess Session, owner domain.Principal, itemID int64, in ItemInput) (*domain.Item, error)
	Delete(ctx context.Context, sess Session, owner domain.Principal, itemID int64) error
	DeleteAll(ctx context.Context, sess Session, owner domain.Principal) (int64, error)
}

// ImageStore persists uploaded images and returns the stored path.
type ImageStore interface {
	Save(ctx context.Context, key, filename string, r io.Reader) (string, error)
	// Remove deletes an image previously returned by Save.
	Remove(ctx context.Context, path string) error
}
