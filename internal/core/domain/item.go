package domain

import (
	"errors"
	"time"
)

var ErrItemNotFound = errors.New("item not found")

// Item is a menu entry of a restaurant. Cost and Price are kept with two
// decimal places by the storage layer.
type Item struct {
	ID           int64
	RestaurantID int64
	Name         string
	Image        string
	Description  string
	Cost         float64
	Price        float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
