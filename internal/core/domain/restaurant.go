package domain

import (
	"errors"
	"time"
)

// DefaultImagePath is stored when no logo or item image was uploaded.
const DefaultImagePath = "media/default.png"

var ErrRestaurantNotFound = errors.New("restaurant not found")

// Restaurant is the single profile owned by a user.
type Restaurant struct {
	ID          int64
	UserID      int64
	Name        string
	Email       string
	Mobile      string
	Address     string
	OpeningTime string
	ClosingTime string
	Logo        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
