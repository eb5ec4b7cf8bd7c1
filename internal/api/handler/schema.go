package handler

import (
	"time"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=4,max=72"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=4,max=72"`
}

type tokenResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	Expiry    time.Time `json:"expiry"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toTokenResponse(t *domain.Token) tokenResponse {
	return tokenResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Token:     t.Token,
		Expiry:    t.Expiry,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

type messageResponse struct {
	Msg string `json:"msg"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

// --- Restaurant ---

// restaurantForm is bound from multipart/form-data; the logo travels as a file part.
type restaurantForm struct {
	Name        string `form:"name" validate:"required,max=255"`
	Email       string `form:"email" validate:"required,email,max=255"`
	Mobile      string `form:"mobile" validate:"required,max=32"`
	Address     string `form:"address" validate:"required"`
	OpeningTime string `form:"opening_time" validate:"required,max=16"`
	ClosingTime string `form:"closing_time" validate:"required,max=16"`
}

type restaurantResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	Address     string    `json:"address"`
	OpeningTime string    `json:"opening_time"`
	ClosingTime string    `json:"closing_time"`
	Logo        string    `json:"logo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toRestaurantResponse(r *domain.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Name:        r.Name,
		Email:       r.Email,
		Mobile:      r.Mobile,
		Address:     r.Address,
		OpeningTime: r.OpeningTime,
		ClosingTime: r.ClosingTime,
		Logo:        r.Logo,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// --- Items ---

// itemForm is the full replacement sent on update; presence of the
// non-string fields is checked against the raw form.
type itemForm struct {
	Name        string  `form:"name" validate:"required,max=255"`
	Description string  `form:"description"`
	Cost        float64 `form:"cost" validate:"gte=0"`
	Price       float64 `form:"price" validate:"gte=0"`
	IsActive    string  `form:"is_active" validate:"required,boolean"`
}

type createItemForm struct {
	RestaurantID int64   `form:"restaurant_id" validate:"required,gt=0"`
	Name         string  `form:"name" validate:"required,max=255"`
	Description  string  `form:"description"`
	Cost         float64 `form:"cost" validate:"gte=0"`
	Price        float64 `form:"price" validate:"gte=0"`
	// IsActive is kept as text so that an absent field can default to true.
	IsActive string `form:"is_active" validate:"omitempty,boolean"`
}

func (f createItemForm) item() itemForm {
	return itemForm{Name: f.Name, Description: f.Description, Cost: f.Cost, Price: f.Price, IsActive: f.IsActive}
}

type itemResponse struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Cost         float64   `json:"cost"`
	Price        float64   `json:"price"`
	IsActive     bool      `json:"is_active"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toItemResponse(it *domain.Item) itemResponse {
	return itemResponse{
		ID:           it.ID,
		RestaurantID: it.RestaurantID,
		Name:         it.Name,
		Description:  it.Description,
		Cost:         it.Cost,
		Price:        it.Price,
		IsActive:     it.IsActive,
		Image:        it.Image,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}

func toItemResponses(items []*domain.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}
