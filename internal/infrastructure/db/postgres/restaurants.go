package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

type RestaurantRepository struct {
	db DBTX
}

func NewRestaurantRepository(db DBTX) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

const restaurantColumns = `id, user_id, name, email, mobile, address, opening_time, closing_time, logo, created_at, updated_at`

func scanRestaurant(row *sql.Row) (*domain.Restaurant, error) {
	x := &domain.Restaurant{}
	err := row.Scan(&x.ID, &x.UserID, &x.Name, &x.Email, &x.Mobile, &x.Address,
		&x.OpeningTime, &x.ClosingTime, &x.Logo, &x.CreatedAt, &x.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return x, nil
}

func (r *RestaurantRepository) FindByUser(ctx context.Context, userID int64) (*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE user_id = $1`
	return scanRestaurant(r.db.QueryRowContext(ctx, query, userID))
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	return scanRestaurant(r.db.QueryRowContext(ctx, query, id))
}

// Upsert keys on user_id; created_at of an existing row is preserved.
func (r *RestaurantRepository) Upsert(ctx context.Context, x *domain.Restaurant) (*domain.Restaurant, error) {
	query :=
		`INSERT INTO restaurants (user_id, name, email, mobile, address, opening_time, closing_time, logo, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (user_id) DO UPDATE SET
		     name = EXCLUDED.name,
		     email = EXCLUDED.email,
		     mobile = EXCLUDED.mobile,
		     address = EXCLUDED.address,
		     opening_time = EXCLUDED.opening_time,
		     closing_time = EXCLUDED.closing_time,
		     logo = EXCLUDED.logo,
		     updated_at = EXCLUDED.updated_at
		 RETURNING ` + restaurantColumns

	return scanRestaurant(r.db.QueryRowContext(ctx, query,
		x.UserID, x.Name, x.Email, x.Mobile, x.Address, x.OpeningTime, x.ClosingTime, x.Logo, x.CreatedAt, x.UpdatedAt,
	))
}
