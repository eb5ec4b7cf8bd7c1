package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

type ItemRepository struct {
	db DBTX
}

func NewItemRepository(db DBTX) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, restaurant_id, name, image, description, cost, price, is_active, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*domain.Item, error) {
	it := &domain.Item{}
	err := row.Scan(&it.ID, &it.RestaurantID, &it.Name, &it.Image, &it.Description,
		&it.Cost, &it.Price, &it.IsActive, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

func (r *ItemRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE restaurant_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	it, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return it, nil
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	query :=
		`INSERT INTO items (restaurant_id, name, image, description, cost, price, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		item.RestaurantID, item.Name, item.Image, item.Description, item.Cost, item.Price, item.IsActive, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	query :=
		`UPDATE items
		 SET name = $1, image = $2, description = $3, cost = $4, price = $5, is_active = $6, updated_at = $7
		 WHERE id = $8`

	res, err := r.db.ExecContext(ctx, query,
		item.Name, item.Image, item.Description, item.Cost, item.Price, item.IsActive, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	} else if n == 0 {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("db error: %w", err)
	} else if n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) DeleteByRestaurant(ctx context.Context, restaurantID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE restaurant_id = $1`, restaurantID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
