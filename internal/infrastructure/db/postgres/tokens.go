package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

type TokenRepository struct {
	db DBTX
}

func NewTokenRepository(db DBTX) *TokenRepository {
	return &TokenRepository{db: db}
}

const tokenColumns = `id, user_id, token, expiry, created_at, updated_at`

func scanToken(row *sql.Row) (*domain.Token, error) {
	t := &domain.Token{}
	err := row.Scan(&t.ID, &t.UserID, &t.Token, &t.Expiry, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// FindActiveByUser picks the token with the latest expiry when several are
// still valid.
func (r *TokenRepository) FindActiveByUser(ctx context.Context, userID int64, now time.Time) (*domain.Token, error) {
	query := `SELECT ` + tokenColumns + ` FROM tokens
		WHERE user_id = $1 AND expiry > $2
		ORDER BY expiry DESC
		LIMIT 1`

	return scanToken(r.db.QueryRowContext(ctx, query, userID, now))
}

func (r *TokenRepository) FindByToken(ctx context.Context, raw string) (*domain.Token, error) {
	query := `SELECT ` + tokenColumns + ` FROM tokens WHERE token = $1`

	return scanToken(r.db.QueryRowContext(ctx, query, raw))
}

func (r *TokenRepository) Create(ctx context.Context, token *domain.Token) (*domain.Token, error) {
	query :=
		`INSERT INTO tokens (user_id, token, expiry, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		token.UserID, token.Token, token.Expiry, token.CreatedAt, token.UpdatedAt,
	).Scan(&token.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}
