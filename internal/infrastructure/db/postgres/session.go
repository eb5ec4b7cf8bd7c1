package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/menuhub/restaurant-api/internal/core/ports"
)

// DBTX is the subset of database/sql used by the repositories. *sql.DB,
// *sql.Conn and *sql.Tx all satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Factory checks out one pooled connection per session.
type Factory struct {
	db *sql.DB
}

func NewFactory(db *sql.DB) *Factory {
	return &Factory{db: db}
}

func (f *Factory) Open(ctx context.Context) (ports.Session, error) {
	conn, err := f.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("checkout connection: %w", err)
	}
	return newSession(conn, conn.Close), nil
}

func (f *Factory) Ping(ctx context.Context) error {
	return f.db.PingContext(ctx)
}

type session struct {
	users       *UserRepository
	tokens      *TokenRepository
	restaurants *RestaurantRepository
	items       *ItemRepository
	close       func() error
}

func newSession(db DBTX, closeFn func() error) *session {
	return &session{
		users:       NewUserRepository(db),
		tokens:      NewTokenRepository(db),
		restaurants: NewRestaurantRepository(db),
		items:       NewItemRepository(db),
		close:       closeFn,
	}
}

func (s *session) Users() ports.UserRepository             { return s.users }
func (s *session) Tokens() ports.TokenRepository           { return s.tokens }
func (s *session) Restaurants() ports.RestaurantRepository { return s.restaurants }
func (s *session) Items() ports.ItemRepository             { return s.items }

func (s *session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
