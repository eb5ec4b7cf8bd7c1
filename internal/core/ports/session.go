package ports

import "context"

// Session is a request-scoped handle on the relational store. It is opened at
// request start and closed when the request ends; repositories obtained from it
// share the same underlying connection.
type Session interface {
	Users() UserRepository
	Tokens() TokenRepository
	Restaurants() RestaurantRepository
	Items() ItemRepository
	Close() error
}

// SessionFactory opens request-scoped sessions.
type SessionFactory interface {
	Open(ctx context.Context) (Session, error)
	Ping(ctx context.Context) error
}
