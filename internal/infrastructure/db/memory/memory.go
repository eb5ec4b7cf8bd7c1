// Package memory is a process-local implementation of the relational store
// used for development and tests. All sessions share one dataset.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/menuhub/restaurant-api/internal/core/domain"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

// Store holds every table behind a single mutex.
type Store struct {
	mu          sync.RWMutex
	users       map[int64]domain.User
	tokens      map[int64]domain.Token
	restaurants map[int64]domain.Restaurant
	items       map[int64]domain.Item
	seq         int64
}

func NewStore() *Store {
	return &Store{
		users:       make(map[int64]domain.User),
		tokens:      make(map[int64]domain.Token),
		restaurants: make(map[int64]domain.Restaurant),
		items:       make(map[int64]domain.Item),
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// Open implements ports.SessionFactory.
func (s *Store) Open(context.Context) (ports.Session, error) {
	return session{s}, nil
}

func (s *Store) Ping(context.Context) error { return nil }

type session struct{ s *Store }

func (x session) Users() ports.UserRepository             { return users{x.s} }
func (x session) Tokens() ports.TokenRepository           { return tokens{x.s} }
func (x session) Restaurants() ports.RestaurantRepository { return restaurants{x.s} }
func (x session) Items() ports.ItemRepository             { return items{x.s} }
func (x session) Close() error                            { return nil }

type users struct{ s *Store }

func (r users) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = domain.NormalizeEmail(email)
	for _, u := range r.s.users {
		if domain.NormalizeEmail(u.Email) == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r users) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r users) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := domain.NormalizeEmail(user.Email)
	for _, u := range r.s.users {
		if domain.NormalizeEmail(u.Email) == email {
			return nil, domain.ErrUserExists
		}
	}
	u := *user
	u.ID = r.s.nextID()
	r.s.users[u.ID] = u
	return &u, nil
}

func (r users) UpdatePassword(_ context.Context, userID int64, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.HashedPassword = hash
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

type tokens struct{ s *Store }

func (r tokens) FindActiveByUser(_ context.Context, userID int64, now time.Time) (*domain.Token, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var best *domain.Token
	for _, t := range r.s.tokens {
		if t.UserID != userID || !t.Expiry.After(now) {
			continue
		}
		if best == nil || t.Expiry.After(best.Expiry) {
			t := t
			best = &t
		}
	}
	if best == nil {
		return nil, domain.ErrTokenNotFound
	}
	return best, nil
}

func (r tokens) FindByToken(_ context.Context, raw string) (*domain.Token, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.tokens {
		if t.Token == raw {
			return &t, nil
		}
	}
	return nil, domain.ErrTokenNotFound
}

func (r tokens) Create(_ context.Context, token *domain.Token) (*domain.Token, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := *token
	t.ID = r.s.nextID()
	r.s.tokens[t.ID] = t
	return &t, nil
}

type restaurants struct{ s *Store }

func (r restaurants) FindByUser(_ context.Context, userID int64) (*domain.Restaurant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.restaurants {
		if x.UserID == userID {
			return &x, nil
		}
	}
	return nil, domain.ErrRestaurantNotFound
}

func (r restaurants) FindByID(_ context.Context, id int64) (*domain.Restaurant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	x, ok := r.s.restaurants[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	return &x, nil
}

func (r restaurants) Upsert(_ context.Context, in *domain.Restaurant) (*domain.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x := *in
	for id, cur := range r.s.restaurants {
		if cur.UserID == in.UserID {
			x.ID = id
			x.CreatedAt = cur.CreatedAt
		}
	}
	if x.ID == 0 {
		x.ID = r.s.nextID()
	}
	r.s.restaurants[x.ID] = x
	return &x, nil
}

type items struct{ s *Store }

func (r items) ListByRestaurant(_ context.Context, restaurantID int64) ([]*domain.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Item, 0)
	for _, it := range r.s.items {
		if it.RestaurantID == restaurantID {
			it := it
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r items) FindByID(_ context.Context, id int64) (*domain.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &it, nil
}

func (r items) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.restaurants[item.RestaurantID]; !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	it := *item
	it.ID = r.s.nextID()
	r.s.items[it.ID] = it
	return &it, nil
}

func (r items) Update(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; !ok {
		return nil, domain.ErrItemNotFound
	}
	it := *item
	r.s.items[it.ID] = it
	return &it, nil
}

func (r items) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r items) DeleteByRestaurant(_ context.Context, restaurantID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, it := range r.s.items {
		if it.RestaurantID == restaurantID {
			delete(r.s.items, id)
			n++
		}
	}
	return n, nil
}
