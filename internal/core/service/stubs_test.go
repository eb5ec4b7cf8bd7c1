package service

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/menuhub/restaurant-api/internal/core/domain"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubSession struct {
	users       *stubUserRepo
	tokens      *stubTokenRepo
	restaurants *stubRestaurantRepo
	items       *stubItemRepo
	closed      bool
}

func newStubSession() *stubSession {
	return &stubSession{
		users:       &stubUserRepo{byID: make(map[int64]*domain.User)},
		tokens:      &stubTokenRepo{},
		restaurants: &stubRestaurantRepo{byID: make(map[int64]*domain.Restaurant)},
		items:       &stubItemRepo{byID: make(map[int64]*domain.Item)},
	}
}

func (s *stubSession) Users() ports.UserRepository             { return s.users }
func (s *stubSession) Tokens() ports.TokenRepository           { return s.tokens }
func (s *stubSession) Restaurants() ports.RestaurantRepository { return s.restaurants }
func (s *stubSession) Items() ports.ItemRepository             { return s.items }
func (s *stubSession) Close() error                            { s.closed = true; return nil }

type stubUserRepo struct {
	byID     map[int64]*domain.User
	nextID   int64
	findErr  error
	passSets int
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if domain.NormalizeEmail(u.Email) == domain.NormalizeEmail(email) {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if domain.NormalizeEmail(u.Email) == domain.NormalizeEmail(user.Email) {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	c := *user
	c.ID = r.nextID
	r.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, userID int64, hash string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.HashedPassword = hash
	r.passSets++
	return nil
}

type stubTokenRepo struct {
	tokens    []*domain.Token
	createErr error
}

func (r *stubTokenRepo) FindActiveByUser(_ context.Context, userID int64, now time.Time) (*domain.Token, error) {
	for _, t := range r.tokens {
		if t.UserID == userID && t.Expiry.After(now) {
			c := *t
			return &c, nil
		}
	}
	return nil, domain.ErrTokenNotFound
}

func (r *stubTokenRepo) FindByToken(_ context.Context, raw string) (*domain.Token, error) {
	for _, t := range r.tokens {
		if t.Token == raw {
			c := *t
			return &c, nil
		}
	}
	return nil, domain.ErrTokenNotFound
}

func (r *stubTokenRepo) Create(_ context.Context, token *domain.Token) (*domain.Token, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	c := *token
	c.ID = int64(len(r.tokens) + 1)
	r.tokens = append(r.tokens, &c)
	out := c
	return &out, nil
}

type stubRestaurantRepo struct {
	byID      map[int64]*domain.Restaurant
	nextID    int64
	upsertErr error
}

func (r *stubRestaurantRepo) FindByUser(_ context.Context, userID int64) (*domain.Restaurant, error) {
	for _, x := range r.byID {
		if x.UserID == userID {
			c := *x
			return &c, nil
		}
	}
	return nil, domain.ErrRestaurantNotFound
}

func (r *stubRestaurantRepo) FindByID(_ context.Context, id int64) (*domain.Restaurant, error) {
	x, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	c := *x
	return &c, nil
}

func (r *stubRestaurantRepo) Upsert(_ context.Context, in *domain.Restaurant) (*domain.Restaurant, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	c := *in
	if c.ID == 0 {
		r.nextID++
		c.ID = r.nextID
	}
	r.byID[c.ID] = &c
	out := c
	return &out, nil
}

type stubItemRepo struct {
	byID     map[int64]*domain.Item
	nextID   int64
	writeErr error
}

func (r *stubItemRepo) ListByRestaurant(_ context.Context, restaurantID int64) ([]*domain.Item, error) {
	var out []*domain.Item
	for _, it := range r.byID {
		if it.RestaurantID == restaurantID {
			c := *it
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id int64) (*domain.Item, error) {
	it, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	c := *it
	return &c, nil
}

func (r *stubItemRepo) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if r.writeErr != nil {
		return nil, r.writeErr
	}
	r.nextID++
	c := *item
	c.ID = r.nextID
	r.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubItemRepo) Update(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if r.writeErr != nil {
		return nil, r.writeErr
	}
	if _, ok := r.byID[item.ID]; !ok {
		return nil, domain.ErrItemNotFound
	}
	c := *item
	r.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubItemRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubItemRepo) DeleteByRestaurant(_ context.Context, restaurantID int64) (int64, error) {
	var n int64
	for id, it := range r.byID {
		if it.RestaurantID == restaurantID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

type stubImageStore struct {
	saved   map[string][]byte
	removed []string
	err     error
}

func (s *stubImageStore) Remove(_ context.Context, path string) error {
	s.removed = append(s.removed, path)
	delete(s.saved, path)
	return nil
}

func (s *stubImageStore) Save(_ context.Context, key, filename string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	path := "media/" + key + "/" + filename
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[path] = buf.Bytes()
	return path, nil
}

type stubRecorder struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *stubRecorder) Record(e domain.AuthEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *stubRecorder) kinds() []domain.AuthEventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuthEventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}
