package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/menuhub/restaurant-api/internal/core/domain"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

type stubSession struct{ closed bool }

func (s *stubSession) Users() ports.UserRepository             { return nil }
func (s *stubSession) Tokens() ports.TokenRepository           { return nil }
func (s *stubSession) Restaurants() ports.RestaurantRepository { return nil }
func (s *stubSession) Items() ports.ItemRepository             { return nil }
func (s *stubSession) Close() error                            { s.closed = true; return nil }

type stubAuthService struct {
	loginFn     func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error)
	registerFn  func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	changeFn    func(ctx context.Context, in ports.ChangePasswordInput) error
	bootstrapFn func(ctx context.Context) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, _ ports.Session, in ports.LoginInput) (*ports.LoginResult, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Register(ctx context.Context, _ ports.Session, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, _ ports.Session, in ports.ChangePasswordInput) error {
	return s.changeFn(ctx, in)
}

func (s *stubAuthService) Resolve(context.Context, ports.Session, string) (*domain.Principal, error) {
	return nil, domain.ErrInvalidToken
}

func (s *stubAuthService) Bootstrap(ctx context.Context, _ ports.Session) (*domain.User, error) {
	return s.bootstrapFn(ctx)
}

type stubItemService struct {
	created   *ports.CreateItemInput
	updated   *ports.ItemInput
	deletedID int64
	listFn    func(restaurantID int64) ([]*domain.Item, error)
}

func (s *stubItemService) List(_ context.Context, _ ports.Session, restaurantID int64) ([]*domain.Item, error) {
	return s.listFn(restaurantID)
}

func (s *stubItemService) Create(_ context.Context, _ ports.Session, _ domain.Principal, in ports.CreateItemInput) (*domain.Item, error) {
	s.created = &in
	return &domain.Item{ID: 1, RestaurantID: in.RestaurantID, Name: in.Name, Cost: in.Cost, Price: in.Price, IsActive: in.IsActive, Image: domain.DefaultImagePath}, nil
}

func (s *stubItemService) Update(_ context.Context, _ ports.Session, _ domain.Principal, itemID int64, in ports.ItemInput) (*domain.Item, error) {
	s.updated = &in
	return &domain.Item{ID: itemID, Name: in.Name, IsActive: in.IsActive}, nil
}

func (s *stubItemService) Delete(_ context.Context, _ ports.Session, _ domain.Principal, itemID int64) error {
	if itemID != 7 {
		return domain.ErrItemNotFound
	}
	s.deletedID = itemID
	return nil
}

func (s *stubItemService) DeleteAll(context.Context, ports.Session, domain.Principal) (int64, error) {
	return 3, nil
}

type stubRestaurantService struct {
	upserted *ports.RestaurantInput
}

func (s *stubRestaurantService) Get(context.Context, ports.Session, domain.Principal) (*domain.Restaurant, error) {
	return nil, domain.ErrRestaurantNotFound
}

func (s *stubRestaurantService) Upsert(_ context.Context, _ ports.Session, owner domain.Principal, in ports.RestaurantInput) (*domain.Restaurant, error) {
	s.upserted = &in
	return &domain.Restaurant{ID: 1, UserID: owner.ID, Name: in.Name, Email: in.Email, Logo: domain.DefaultImagePath}, nil
}

// authenticated prepares c the way the session and auth middleware would.
func authenticated(c echo.Context, p domain.Principal) *stubSession {
	sess := &stubSession{}
	SetSession(c, sess)
	SetPrincipal(c, p)
	return sess
}
