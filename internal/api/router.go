package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/menuhub/restaurant-api/docs"
	"github.com/menuhub/restaurant-api/internal/api/handler"
	"github.com/menuhub/restaurant-api/internal/api/middleware"
	"github.com/menuhub/restaurant-api/internal/core/ports"
	"github.com/menuhub/restaurant-api/internal/infrastructure/http/handlers"
	"github.com/menuhub/restaurant-api/internal/pkg/ids"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Sessions    ports.SessionFactory
	Auth        ports.AuthService
	Restaurants ports.RestaurantService
	Items       ports.ItemService
	Location    ports.LocationService

	// Health lists the backends probed by /health/ready besides the
	// relational store, which is always required.
	Health []handlers.Dependency

	// MediaDir is served under /media when set.
	MediaDir string
	Log      zerolog.Logger

	// Metrics receives the HTTP collectors. Nil means the default registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: ids.NewRequestID,
	}))
	e.Use(middleware.RequestLogger(deps.Log))
	// Requested headers are reflected when AllowHeaders is empty.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
	}))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Metrics != nil {
		registerer, gatherer = deps.Metrics, deps.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "restaurant",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Log)
	restaurantHandler := handler.NewRestaurantHandler(deps.Restaurants)
	itemHandler := handler.NewItemHandler(deps.Items)
	locationHandler := handler.NewLocationHandler(deps.Location)

	session := middleware.Session(deps.Sessions, deps.Log)
	gate := middleware.Auth(deps.Auth)

	// --- Public routes ---
	e.GET("/", authHandler.Root, session)
	e.POST("/auth/login", authHandler.Login, session)
	e.POST("/auth/register", authHandler.Register, session)
	e.GET("/location", locationHandler.Get)

	// --- Protected routes ---
	e.GET("/auth/me", authHandler.Me, session, gate)
	e.PUT("/auth/password", authHandler.ChangePassword, session, gate)

	e.GET("/restaurant", restaurantHandler.Get, session, gate)
	e.PUT("/restaurant", restaurantHandler.Upsert, session, gate)

	// /items/all is a static segment, so it wins over /items/:id.
	e.GET("/items/:id", itemHandler.List, session, gate)
	e.POST("/items", itemHandler.Create, session, gate)
	e.PUT("/items/:id", itemHandler.Update, session, gate)
	e.DELETE("/items/all", itemHandler.DeleteAll, session, gate)
	e.DELETE("/items/:id", itemHandler.Delete, session, gate)

	// --- Operational routes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	probes := append([]handlers.Dependency{{
		Name:     "postgres",
		Required: true,
		Ping:     deps.Sessions.Ping,
	}}, deps.Health...)
	healthDepsHandler := handlers.NewHealthDependenciesHandler(probes...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if deps.MediaDir != "" {
		e.Static("/media", deps.MediaDir)
	}

	return e
}
