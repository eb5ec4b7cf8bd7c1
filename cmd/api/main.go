// @title                       Restaurant Menu API
// @version                     1.0
// @description                 Restaurant profiles and menu items behind token authentication.
// @BasePath                    /
// @securityDefinitions.apikey  tokenAuth
// @in                          header
// @name                        Authorization
// @description                 Token YOUR_TOKEN_HERE
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/menuhub/restaurant-api/internal/api"
	"github.com/menuhub/restaurant-api/internal/core/ports"
	"github.com/menuhub/restaurant-api/internal/core/service"
	"github.com/menuhub/restaurant-api/internal/infrastructure/db/memory"
	mongostore "github.com/menuhub/restaurant-api/internal/infrastructure/db/mongo"
	"github.com/menuhub/restaurant-api/internal/infrastructure/db/postgres"
	redisstore "github.com/menuhub/restaurant-api/internal/infrastructure/db/redis"
	"github.com/menuhub/restaurant-api/internal/infrastructure/geo"
	"github.com/menuhub/restaurant-api/internal/infrastructure/http/handlers"
	"github.com/menuhub/restaurant-api/internal/infrastructure/queue"
	"github.com/menuhub/restaurant-api/internal/infrastructure/storage/local"
	"github.com/menuhub/restaurant-api/internal/infrastructure/storage/s3store"
	"github.com/menuhub/restaurant-api/internal/pkg/config"
	"github.com/menuhub/restaurant-api/pkg/logger"
)

const mediaPrefix = "media"

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "restaurant-api",
	})
	if envErr != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("relational store unavailable")
	}
	defer closeStore()

	images, err := openImageStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("image store unavailable")
	}

	var probes []handlers.Dependency

	// Audit trail is optional: without Mongo, events are dropped.
	var recorder ports.AuditRecorder
	mongoClient, mongoDB, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  5 * time.Second,
	})
	if err != nil {
		log.Warn().Err(err).Msg("mongodb connection failed, audit trail disabled")
	} else {
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()

		auditRepo := mongostore.NewAuditRepository(mongoDB)
		if err := auditRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("audit indexes not created")
		}
		dispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, log)
		dispatcher.Start()
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := dispatcher.Close(closeCtx); err != nil {
				log.Warn().Err(err).Msg("audit queue not drained")
			}
		}()
		recorder = dispatcher
		probes = append(probes, handlers.MongoDependency(mongoDB))
	}

	// Location cache is optional too.
	var locationCache ports.LocationCache
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Timeout:  3 * time.Second,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis connection failed, location cache disabled")
	} else {
		defer func() { _ = rdb.Close() }()
		locationCache = redisstore.NewLocationCache(rdb)
		probes = append(probes, handlers.RedisDependency(rdb))
	}

	authService := service.NewAuthService(service.AuthConfig{
		TokenTTL:      cfg.Auth.TokenTTL,
		EnforceExpiry: cfg.Auth.EnforceExpiry,
		BcryptCost:    cfg.Auth.BcryptCost,
		AdminName:     cfg.Auth.AdminName,
		AdminEmail:    cfg.Auth.AdminEmail,
		AdminPassword: cfg.Auth.AdminPassword,
	}, recorder, log)

	mediaDir := ""
	if cfg.Images.Store == "local" {
		mediaDir = cfg.Images.MediaDir
	}

	deps := api.Dependencies{
		Sessions:    sessions,
		Auth:        authService,
		Restaurants: service.NewRestaurantService(images, log),
		Items:       service.NewItemService(images, log),
		Location: service.NewLocationService(
			geo.NewClient(cfg.Geo.BaseURL, cfg.Geo.Timeout),
			locationCache,
			cfg.Geo.CacheTTL,
			log,
		),
		Health:   probes,
		MediaDir: mediaDir,
		Log:      log,
	}
	if err := api.Bootstrap(ctx, deps); err != nil {
		log.Warn().Err(err).Msg("admin bootstrap failed")
	}
	e := api.NewRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("store", cfg.Database.Driver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.SessionFactory, func(), error) {
	if cfg.Database.Driver == "memory" {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.Database.URL, postgres.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return postgres.NewFactory(db), func() { _ = db.Close() }, nil
}

func openImageStore(ctx context.Context, cfg *config.Config) (ports.ImageStore, error) {
	if cfg.Images.Store == "s3" {
		return s3store.New(ctx, s3store.Config{
			Bucket:       cfg.Images.S3Bucket,
			Region:       cfg.Images.S3Region,
			BaseEndpoint: cfg.Images.S3BaseEndpoint,
			AccessKey:    cfg.Images.S3AccessKey,
			SecretKey:    cfg.Images.S3SecretKey,
			PublicURL:    cfg.Images.S3PublicURL,
		})
	}
	return local.New(cfg.Images.MediaDir, mediaPrefix), nil
}
