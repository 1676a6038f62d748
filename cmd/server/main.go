package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"

	"github.com/mathieu-neron/cineshelf/internal/catalog"
	"github.com/mathieu-neron/cineshelf/internal/config"
	"github.com/mathieu-neron/cineshelf/internal/db"
	"github.com/mathieu-neron/cineshelf/internal/handler"
	"github.com/mathieu-neron/cineshelf/internal/metrics"
	"github.com/mathieu-neron/cineshelf/internal/middleware"
	"github.com/mathieu-neron/cineshelf/internal/repository"
	"github.com/mathieu-neron/cineshelf/internal/router"
	"github.com/mathieu-neron/cineshelf/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := middleware.InitLogger(cfg.LogLevel, "cineshelf-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply migrations")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			if cfg.RateLimitBackend == "redis" {
				logger.Fatal().Err(err).Msg("redis unreachable")
			}
			logger.Warn().Err(err).Msg("redis unreachable, continuing without it")
			client.Close()
		} else {
			rdb = client
			defer rdb.Close()
		}
	}

	var limitStore middleware.Store = middleware.NewMemoryStore()
	if cfg.RateLimitBackend == "redis" {
		limitStore = middleware.NewRedisStore(rdb)
	}

	metrics.Register(pool)

	// Repositories
	contentRepo := repository.NewContentRepo(pool)
	ratingRepo := repository.NewRatingRepo(pool)
	engagementRepo := repository.NewEngagementRepo(pool)
	listRepo := repository.NewListRepo(pool)
	commentRepo := repository.NewCommentRepo(pool)
	userRepo := repository.NewUserRepo(pool)
	followRepo := repository.NewFollowRepo(pool)
	settingsRepo := repository.NewSettingsRepo(pool)
	feedRepo := repository.NewFeedRepo(pool)

	// Services
	catalogClient := catalog.NewClient(catalog.Config{
		APIKey:            cfg.TMDBAPIKey,
		BaseURL:           cfg.TMDBBaseURL,
		ImageBaseURL:      cfg.TMDBImageBaseURL,
		RequestsPerSecond: cfg.TMDBRequestsPerSecond,
		Timeout:           cfg.TMDBTimeout,
	}, logger.With().Str("component", "catalog").Logger())
	if cfg.TMDBAPIKey == "" {
		logger.Warn().Msg("TMDB_API_KEY is not set, catalog requests will fail")
	}

	contentSvc := service.NewContentService(contentRepo, ratingRepo, logger)
	catalogSvc := service.NewCatalogService(catalogClient, contentSvc, logger)
	engagementSvc := service.NewEngagementService(engagementRepo)
	listSvc := service.NewListService(listRepo, userRepo)
	commentSvc := service.NewCommentService(commentRepo, listSvc)
	feedSvc := service.NewFeedService(feedRepo, ratingRepo, userRepo)
	followSvc := service.NewFollowService(engagementRepo, followRepo, userRepo, logger)
	settingsSvc := service.NewSettingsService(settingsRepo)
	userSvc := service.NewUserService(userRepo, followSvc, settingsSvc)

	app := fiber.New(fiber.Config{
		AppName:      "CineShelf API",
		ServerHeader: "CineShelf",
		BodyLimit:    256 * 1024,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: middleware.ErrorHandler,
	})

	router.Setup(app, &router.Handlers{
		Health:   handler.NewHealthHandler(pool, rdb),
		Catalog:  handler.NewCatalogHandler(catalogSvc),
		Content:  handler.NewContentHandler(contentSvc, feedSvc),
		Review:   handler.NewReviewHandler(feedSvc, engagementSvc),
		List:     handler.NewListHandler(listSvc, engagementSvc),
		Comment:  handler.NewCommentHandler(commentSvc),
		User:     handler.NewUserHandler(userSvc, listSvc, feedSvc, followSvc),
		Settings: handler.NewSettingsHandler(settingsSvc),
		Stats:    handler.NewStatsHandler(userSvc),
	}, router.Options{
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitStore: limitStore,
	})

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	logger.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Str("rate_limit_backend", cfg.RateLimitBackend).Msg("CineShelf API starting")
	if err := app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
