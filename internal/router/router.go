package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/korvo-dev/echofeed/backend/internal/auth"
	"github.com/korvo-dev/echofeed/backend/internal/feed"
	"github.com/korvo-dev/echofeed/backend/internal/hackernews"
	"github.com/korvo-dev/echofeed/backend/internal/handlers"
	"github.com/korvo-dev/echofeed/backend/internal/middleware"
	"github.com/korvo-dev/echofeed/backend/internal/models"
	"github.com/korvo-dev/echofeed/backend/internal/repositories"
	"github.com/korvo-dev/echofeed/backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log zerolog.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, log zerolog.Logger) error {
	// AutoMigrate PostgreSQL models
	if err := db.AutoMigrate(&models.User{}, &models.SavedPostRecord{}); err != nil {
		return err
	}

	codec, err := auth.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(db)

	// --- Remote item source and aggregator ---
	hnClient := hackernews.NewClientWithBaseURL(&http.Client{Timeout: 30 * time.Second}, cfg.HNBaseURL)
	aggregator := feed.NewAggregator(hnClient, cfg.FeedWorkers, cfg.FetchTimeout, log)

	// --- Unprotected routes ---
	authHandler := handlers.NewAuthHandler(userRepo, codec, log)
	authHandler.RegisterAuthRoutes(e.Group("/user"))

	feedHandler := handlers.NewFeedHandler(aggregator, log)
	feedHandler.RegisterFeedRoutes(e.Group("/posts"))

	// --- Protected routes (require JWT authentication) ---
	authActions := e.Group("/auth-actions")
	authActions.Use(middleware.JWTAuthMiddleware(codec))

	savedPostHandler := handlers.NewSavedPostHandler(savedPostRepo, log)
	savedPostHandler.RegisterSavedPostRoutes(authActions)

	log.Info().Msg("all routes configured")
	return nil
}
