package main

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/korvo-dev/echofeed/backend/internal/router"
	"github.com/korvo-dev/echofeed/backend/pkg/config"
	"github.com/korvo-dev/echofeed/backend/validators"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e, log)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("failed to set up routes")
	}

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
