package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tahmid11/socialbook/backend/internal/auth"
	"github.com/tahmid11/socialbook/backend/internal/router"
	"github.com/tahmid11/socialbook/backend/pkg/config"
	"github.com/tahmid11/socialbook/backend/pkg/logger"
	"github.com/tahmid11/socialbook/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize structured logging
	if err := logger.Init(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.L.Sync()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.S.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Optional redis client backing the token blacklist
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}

	tokens := auth.NewTokenManager(
		cfg.JWTSecret,
		time.Duration(cfg.TokenTTLHours)*time.Hour,
		auth.NewBlacklist(rdb),
	)

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, cfg, tokens); err != nil {
		logger.S.Fatalf("Failed to set up routes: %v", err)
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
