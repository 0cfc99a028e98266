package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tahmid11/socialbook/backend/internal/auth"
	"github.com/tahmid11/socialbook/backend/internal/handlers"
	"github.com/tahmid11/socialbook/backend/internal/middleware"
	"github.com/tahmid11/socialbook/backend/internal/models"
	"github.com/tahmid11/socialbook/backend/internal/repositories"
	"github.com/tahmid11/socialbook/backend/pkg/config"
	"github.com/tahmid11/socialbook/backend/pkg/logger"
)

// SetupMiddleware configures global echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestID())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.L.Info("request",
				zap.String("id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
}

// Migrate runs the schema auto-migration for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
		&models.Author{},
		&models.Book{},
	)
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, tokens *auth.TokenManager) error {
	if err := Migrate(db); err != nil {
		return err
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	bookRepo := repositories.NewPostgresBookRepository(db)
	authorRepo := repositories.NewPostgresAuthorRepository(db)

	// --- Unprotected routes for authentication, rate limited ---
	authGroup := e.Group("/api/v1/auth", middleware.RateLimit(cfg.RateLimitPerMinute))
	authHandler := handlers.NewAuthHandler(userRepo, tokens)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require a valid bearer token) ---
	api := e.Group("/api/v1", middleware.RequireAuth(tokens))
	authHandler.RegisterSessionRoutes(api)

	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	userHandler.RegisterProfileRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo)
	followHandler.RegisterFollowRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, userRepo, likeRepo)
	postHandler.RegisterPostRoutes(api)

	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, followRepo, likeRepo)
	feedHandler.RegisterFeedRoutes(api)

	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, userRepo, notificationRepo)
	likeHandler.RegisterLikeRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, notificationRepo)
	commentHandler.RegisterCommentRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	// --- Library routes: reads are open, writes enforce their own policy ---
	library := e.Group("/api/v1", middleware.OptionalAuth(tokens))
	bookHandler := handlers.NewBookHandler(bookRepo, authorRepo)
	bookHandler.RegisterBookRoutes(library)

	logger.S.Info("All routes configured.")
	return nil
}
