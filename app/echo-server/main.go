package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"myShopSense/app/echo-server/router"
	"myShopSense/business/product"
	"myShopSense/business/segmentation"
	userService "myShopSense/business/user"
	"myShopSense/internal/middleware"
	"myShopSense/internal/repository/artifact"
	"myShopSense/internal/repository/notification"
	psqlRepo "myShopSense/internal/repository/postgres"
	redisRepo "myShopSense/internal/repository/redis"
	"myShopSense/internal/rest"
	"myShopSense/pkg/config"
	"myShopSense/pkg/database"
	redisdb "myShopSense/pkg/database/redis"
	"myShopSense/pkg/logger"
	"myShopSense/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ShopSense", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	predictionLogRepo := psqlRepo.NewPredictionLogRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)
	artifactLoader := artifact.NewLoader(cfg.Model.Dir)

	// Init service
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	productService := product.NewProductService(productRepo)
	segService := segmentation.NewService(artifactLoader, productRepo, predictionLogRepo)

	// Load the model artifacts up front. Malformed artifacts are fatal;
	// merely missing ones are not, a later request or admin reload can
	// pick them up once the training pipeline has exported them.
	if err := segService.Reload(); err != nil {
		var cfgErr *segmentation.ConfigError
		if errors.As(err, &cfgErr) {
			logger.Fatal("Invalid model artifacts", "error", err)
		}
		logger.Warn("Model artifacts not loaded yet", "error", err)
	}

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	productHandler := rest.NewProductHandler(productService)
	clusterHandler := rest.NewClusterHandler(segService)
	recommendHandler := rest.NewRecommendHandler(segService, predictionLogRepo)
	modelAdminHandler := rest.NewModelAdminHandler(segService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(usrService)
	adminOnly := middleware.AdminOnly()
	selfOrAdmin := middleware.SelfOrAdmin()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly, selfOrAdmin)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetClusterRoutes(api, clusterHandler)
	router.SetRecommendRoutes(api, recommendHandler, authRequired)
	router.SetModelAdminRoutes(api, modelAdminHandler, authRequired, adminOnly)
	router.SetMetricsRoute(e)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
