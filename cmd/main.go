package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healio/database"
	"healio/docs"
	"healio/internal/cache"
	"healio/internal/config"
	"healio/internal/controllers"
	"healio/internal/logger"
	"healio/internal/middleware"
	"healio/internal/oauth"
	"healio/internal/repository"
	"healio/internal/services"
	"healio/internal/utils"
	"healio/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title Healio API
// @version 1.0
// @description Nutrition tracking: food catalog, meal logging, daily summaries and BMI.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.LoadDotEnv(".env", "../.env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	docs.SwaggerInfo.Title = "Healio API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	database.MonitorConnections(ctx, db, log)

	var summaries cache.SummaryCache = cache.Noop{}
	var cacheStatus cache.StatusReporter = cache.Noop{}
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL, cfg.SummaryCacheTTL)
		if err != nil {
			log.Warn("redis unavailable, summary cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			summaries = redisClient
			cacheStatus = redisClient
			log.Info("summary cache enabled", zap.Duration("ttl", cfg.SummaryCacheTTL))
		}
	}

	var googleVerifier oauth.IDTokenVerifier
	if cfg.GoogleAuth {
		verifier, err := oauth.NewGoogleVerifier(ctx, cfg.GoogleClientID)
		if err != nil {
			return err
		}
		googleVerifier = verifier
		log.Info("google sign-in enabled")
	}

	userRepo := repository.NewUserRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	mealRepo := repository.NewMealRepository(db)

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)
	authService := services.NewAuthService(userRepo, tokens, googleVerifier, log)
	mealService := services.NewMealService(mealRepo, foodRepo, userRepo, summaries, log)

	if err := controllers.RegisterValidators(); err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	skip := []string{}
	if cfg.IsProduction() {
		skip = append(skip, "/health")
	}
	router.Use(middleware.RequestLogger(log, skip...))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	auth := middleware.AuthMiddleware(tokens)
	routes.RegisterHealthRoutes(router, controllers.NewHealthController(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}, cacheStatus.Status))
	routes.RegisterAuthRoutes(router, controllers.NewAuthController(authService))
	routes.RegisterUserRoutes(router, auth, controllers.NewUserController(userRepo, summaries, log))
	routes.RegisterFoodRoutes(router, auth, controllers.NewFoodController(foodRepo))
	routes.RegisterMealRoutes(router, auth, controllers.NewMealController(mealService))
	routes.RegisterBMIRoutes(router, controllers.NewBMIController())
	routes.RegisterSwaggerRoutes(router)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
			zap.String("docs", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	closeDB(db, log)
	return nil
}

func closeDB(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
