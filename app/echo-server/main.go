package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"myMovieLab/app/echo-server/router"
	"myMovieLab/business/dataset"
	"myMovieLab/business/engine"
	"myMovieLab/internal/middleware"
	"myMovieLab/internal/repository/flatfile"
	psqlRepo "myMovieLab/internal/repository/postgres"
	redisRepo "myMovieLab/internal/repository/redis"
	"myMovieLab/internal/rest"
	"myMovieLab/pkg/config"
	"myMovieLab/pkg/database"
	redisdb "myMovieLab/pkg/database/redis"
	"myMovieLab/pkg/logger"
	"myMovieLab/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MovieLab", "version", cfg.App.Version)

	metrics.Init()

	// Dataset repository: flat files by default, postgres when configured
	var repo dataset.Repository
	switch cfg.Data.Source {
	case "postgres":
		db, err := database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		repo = psqlRepo.NewDatasetRepository(db)
		logger.Info("Database connected successfully")
	default:
		repo = flatfile.NewRepository(cfg.Data.Dir)
	}

	// Optional recommendation cache
	var cache *redisRepo.RecommendationCache
	if cfg.Redis.Enabled {
		client, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer func() { _ = redisdb.CloseRedisClient(client) }()
		cache = redisRepo.NewRecommendationCache(client, time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second)
		logger.Info("Recommendation cache enabled")
	}

	// Train the engines once at startup; without a valid model the service
	// cannot answer anything
	provider := engine.NewProvider(repo, cfg.Model.SVDFactors, cfg.Model.NumClusters, cfg.Data.ArtifactsDir)
	if _, err := provider.Rebuild(context.Background()); err != nil {
		logger.Fatal("Failed to build engines", "error", err)
	}

	// Init handlers
	usersHandler := rest.NewUsersHandler(provider)
	recommendHandler := rest.NewRecommendHandler(provider, cache)
	clustersHandler := rest.NewClustersHandler(provider)
	popularHandler := rest.NewPopularHandler(provider)
	adminHandler := rest.NewAdminHandler(provider)
	healthHandler := rest.NewHealthHandler(provider)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api")
	router.SetupUserRoutes(api, usersHandler)
	router.SetupRecommendRoutes(api, recommendHandler)
	router.SetupClusterRoutes(api, clustersHandler)
	router.SetupPopularRoutes(api, popularHandler)
	router.SetupAdminRoutes(api, adminHandler)
	router.SetupHealthRoutes(api, healthHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
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
