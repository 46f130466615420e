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

	"stockpulse/app/echo-server/metrics"
	"stockpulse/app/echo-server/router"
	"stockpulse/business/advisor"
	"stockpulse/business/behavior"
	"stockpulse/business/popular"
	"stockpulse/business/portfolio"
	"stockpulse/business/recommend"
	"stockpulse/business/watchlist"
	"stockpulse/internal/middleware"
	psqlRepo "stockpulse/internal/repository/postgres"
	redisRepo "stockpulse/internal/repository/redis"
	"stockpulse/internal/rest"
	"stockpulse/pkg/config"
	"stockpulse/pkg/database"
	"stockpulse/pkg/logger"
	"stockpulse/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting StockPulse", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected successfully")

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		if err := database.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close Redis client", "error", err)
		}
	}()

	metrics.Init()

	// Init repo
	behaviorRepo := psqlRepo.NewBehaviorRepository(db)
	watchlistRepo := psqlRepo.NewWatchlistRepository(db)
	portfolioRepo := psqlRepo.NewPortfolioRepository(db)
	searchRepo := psqlRepo.NewSearchHistoryRepository(db)
	metaRepo := psqlRepo.NewStockMetaRepository(db)
	interactionRepo := psqlRepo.NewInteractionRepository(db)
	recommendationCache := redisRepo.NewRecommendationCache(redisClient)

	// The advisor is optional; without an API key the engine uses static
	// reasons.
	var reasons recommend.ReasonGenerator
	if svc := advisor.New(advisor.Config{
		BaseURL: cfg.Advisor.BaseURL,
		APIKey:  cfg.Advisor.APIKey,
		Model:   cfg.Advisor.Model,
	}); svc != nil {
		reasons = svc
	}

	// Init service
	popularService := popular.NewService(searchRepo)
	recommendService := recommend.NewRecommendService(
		behaviorRepo,
		watchlistRepo,
		portfolioRepo,
		popularService,
		metaRepo,
		reasons,
		recommendationCache,
	)
	behaviorService := behavior.NewService(behaviorRepo, searchRepo, interactionRepo)
	watchlistService := watchlist.NewService(watchlistRepo)
	portfolioService := portfolio.NewService(portfolioRepo)

	// Init handler
	recommendHandler := rest.NewRecommendHandler(recommendService)
	behaviorHandler := rest.NewBehaviorHandler(behaviorService)
	watchlistHandler := rest.NewWatchlistHandler(watchlistService)
	portfolioHandler := rest.NewPortfolioHandler(portfolioService)
	popularHandler := rest.NewPopularHandler(popularService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetRecommendRoutes(api, recommendHandler)
	router.SetBehaviorRoutes(api, behaviorHandler)
	router.SetWatchlistRoutes(api, watchlistHandler)
	router.SetPortfolioRoutes(api, portfolioHandler)
	router.SetPopularRoutes(api, popularHandler)

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
