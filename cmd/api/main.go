package main

// @title Itinerary Microservice API
// @version 1.0.0
// @description Microservice that plans walking itineraries inside a single city. Given a start location, an end location, interest tags and a duration class it produces an ordered sequence of stops with time windows, coordinates and an inferred transport mode per leg.
// @description
// @description Main capabilities:
// @description - Plan an itinerary from tiered POI data with interest-based filtering
// @description - Resolve free-text locations through stored POIs, a city-center table and an external geocoder
// @description - Degrade gracefully to a minimal 3-stop plan when data is missing

// @contact.name API Support
// @contact.email support@itinerary-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/itinerary-microservice/docs"
	"github.com/itinerary-microservice/internal/config"
	httpDelivery "github.com/itinerary-microservice/internal/delivery/http"
	"github.com/itinerary-microservice/internal/delivery/http/handler"
	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/infrastructure/nominatim"
	"github.com/itinerary-microservice/internal/pkg/logger"
	"github.com/itinerary-microservice/internal/repository/cache"
	"github.com/itinerary-microservice/internal/repository/postgres"
	"github.com/itinerary-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Itinerary Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories and collaborators
	poiRepo := postgres.NewPOIRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	geocoder := nominatim.NewClient(&cfg.Geocoder, log)

	// City-center table: loaded once, read-only afterwards
	cities := domain.NewCityIndex(domain.DefaultCities())

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	locationUC := usecase.NewLocationUseCase(
		poiRepo,
		geocoder,
		cities,
		cfg.Geocoder.Country,
		cfg.Geocoder.RequestTimeout,
		log,
	)

	candidateUC := usecase.NewCandidateUseCase(
		poiRepo,
		cacheRepo,
		cfg.Cache.PoolCacheTTL,
		log,
	)

	plannerUC := usecase.NewPlannerUseCase(
		locationUC,
		candidateUC,
		cacheRepo,
		cfg.Planner,
		cfg.Cache.PlanCacheTTL,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers and server
	planHandler := handler.NewPlanHandler(plannerUC, log)
	cityHandler := handler.NewCityHandler(cities, log)

	server := httpDelivery.NewServer(cfg, log, planHandler, cityHandler)

	log.Info("HTTP server initialized")

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped")
}
