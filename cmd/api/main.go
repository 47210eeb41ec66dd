package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/surgiplan/backend/internal/adapters/cache"
	"github.com/surgiplan/backend/internal/adapters/database"
	"github.com/surgiplan/backend/internal/adapters/events"
	"github.com/surgiplan/backend/internal/api/handlers"
	"github.com/surgiplan/backend/internal/api/routes"
	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/domain/providers"
	"github.com/surgiplan/backend/internal/infrastructure/clients/postgres"
	"github.com/surgiplan/backend/internal/infrastructure/clients/redis"
	"github.com/surgiplan/backend/internal/infrastructure/observability"
	"github.com/surgiplan/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client. The agenda works without it: sessions fall
	// back to in-process storage and the SSE stream to an in-process bus.
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-process session store and event bus")
		cacheProvider = cache.NewMemoryAdapter()
		eventBus = events.NewMemoryEventBus()
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Redis client initialized")
	}
	defer eventBus.Close()

	// Initialize adapters
	surgeryAdapter := database.NewSurgeryAdapter(pgClient)
	doctorAdapter := database.NewDoctorAdapter(pgClient)
	hospitalAdapter := database.NewHospitalAdapter(pgClient)
	insuranceAdapter := database.NewInsurancePlanAdapter(pgClient)
	profileAdapter := database.NewUserProfileAdapter(pgClient)

	// Initialize services
	notificationService := services.NewNotificationService(eventBus, 0)
	syncService := services.NewSyncService(
		surgeryAdapter,
		doctorAdapter,
		hospitalAdapter,
		insuranceAdapter,
		profileAdapter,
		notificationService,
		metrics,
	)
	authService := services.NewAuthService(profileAdapter, cacheProvider, cfg.Session.TTL)

	// The initial load must succeed before the server accepts traffic.
	if err := syncService.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("initial data load failed")
	}
	log.Info().Msg("initial data load complete")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, syncService)
	surgeryHandler := handlers.NewSurgeryHandler(syncService)
	calendarHandler := handlers.NewCalendarHandler(syncService)
	dashboardHandler := handlers.NewDashboardHandler(syncService)
	reportHandler := handlers.NewReportHandler(syncService)
	referenceHandler := handlers.NewReferenceHandler(syncService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, eventBus)

	router := routes.NewRouter(
		authHandler,
		surgeryHandler,
		calendarHandler,
		dashboardHandler,
		reportHandler,
		referenceHandler,
		notificationHandler,
		authService,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
