package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/capture"
	httpAdapter "github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/http"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/http/handler"
	memoryRepo "github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/repository/memory"
	postgresRepo "github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/repository/postgres"
	redisRepo "github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/repository/redis"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/currency"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/infrastructure/config"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/infrastructure/postgres"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/infrastructure/redis"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/usecase"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/worker"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Reservation store: shared redis when configured and reachable,
	// otherwise the capped in-process fallback. The service stays up
	// either way; only cross-instance deduplication is lost.
	var reservations usecase.ReservationStore
	var redisClient *goredis.Client

	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unreachable, using in-process reservation fallback")
			redisClient = nil
		}
	}

	if redisClient != nil {
		defer redisClient.Close()
		reservations = redisRepo.NewReservationStore(redisClient)
		log.Info().Msg("connected to redis")
	} else {
		reservations = memoryRepo.NewReservationStore(cfg.ReservationFallbackMax)
		log.Warn().
			Int("max_entries", cfg.ReservationFallbackMax).
			Msg("reservation store running in single-process fallback mode")
	}

	// Raw capture sink
	captureStore, err := capture.NewFileStore(cfg.BronzeDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize capture store")
	}

	// Worker pool for deferred processing
	workerPool, err := worker.NewPool(cfg.WorkerPoolSize, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create worker pool")
	}

	// Initialize repositories
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	retrier := postgresRepo.NewRetrier(log.Logger)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	converter := currency.NewConverter(currency.ParsePolicy(cfg.UnknownCurrencyPolicy))
	processorUC := usecase.NewProcessorUseCase(captureStore, expenseRepo, reservations, converter, retrier, idGen, log.Logger)
	ingestUC := usecase.NewIngestUseCase(reservations, processorUC, workerPool, cfg.ReservationTTL, log.Logger)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo)

	// Initialize handlers
	ingestHandler := handler.NewIngestHandler(ingestUC)
	expenseHandler := handler.NewExpenseHandler(expenseUC)
	reportHandler := handler.NewReportHandler(expenseUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		IngestHandler:  ingestHandler,
		ExpenseHandler: expenseHandler,
		ReportHandler:  reportHandler,
		HealthHandler:  healthHandler,
		Logger:         log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown: stop taking submissions, then drain deferred tasks.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	workerPool.Shutdown(30 * time.Second)

	log.Info().Msg("server stopped")
}
