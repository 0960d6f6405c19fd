package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"

	httpAdapter "github.com/iho/moneybook/internal/adapter/http"
	"github.com/iho/moneybook/internal/adapter/http/handler"
	"github.com/iho/moneybook/internal/adapter/http/middleware"
	"github.com/iho/moneybook/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/moneybook/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/moneybook/internal/adapter/repository/redis"
	"github.com/iho/moneybook/internal/infrastructure/config"
	"github.com/iho/moneybook/internal/infrastructure/logger"
	"github.com/iho/moneybook/internal/infrastructure/metrics"
	"github.com/iho/moneybook/internal/infrastructure/postgres"
	"github.com/iho/moneybook/internal/infrastructure/redis"
	"github.com/iho/moneybook/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// PostgreSQL is optional; without it the service runs on its seeded
	// in-memory collection and reports the degraded mode on every read.
	var pool *pgxpool.Pool
	var remote usecase.TransactionSource
	if cfg.DatabaseURL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
		pool, err = postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		remote = postgresRepo.NewTransactionRepository(pool)
	} else {
		log.Warn().Msg("DATABASE_URL not set, serving from in-memory data only")
	}

	// Redis is optional too; without it lookup caching and idempotency
	// are simply disabled.
	var redisClient *redislib.Client
	var cache usecase.Cache
	var idempotencyStore usecase.IdempotencyStore
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		cache = redisRepo.NewCache(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	} else {
		log.Warn().Msg("REDIS_URL not set, caching and idempotency disabled")
	}

	m := metrics.New()
	fallback := memory.NewSeeded()
	retrier := postgresRepo.NewRetrier(log)
	idGen := postgresRepo.NewULIDGenerator()

	ledgerUC := usecase.NewLedgerUseCase(remote, fallback, cache, retrier, idGen, m, log, cfg.LookupCacheTTL)
	cashbackUC := usecase.NewCashbackUseCase(ledgerUC, m, log)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(ledgerUC),
		AccountHandler:     handler.NewAccountHandler(ledgerUC),
		CashbackHandler:    handler.NewCashbackHandler(cashbackUC),
		NumeralHandler:     handler.NewNumeralHandler(),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		LoggingMiddleware:  middleware.NewLoggingMiddleware(log),
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
