// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

// Command api is the entry point for the Wayfarer HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when configured (rate-limit backend).
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wayfarer-travel/wayfarer/internal/api"
	"github.com/wayfarer-travel/wayfarer/internal/core/review"
	"github.com/wayfarer-travel/wayfarer/internal/core/tour"
	"github.com/wayfarer-travel/wayfarer/internal/platform/config"
	"github.com/wayfarer-travel/wayfarer/internal/platform/constants"
	"github.com/wayfarer-travel/wayfarer/internal/platform/limiter"
	"github.com/wayfarer-travel/wayfarer/internal/platform/middleware"
	"github.com/wayfarer-travel/wayfarer/internal/platform/migration"
	pgstore "github.com/wayfarer-travel/wayfarer/internal/platform/postgres"
	redisstore "github.com/wayfarer-travel/wayfarer/internal/platform/redis"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
	"github.com/wayfarer-travel/wayfarer/internal/users/account"
	"github.com/wayfarer-travel/wayfarer/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Wayfarer] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lifecycle context for background workers (limiter eviction).
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Rate-Limit Backend ─────────────────────────────────────────────
	// Redis gives one shared window across replicas; without it each
	// process enforces its own in-memory budget.
	var (
		rateLimiter    limiter.Limiter
		checkRateLimit func() error
	)
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		rateLimiter = limiter.NewRedisLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow)
		checkRateLimit = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	} else {
		log.Info("redis not configured, using in-memory rate limiter")
		rateLimiter = limiter.NewMemoryLimiter(appCtx, cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.JWTExpiresIn)
	must(log, err, "initialize token service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckRateLimiter: checkRateLimit,
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewPostgresUserRepository(pool)
	authService := auth.NewService(userRepository, tokenService, log)
	protect := middleware.Protect(tokenService, authService)
	authHandler := auth.NewHandler(authService, protect, cfg.JWTExpiresIn, cfg.IsProduction())

	accountStore := account.NewPostgresUserStore(pool)
	accountService := account.NewService(accountStore, userRepository, log)
	accountHandler := account.NewHandler(accountService, protect)

	tourRepository := tour.NewPostgresTourRepository(pool)
	tourService := tour.NewService(tourRepository, log)
	tourHandler := tour.NewHandler(tourService, protect)

	reviewRepository := review.NewPostgresReviewRepository(pool)
	reviewService := review.NewService(reviewRepository, log)
	reviewHandler := review.NewHandler(reviewService, protect)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		Tour:      tourHandler,
		Review:    reviewHandler,
	}

	server := api.NewServer(cfg, log, rateLimiter, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error. An error-driven shutdown still
	// drains in-flight requests but must exit non-zero so a supervisor
	// restarts the process.
	abnormal := false
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server error", slog.Any("error", err))
		abnormal = true
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	if abnormal {
		log.Error("server terminated abnormally")
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
