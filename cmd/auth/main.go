// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

// Command auth is the entry point for the token issuance and revocation service.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the token codec from the signing settings.
//  4. Connect to Redis if REDIS_URL is set (shared revocation registry);
//     otherwise fall back to the process-local registry.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
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

	"github.com/go-chi/chi/v5"

	"github.com/Muhammad-Mk/kong-microservices/internal/api"
	"github.com/Muhammad-Mk/kong-microservices/internal/auth"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/config"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/constants"
	redisstore "github.com/Muhammad-Mk/kong-microservices/internal/platform/redis"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/sec"
)

const serviceName = "auth-service"

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName), slog.String("service", serviceName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName), slog.String("service", serviceName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Application lifetime context. Cancelling it stops background janitors
	// (revocation pruning, rate-limit cleanup).
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Startup deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(appCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Token Codec ────────────────────────────────────────────────────
	codec, err := sec.NewCodec(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.JWTIssuer)
	must(log, err, "initialize token codec")

	// ── 4. Revocation Registry ────────────────────────────────────────────
	// Redis-backed when configured (multi-instance deployments share the
	// denylist); process-local otherwise.
	var registry auth.RevocationRegistry
	healthDeps := api.HealthDependencies{}

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		registry = auth.NewRedisRevocationRegistry(rdb)
		healthDeps.CheckCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
		log.Info("revocation_registry_redis")
	} else {
		registry = auth.NewMemoryRevocationRegistry(appCtx)
		log.Info("revocation_registry_memory")
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewMemoryUserRepository()
	authService := auth.NewService(userRepository, registry, codec, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authHandler := auth.NewHandler(authService)

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	health := api.NewHealthHandlers(serviceName, healthDeps, log)

	server := api.NewServer(appCtx, cfg, log, serviceName, health, func(router chi.Router) {
		router.Mount("/", authHandler.Routes())
	})

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
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
