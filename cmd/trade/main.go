// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

// Command trade is the entry point for the trading simulation service.
//
// Orders and positions live in seeded in-memory stores; there is no market
// connectivity. The service trusts the gateway for identity.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/Muhammad-Mk/kong-microservices/internal/api"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/config"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/constants"
	"github.com/Muhammad-Mk/kong-microservices/internal/trade"
)

const serviceName = "trade-service"

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName), slog.String("service", serviceName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. Domain Wiring ──────────────────────────────────────────────────
	tradeService := trade.NewService(trade.NewSeededTradeStore(), trade.NewSeededPositionStore())
	tradeHandler := trade.NewHandler(tradeService)

	// ── 4. HTTP Server ────────────────────────────────────────────────────
	health := api.NewHealthHandlers(serviceName, api.HealthDependencies{}, log)

	server := api.NewServer(appCtx, cfg, log, serviceName, health, func(router chi.Router) {
		router.Mount("/", tradeHandler.Routes())
	})

	// ── 5. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
