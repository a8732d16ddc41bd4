// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and a single
service's domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Each of the four services (auth, user, trade, notification) builds its own
    Server with the same middleware chain and its own route set.
  - Only this package and cmd/<service> are allowed to import net/http server primitives.

The gateway strips the /v1/<service> prefix before routing, so every service
mounts its domain routes at the router root.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/config"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/constants"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in cmd/<service>/main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
	service    string
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain, mounts
// the health probes, and hands the router to the service's mount function.
//
// # Parameters
//   - context: Application lifetime context (stops background janitors).
//   - cfg: Loaded environment configuration.
//   - log: Root structured logger.
//   - serviceName: Short service identifier used in health payloads.
//   - health: Liveness/readiness handlers built via [NewHealthHandlers].
//   - mount: Callback that registers the service's domain routes.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, serviceName string, health Health, mount func(router chi.Router)) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.ForwardedIdentity())
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", health.Liveness)
	r.Get("/ready", health.Readiness)

	// # Application API
	// The gateway already stripped the /v1/<service> prefix, so domain routes
	// mount at the root.
	mount(r)

	return &Server{
		router:  r,
		log:     log,
		service: serviceName,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting",
		slog.String("service", s.service),
		slog.String("addr", s.httpServer.Addr),
	)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
