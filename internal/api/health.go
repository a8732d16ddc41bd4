// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

// Package api contains the health check handlers for liveness and readiness probes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/constants"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/respond"
)

// Health groups the two probe handlers registered on every service router.
type Health struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc
}

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
//
// Nil checkers are skipped, so fully in-memory services report ready with an
// empty check list.
type HealthDependencies struct {
	// CheckCache pings the Redis client backing the revocation denylist.
	CheckCache func() error
}

type healthHandler struct {
	service      string
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready handlers for one service.
func NewHealthHandlers(serviceName string, deps HealthDependencies, logger *slog.Logger) Health {
	handler := &healthHandler{service: serviceName, dependencies: deps, logger: logger}
	return Health{Liveness: handler.liveness, Readiness: handler.readiness}
}

// liveness handles GET /health (Liveness probe).
//
// The payload is deliberately bare (no envelope): orchestration probes and the
// gateway's upstream checks read it directly.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.JSON(writer, http.StatusOK, map[string]string{
		constants.FieldStatus:  "healthy",
		constants.FieldService: handler.service,
		constants.FieldVersion: constants.AppVersion,
	})
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	type checkResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	results := make([]checkResult, 0, 1)
	isSystemReady := true

	// Check Redis
	if handler.dependencies.CheckCache != nil {
		result := checkResult{Name: "redis", IsOK: true}
		if err := handler.dependencies.CheckCache(); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", "redis"), slog.Any("error", err))
		}
		results = append(results, result)
	}

	responseStatus := "ready"
	httpStatus := http.StatusOK

	if !isSystemReady {
		responseStatus = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, map[string]any{
		constants.FieldStatus:  responseStatus,
		constants.FieldService: handler.service,
		constants.FieldChecks:  results,
	})
}
