// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package middleware

import (
	"net/http"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/constants"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/ctxutil"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/respond"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/sec"
)

// ForwardedIdentity reconstructs the consumer identity injected by the Kong
// JWT plugin.
//
// # Flow
//  1. Read X-Consumer-Custom-ID and X-Consumer-Username headers.
//  2. If both are absent, the request proceeds as anonymous.
//  3. Otherwise inject [*sec.Identity] into the request context.
//
// # Trust Model
//
// The downstream services never decode tokens — the gateway has already
// verified the JWT before these headers reach us. In deployments without the
// gateway (local development, tests), callers may set the headers directly.
func ForwardedIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			userID := request.Header.Get(constants.HeaderConsumerID)
			username := request.Header.Get(constants.HeaderConsumerUsername)

			// Anonymous request: no consumer headers were forwarded
			if userID == "" && username == "" {
				next.ServeHTTP(writer, request)
				return
			}

			identity := &sec.Identity{
				UserID:   userID,
				Username: username,
			}

			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireIdentity blocks requests that carry no forwarded identity.
//
// # Usage
//
// Must be registered in the router AFTER [ForwardedIdentity].
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required").WithCode("MISSING_AUTH"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
