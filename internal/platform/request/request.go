// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/ctxutil"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/sec"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
BearerToken extracts the raw token from the Authorization header.

Description: The header must be exactly "Bearer <token>" (scheme matched
case-insensitively). The two failure modes carry the machine codes the
protocol defines: MISSING_AUTH when the header is absent, INVALID_AUTH_FORMAT
when it does not parse.

Returns:
  - string: Raw compact token
  - error: apperr.Unauthorized with the appropriate code
*/
func BearerToken(request *http.Request) (string, error) {

	// Get the Authorization header
	authHeader := request.Header.Get("Authorization")
	if authHeader == "" {
		return "", apperr.Unauthorized("Authorization header is required").WithCode("MISSING_AUTH")
	}

	// Split into scheme and credential
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", apperr.Unauthorized("Invalid authorization header format").WithCode("INVALID_AUTH_FORMAT")
	}

	return parts[1], nil
}

/*
Identity extracts the gateway-forwarded identity from the request context.

Returns nil if the gateway forwarded no consumer headers.
*/
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request carries a forwarded identity.

Returns:
  - *sec.Identity: The forwarded consumer identity
  - error: apperr.Unauthorized if the gateway forwarded no identity
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {

	// Get the forwarded identity
	identity := ctxutil.GetIdentity(request.Context())

	// If the gateway forwarded nothing, the request is anonymous
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required").WithCode("MISSING_AUTH")
	}

	return identity, nil
}
