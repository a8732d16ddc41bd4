// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
	requestutil "github.com/Muhammad-Mk/kong-microservices/internal/platform/request"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/respond"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/validate"
)

// Handler implements the auth service's HTTP endpoints.
//
// # Scope
//
// This handler manages the full token lifecycle entry points: registration,
// login, verification, logout, refresh, introspection, and revocation.
// It contains NO business logic — every decision lives in [Service].
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with the auth endpoints.
//
// The gateway strips the /v1/auth prefix, so everything mounts at the root.
//
// # Endpoints
//   - POST /register   : Creates a new account.
//   - POST /login      : Authenticates and returns a token pair.
//   - GET  /verify     : Validates the Bearer token and echoes its claims.
//   - POST /logout     : Revokes the Bearer token.
//   - POST /refresh    : Exchanges a refresh token for a new access token.
//   - POST /introspect : RFC 7662-style token state query (bare response).
//   - POST /revoke     : Unconditionally denylists a token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Get("/verify", handler.verify)
	router.Post("/logout", handler.logout)
	router.Post("/refresh", handler.refresh)
	router.Post("/introspect", handler.introspect)
	router.Post("/revoke", handler.revoke)

	return router
}

// registerRequest represents the JSON payload expected for account creation.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register handles POST /register requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the User profile.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict (USER_EXISTS) if the email is taken.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	validator := &validate.Validator{}
	err := validator.
		Required("username", input.Username).
		Required("email", input.Email).
		Required("password", input.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if validationErr := (&validate.Validator{}).Email("email", input.Email).MinLen("password", input.Password, 8).Err(); validationErr != nil {
		respond.Error(writer, request, validationErr)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, "User registered successfully", user)
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles POST /login requests.
//
// # Returns
//   - Writes HTTP 200 OK with the access/refresh token pair.
//   - Writes HTTP 401 (INVALID_CREDENTIALS) for bad credentials.
//   - Writes HTTP 403 (ACCOUNT_INACTIVE) for deactivated accounts.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	validator := &validate.Validator{}
	err := validator.
		Required("email", input.Email).
		Required("password", input.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	pair, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		// 401 without revealing whether the email exists.
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.OKMessage(writer, "Login successful", pair)
}

// verify handles GET /verify requests.
//
// The token arrives as "Authorization: Bearer <token>". On success the
// response echoes the verified claims so callers can inspect their own token.
func (handler *Handler) verify(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Header Extraction ──────────────────────────────────────────────

	token, err := requestutil.BearerToken(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	claims, err := handler.authService.Verify(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, map[string]any{
		"user_id":    claims.Subject,
		"email":      claims.Email,
		"username":   claims.Username,
		"type":       claims.TokenType,
		"expires_at": claims.ExpiresAt.Unix(),
	})
}

// logout handles POST /logout requests.
//
// Logout revokes whatever Bearer token the caller presents. It is idempotent:
// logging out twice (or with an already-expired token) still returns 200.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Header Extraction ──────────────────────────────────────────────

	token, err := requestutil.BearerToken(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	if err := handler.authService.Revoke(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.OKMessage(writer, "Successfully logged out", nil)
}

// refreshRequest carries the long-lived credential to exchange.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// refresh handles POST /refresh requests.
//
// # Returns
//   - Writes HTTP 200 OK with a fresh access token.
//   - Writes HTTP 400 (MISSING_TOKEN) when the body carries no token.
//   - Writes HTTP 401 for revoked/expired/invalid/wrong-type tokens.
//   - Writes HTTP 404 (USER_NOT_FOUND) for deleted or deactivated subjects.
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input refreshRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.RefreshToken == "" {
		respond.Error(writer, request, apperr.ValidationError("Refresh token is required").WithCode("MISSING_TOKEN"))
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	result, err := handler.authService.Refresh(request.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.OKMessage(writer, "Token refreshed", result)
}

// tokenRequest carries a raw token for introspection or revocation.
type tokenRequest struct {
	Token string `json:"token"`
}

// introspect handles POST /introspect requests.
//
// The response is a bare RFC 7662-style object, NOT the standard envelope —
// resource servers integrate against the introspection shape directly.
// Failures collapse to {"active": false} with HTTP 200.
func (handler *Handler) introspect(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input tokenRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Token == "" {
		respond.Error(writer, request, apperr.ValidationError("Token is required").WithCode("MISSING_TOKEN"))
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	result := handler.authService.Introspect(request.Context(), input.Token)

	// ── 3. Presentation Output (bare, no envelope) ────────────────────────

	respond.JSON(writer, http.StatusOK, result)
}

// revoke handles POST /revoke requests.
//
// Revocation accepts any string and always reports success — the caller
// learns nothing about the token's validity from this endpoint.
func (handler *Handler) revoke(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input tokenRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Token == "" {
		respond.Error(writer, request, apperr.ValidationError("Token is required").WithCode("MISSING_TOKEN"))
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	if err := handler.authService.Revoke(request.Context(), input.Token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.OKMessage(writer, "Token revoked", nil)
}
