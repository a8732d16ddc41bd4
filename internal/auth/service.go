// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/sec"
	"github.com/Muhammad-Mk/kong-microservices/pkg/uuid"
)

// Service implements the token issuance and revocation use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, issuance,
// or verification logic must be reviewed by the security team.
//
// # State
//
// The service itself is stateless; all mutable state lives in the injected
// [UserRepository] and [RevocationRegistry].
type Service struct {
	userRepository UserRepository
	registry       RevocationRegistry
	codec          *sec.Codec

	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	registry RevocationRegistry,
	codec *sec.Codec,
	accessTokenTTL time.Duration,
	refreshTokenTTL time.Duration,
) *Service {
	return &Service{
		userRepository:  userRepo,
		registry:        registry,
		codec:           codec,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register validates, hashes, and persists a brand new user account.
//
// # Parameters
//   - context: Context for the store operation.
//   - input: The user-provided registration details.
//
// # Returns
//   - A pointer to the newly created [*User].
//   - Returns [apperr.Conflict] (USER_EXISTS) if the email is taken.
//
// # Business Rules
//   - Emails must be unique (case-insensitive).
//   - Passwords are bcrypt-hashed before storage, never stored plain.
//   - New accounts start active.
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	// ── 1. Security ───────────────────────────────────────────────────────

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 2. Entity Construction ────────────────────────────────────────────

	user := &User{
		ID:           uuid.New(), // Time-sortable ID for chronological log ordering.
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	// The repository enforces email uniqueness atomically and returns the
	// client-safe USER_EXISTS conflict on a duplicate.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// TokenPair is the credential set minted on a successful login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         *User  `json:"user"`
}

// Login validates credentials and mints an access/refresh token pair.
//
// # Parameters
//   - context: Context for the store operation.
//   - email: The account's login email.
//   - password: The plain-text password to verify.
//
// # Returns
//   - A [*TokenPair] with both tokens sharing the same subject but carrying
//     independent jti and expiry values.
//   - Returns [apperr.Unauthorized] (INVALID_CREDENTIALS) on any credential
//     mismatch — the response shape never reveals whether the email exists.
//   - Returns [apperr.Forbidden] (ACCOUNT_INACTIVE) for deactivated accounts.
func (service *Service) Login(context context.Context, email, password string) (*TokenPair, error) {
	// ── 1. Fetch User Profile ─────────────────────────────────────────────

	// Return a generic unauthorized error to prevent email enumeration.
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid email or password").WithCode("INVALID_CREDENTIALS")
	}

	// ── 2. Security Verification ──────────────────────────────────────────

	// bcrypt performs a constant-time comparison internally.
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password").WithCode("INVALID_CREDENTIALS")
	}

	// Credential check precedes the active check: a deactivated account only
	// learns its status after proving it owns the password.
	if !user.Active {
		return nil, apperr.Forbidden("Account is deactivated").WithCode("ACCOUNT_INACTIVE")
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────

	// Access token carries the profile claims the gateway forwards downstream.
	accessToken, err := service.codec.Encode(user.ID, user.Email, user.Username, sec.TokenTypeAccess, service.accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	// Refresh token lives much longer and carries only the subject.
	refreshToken, err := service.codec.Encode(user.ID, "", "", sec.TokenTypeRefresh, service.refreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(service.accessTokenTTL.Seconds()),
		User:         user,
	}, nil
}

// Verify checks a presented token against the denylist and the codec.
//
// # Check Order
//
// Revocation is consulted BEFORE the signature/expiry check, so a token that
// is both revoked and expired reports TOKEN_REVOKED. Verification never
// touches the credential store — a deactivated user's outstanding tokens stay
// valid until expiry, and the refresh path is where staleness is re-checked.
//
// # Returns
//   - Verified [*sec.Claims].
//   - [apperr.Unauthorized] with code TOKEN_REVOKED, TOKEN_EXPIRED, or
//     INVALID_TOKEN.
func (service *Service) Verify(context context.Context, token string) (*sec.Claims, error) {
	// ── 1. Denylist Check ─────────────────────────────────────────────────

	revoked, err := service.registry.IsRevoked(context, token)
	if err != nil {
		return nil, fmt.Errorf("auth_service_denylist_check_failed: %w", err)
	}
	if revoked {
		return nil, apperr.Unauthorized("Token has been revoked").WithCode("TOKEN_REVOKED")
	}

	// ── 2. Cryptographic Verification ─────────────────────────────────────

	claims, err := service.codec.Decode(token)
	if err != nil {
		if errors.Is(err, sec.ErrTokenExpired) {
			return nil, apperr.Unauthorized("Token has expired").WithCode("TOKEN_EXPIRED")
		}
		// Malformed and bad-signature tokens collapse to one client-facing
		// shape — the distinction only matters in server logs.
		return nil, apperr.Unauthorized("Invalid token").WithCode("INVALID_TOKEN")
	}

	return claims, nil
}

// RefreshResult is the payload minted by a successful token refresh.
type RefreshResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Refresh exchanges a valid refresh token for a fresh access token.
//
// # Flow
//  1. Run the refresh token through [Service.Verify] (denylist + codec).
//  2. Reject non-refresh tokens (INVALID_TOKEN_TYPE) — an access token can
//     never be used to mint more access tokens.
//  3. Re-resolve the subject against the credential store. This is the
//     staleness re-check point: a deleted or deactivated account is refused
//     with USER_NOT_FOUND even though its refresh token still verifies.
func (service *Service) Refresh(context context.Context, refreshToken string) (*RefreshResult, error) {
	// ── 1. Token Verification ─────────────────────────────────────────────

	claims, err := service.Verify(context, refreshToken)
	if err != nil {
		return nil, err
	}

	// ── 2. Type Discrimination ────────────────────────────────────────────

	if claims.TokenType != sec.TokenTypeRefresh {
		return nil, apperr.Unauthorized("Invalid token type").WithCode("INVALID_TOKEN_TYPE")
	}

	// ── 3. Subject Re-Resolution ──────────────────────────────────────────

	user, err := service.userRepository.FindByID(context, claims.Subject)
	if err != nil || !user.Active {
		return nil, apperr.NotFound("User").WithCode("USER_NOT_FOUND")
	}

	// ── 4. Access Token Issuance ──────────────────────────────────────────

	accessToken, err := service.codec.Encode(user.ID, user.Email, user.Username, sec.TokenTypeAccess, service.accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	return &RefreshResult{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(service.accessTokenTTL.Seconds()),
	}, nil
}

// Revoke unconditionally denylists the presented token.
//
// # Semantics
//
// Revocation is idempotent and accepts anything — expired tokens, garbage
// strings, tokens this service never minted. The caller learns nothing about
// the token's validity from this operation.
func (service *Service) Revoke(context context.Context, token string) error {
	// Best-effort expiry extraction sizes the denylist entry's TTL. Garbage
	// strings get the maximum token lifetime as a conservative fallback.
	expiresAt, ok := service.codec.ExpiryHint(token)
	if !ok {
		expiresAt = time.Now().Add(service.refreshTokenTTL)
	}

	if err := service.registry.Revoke(context, token, expiresAt); err != nil {
		return fmt.Errorf("auth_service_revoke_failed: %w", err)
	}

	return nil
}

// IntrospectionResult is the bare RFC 7662-style introspection payload.
//
// When Active is false, no other field is populated.
type IntrospectionResult struct {
	Active    bool          `json:"active"`
	Subject   string        `json:"sub,omitempty"`
	Email     string        `json:"email,omitempty"`
	Username  string        `json:"username,omitempty"`
	TokenType sec.TokenType `json:"type,omitempty"`
	Issuer    string        `json:"iss,omitempty"`
	IssuedAt  int64         `json:"iat,omitempty"`
	ExpiresAt int64         `json:"exp,omitempty"`
	TokenID   string        `json:"jti,omitempty"`
}

// Introspect reports token state without ever failing.
//
// # Fail-Soft
//
// Every verification failure — revoked, expired, malformed, bad signature —
// collapses to {active: false}. Resource servers polling this endpoint treat
// any inactive result identically, so the distinction would only leak
// information.
func (service *Service) Introspect(context context.Context, token string) *IntrospectionResult {
	claims, err := service.Verify(context, token)
	if err != nil {
		return &IntrospectionResult{Active: false}
	}

	result := &IntrospectionResult{
		Active:    true,
		Subject:   claims.Subject,
		Email:     claims.Email,
		Username:  claims.Username,
		TokenType: claims.TokenType,
		Issuer:    claims.Issuer,
		TokenID:   claims.ID,
	}

	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Unix()
	}

	return result
}
