// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package auth_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Mk/kong-microservices/internal/auth"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/sec"
)

const testSecret = "unit-test-signing-secret"

// newTestService builds a fully wired Service on in-memory collaborators.
func newTestService(t *testing.T) (*auth.Service, *sec.Codec) {
	t.Helper()

	codec, err := sec.NewCodec(testSecret, "HS256", "kong-demo-auth")
	require.NoError(t, err)

	repository := auth.NewMemoryUserRepository()
	registry := auth.NewMemoryRevocationRegistry(context.Background())

	return auth.NewService(repository, registry, codec, time.Hour, 168*time.Hour), codec
}

// registerTestUser enrolls a ready-to-login account.
func registerTestUser(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	return user
}

func TestService_Register_HashesPassword(t *testing.T) {
	service, _ := newTestService(t)

	user := registerTestUser(t, service)

	assert.NotEmpty(t, user.ID)
	assert.True(t, user.Active)
	// The stored hash must never equal the plain password.
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct-horse-battery", user.PasswordHash))
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	service, _ := newTestService(t)
	registerTestUser(t, service)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice2",
		Email:    "Alice@Example.com", // Same email, different case
		Password: "another-password",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
	assert.Equal(t, "USER_EXISTS", ae.Code)
}

func TestService_Login_Success(t *testing.T) {
	service, _ := newTestService(t)
	user := registerTestUser(t, service)

	pair, err := service.Login(context.Background(), "alice@example.com", "correct-horse-battery")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(3600), pair.ExpiresIn)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, user.ID, pair.User.ID)

	// Both tokens share the subject but carry independent token IDs.
	accessClaims, err := service.Verify(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := service.Verify(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, user.ID, accessClaims.Subject)
	assert.Equal(t, user.ID, refreshClaims.Subject)
	assert.NotEqual(t, accessClaims.ID, refreshClaims.ID)

	// Refresh tokens never carry profile claims.
	assert.Equal(t, sec.TokenTypeAccess, accessClaims.TokenType)
	assert.Equal(t, sec.TokenTypeRefresh, refreshClaims.TokenType)
	assert.Empty(t, refreshClaims.Email)
	assert.Empty(t, refreshClaims.Username)
}

func TestService_Login_Failures(t *testing.T) {
	service, _ := newTestService(t)
	registerTestUser(t, service)

	tests := []struct {
		name     string
		email    string
		password string
		wantCode string
	}{
		{"wrong_password", "alice@example.com", "wrong", "INVALID_CREDENTIALS"},
		{"unknown_email", "nobody@example.com", "correct-horse-battery", "INVALID_CREDENTIALS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.email, tt.password)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)

			// Constant failure shape: wrong password and unknown email are
			// indistinguishable to the client.
			assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

func TestService_Login_InactiveAccount(t *testing.T) {
	codec, err := sec.NewCodec(testSecret, "HS256", "kong-demo-auth")
	require.NoError(t, err)

	repository := auth.NewMemoryUserRepository()
	registry := auth.NewMemoryRevocationRegistry(context.Background())
	service := auth.NewService(repository, registry, codec, time.Hour, 168*time.Hour)

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "bob-password-123",
	})
	require.NoError(t, err)

	// Deactivate directly through the repository.
	user.Active = false
	require.NoError(t, repository.Update(context.Background(), user))

	_, err = service.Login(context.Background(), "bob@example.com", "bob-password-123")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
	assert.Equal(t, "ACCOUNT_INACTIVE", ae.Code)
}

func TestService_Verify_RoundTrip(t *testing.T) {
	service, _ := newTestService(t)
	user := registerTestUser(t, service)

	pair, err := service.Login(context.Background(), "alice@example.com", "correct-horse-battery")
	require.NoError(t, err)

	claims, err := service.Verify(context.Background(), pair.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
}

func TestService_Verify_Expired(t *testing.T) {
	service, codec := newTestService(t)

	// Mint a token that expired a minute ago.
	expiredToken, err := codec.Encode("user-1", "a@b.c", "a", sec.TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = service.Verify(context.Background(), expiredToken)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TOKEN_EXPIRED", ae.Code)
}

func TestService_Verify_Garbage(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Verify(context.Background(), "not-a-token")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_TOKEN", ae.Code)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
}

func TestService_Verify_Revoked(t *testing.T) {
	service, _ := newTestService(t)
	registerTestUser(t, service)

	pair, err := service.Login(context.Background(), "alice@example.com", "correct-horse-battery")
	require.NoError(t, err)

	require.NoError(t, service.Revoke(context.Background(), pair.AccessToken))

	_, err = service.Verify(context.Background(), pair.AccessToken)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TOKEN_REVOKED", ae.Code)
}

func TestService_Verify_RevokedWinsOverExpired(t *testing.T) {
	service, codec := newTestService(t)

	// A token that is BOTH revoked and expired must report revoked:
	// the denylist is consulted before the codec.
	expiredToken, err := codec.Encode("user-1", "", "", sec.TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	require.NoError(t, service.Revoke(context.Background(), expiredToken))

	_, err = service.Verify(context.Background(), expiredToken)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TOKEN_REVOKED", ae.Code)
}

func TestService_Refresh_Success(t *testing.T) {
	service, _ := newTestService(t)
	user := registerTestUser(t, service)

	pair, err := service.Login(context.Background(), "alice@example.com", "correct-horse-battery")
	require.NoError(t, err)

	result, err := service.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, int64(3600), result.ExpiresIn)

	// The fresh access token verifies and names the same subject.
	claims, err := service.Verify(context.Background(), result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, sec.TokenTypeAccess, claims.TokenType)
}

func TestService_Refresh_RejectsAccessToken(t *testing.T) {
	service, _ := newTestService(t)
	registerTestUser(t, service)

	pair, err := service.Login(context.Background(), "alice@example.com", "correct-horse-battery")
	require.NoError(t, err)

	// An access token can never mint more access tokens.
	_, err = service.Refresh(context.Background(), pair.AccessToken)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_TOKEN_TYPE", ae.Code)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
}

func TestService_Refresh_DeactivatedSubject(t *testing.T) {
	codec, err := sec.NewCodec(testSecret, "HS256", "kong-demo-auth")
	require.NoError(t, err)

	repository := auth.NewMemoryUserRepository()
	registry := auth.NewMemoryRevocationRegistry(context.Background())
	service := auth.NewService(repository, registry, codec, time.Hour, 168*time.Hour)

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "carol-password-1",
	})
	require.NoError(t, err)

	pair, err := service.Login(context.Background(), "carol@example.com", "carol-password-1")
	require.NoError(t, err)

	// Deactivate after the refresh token was issued. The token still
	// verifies, but the staleness re-check must refuse it.
	user.Active = false
	require.NoError(t, repository.Update(context.Background(), user))

	_, err = service.Refresh(context.Background(), pair.RefreshToken)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	assert.Equal(t, "USER_NOT_FOUND", ae.Code)
}

func TestService_Revoke_Idempotent(t *testing.T) {
	service, _ := newTestService(t)
	registerTestUser(t, service)

	pair, err := service.Login(context.Background(), "alice@example.com", "correct-horse-battery")
	require.NoError(t, err)

	// Revoking twice (and revoking garbage) must all succeed.
	require.NoError(t, service.Revoke(context.Background(), pair.AccessToken))
	require.NoError(t, service.Revoke(context.Background(), pair.AccessToken))
	require.NoError(t, service.Revoke(context.Background(), "complete-garbage"))
}

func TestService_Introspect(t *testing.T) {
	service, _ := newTestService(t)
	user := registerTestUser(t, service)

	pair, err := service.Login(context.Background(), "alice@example.com", "correct-horse-battery")
	require.NoError(t, err)

	t.Run("active_token", func(t *testing.T) {
		result := service.Introspect(context.Background(), pair.AccessToken)

		assert.True(t, result.Active)
		assert.Equal(t, user.ID, result.Subject)
		assert.Equal(t, sec.TokenTypeAccess, result.TokenType)
		assert.Equal(t, "kong-demo-auth", result.Issuer)
		assert.NotEmpty(t, result.TokenID)
		assert.Greater(t, result.ExpiresAt, result.IssuedAt)
	})

	t.Run("garbage_is_inactive_not_error", func(t *testing.T) {
		result := service.Introspect(context.Background(), "garbage")

		assert.False(t, result.Active)
		assert.Empty(t, result.Subject)
	})

	t.Run("revoked_is_inactive", func(t *testing.T) {
		require.NoError(t, service.Revoke(context.Background(), pair.RefreshToken))

		result := service.Introspect(context.Background(), pair.RefreshToken)
		assert.False(t, result.Active)
	})
}

func TestMemoryUserRepository_ConcurrentCreate(t *testing.T) {
	repository := auth.NewMemoryUserRepository()

	// Two concurrent registrations for the same email: exactly one wins.
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func(n int) {
			results <- repository.Create(context.Background(), &auth.User{
				ID:    "id-" + string(rune('a'+n)),
				Email: "race@example.com",
			})
		}(i)
	}

	var successes, conflicts int
	for i := 0; i < 2; i++ {
		if err := <-results; err == nil {
			successes++
		} else {
			require.Equal(t, "USER_EXISTS", apperr.As(err).Code)
			conflicts++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}
