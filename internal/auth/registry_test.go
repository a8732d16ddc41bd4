// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Mk/kong-microservices/internal/auth"
)

func TestMemoryRevocationRegistry_RevokeAndLookup(t *testing.T) {
	registry := auth.NewMemoryRevocationRegistry(context.Background())
	expiry := time.Now().Add(time.Hour)

	revoked, err := registry.IsRevoked(context.Background(), "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, registry.Revoke(context.Background(), "token-a", expiry))

	revoked, err = registry.IsRevoked(context.Background(), "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	// A different token string is unaffected.
	revoked, err = registry.IsRevoked(context.Background(), "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryRevocationRegistry_Idempotent(t *testing.T) {
	registry := auth.NewMemoryRevocationRegistry(context.Background())
	expiry := time.Now().Add(time.Hour)

	require.NoError(t, registry.Revoke(context.Background(), "token-a", expiry))
	require.NoError(t, registry.Revoke(context.Background(), "token-a", expiry))

	revoked, err := registry.IsRevoked(context.Background(), "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryRevocationRegistry_ConcurrentAccess(t *testing.T) {
	registry := auth.NewMemoryRevocationRegistry(context.Background())
	expiry := time.Now().Add(time.Hour)

	// Hammer the registry from many goroutines; the race detector validates
	// the locking discipline.
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			token := "token-" + string(rune('a'+n%8))
			_ = registry.Revoke(context.Background(), token, expiry)
			_, _ = registry.IsRevoked(context.Background(), token)
		}(i)
	}
	wg.Wait()

	revoked, err := registry.IsRevoked(context.Background(), "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)
}
