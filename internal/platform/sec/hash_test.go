// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/sec"
)

func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("my-secret-password")
	require.NoError(t, err)

	assert.NotEqual(t, "my-secret-password", hash)
	assert.True(t, sec.CheckPasswordHash("my-secret-password", hash))
	assert.False(t, sec.CheckPasswordHash("wrong-password", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := sec.HashPassword("same-password")
	require.NoError(t, err)
	second, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	// bcrypt salts every hash, so identical inputs produce distinct digests.
	assert.NotEqual(t, first, second)
}
