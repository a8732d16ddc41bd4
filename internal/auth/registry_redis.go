// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package auth

import (
	stdctx "context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/constants"
)

// RedisRevocationRegistry is the shared [RevocationRegistry] for deployments
// running more than one auth instance.
//
// # Key Taxonomy
//
// Each denylist entry is a key "auth:denylist:<token>" whose TTL equals the
// time until the token's natural expiry. Redis handles pruning for us — the
// key simply vanishes when the token would have been rejected anyway.
type RedisRevocationRegistry struct {
	client *redis.Client
}

// NewRedisRevocationRegistry wraps an already-connected Redis client.
func NewRedisRevocationRegistry(client *redis.Client) *RedisRevocationRegistry {
	return &RedisRevocationRegistry{client: client}
}

// key builds the namespaced denylist key for a token.
func (registry *RedisRevocationRegistry) key(token string) string {
	return constants.RedisPrefixDenylist + token
}

// Revoke denylists the token until its natural expiry. Idempotent — SET on an
// existing key just refreshes it.
func (registry *RedisRevocationRegistry) Revoke(context stdctx.Context, token string, expiresAt time.Time) error {
	timeToLive := time.Until(expiresAt)

	// Already past natural expiry: the codec rejects this token on its own,
	// and Redis refuses non-positive TTLs. Honor idempotency and do nothing.
	if timeToLive <= 0 {
		return nil
	}

	if err := registry.client.Set(context, registry.key(token), "1", timeToLive).Err(); err != nil {
		return fmt.Errorf("auth_registry_revoke_failed: %w", err)
	}

	return nil
}

// IsRevoked reports whether the token is currently denylisted.
func (registry *RedisRevocationRegistry) IsRevoked(context stdctx.Context, token string) (bool, error) {
	count, err := registry.client.Exists(context, registry.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("auth_registry_lookup_failed: %w", err)
	}

	return count > 0, nil
}
