// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package auth

import (
	"context"
	"sync"
	"time"
)

// revocationPruneInterval is how often the memory registry sweeps out entries
// whose natural expiry has passed.
const revocationPruneInterval = 1 * time.Minute

// RevocationRegistry is the denylist consulted before any token is honored.
//
// # Contract
//
//   - Revoke is idempotent: revoking an already-revoked token is a no-op.
//   - IsRevoked is O(1) average — it sits on the hot verification path.
//   - Entries may be dropped once expiresAt has passed: an expired token is
//     rejected by the codec regardless, so pruning never changes observable
//     behavior.
type RevocationRegistry interface {
	// Revoke adds the token to the denylist until its natural expiry.
	Revoke(context context.Context, token string, expiresAt time.Time) error

	// IsRevoked reports whether the token is currently denylisted.
	IsRevoked(context context.Context, token string) (bool, error)
}

// MemoryRevocationRegistry is the process-local [RevocationRegistry].
//
// It keys the denylist by the wire-encoded token string, matching the
// verification path which holds only the raw compact token.
type MemoryRevocationRegistry struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewMemoryRevocationRegistry constructs the registry and starts its pruning
// janitor. The janitor stops when the given context is cancelled.
func NewMemoryRevocationRegistry(context context.Context) *MemoryRevocationRegistry {
	registry := &MemoryRevocationRegistry{
		revoked: make(map[string]time.Time),
	}

	go registry.janitor(context)

	return registry
}

// Revoke adds the token to the denylist. Idempotent.
func (registry *MemoryRevocationRegistry) Revoke(context context.Context, token string, expiresAt time.Time) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.revoked[token] = expiresAt
	return nil
}

// IsRevoked reports whether the token is currently denylisted.
func (registry *MemoryRevocationRegistry) IsRevoked(context context.Context, token string) (bool, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	_, found := registry.revoked[token]
	return found, nil
}

// janitor periodically drops entries whose natural expiry has passed.
//
// A revoked-and-expired token stays rejected after pruning (the codec refuses
// it on expiry), and re-revoking it simply re-inserts an entry that the next
// sweep removes — so idempotent-revoke semantics survive pruning.
func (registry *MemoryRevocationRegistry) janitor(context context.Context) {
	ticker := time.NewTicker(revocationPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			registry.mu.Lock()
			for token, expiresAt := range registry.revoked {
				if now.After(expiresAt) {
					delete(registry.revoked, token)
				}
			}
			registry.mu.Unlock()
		case <-context.Done():
			return
		}
	}
}
