// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
)

// MemoryUserRepository is the in-process [UserRepository] implementation.
//
// # Concurrency
//
// All state is guarded by a single RWMutex. Holding one lock across the
// check-then-insert sequence in [MemoryUserRepository.Create] is what makes
// the email uniqueness guarantee hold under concurrent registration.
//
// # Durability
//
// None — the store is process-local and lost on restart. Persistence is a
// deliberate non-goal for the demo platform.
type MemoryUserRepository struct {
	mu sync.RWMutex

	// byID is the primary map, keyed by user ID.
	byID map[string]*User

	// byEmail is the uniqueness index, keyed by normalized email.
	byEmail map[string]string
}

// NewMemoryUserRepository constructs an empty in-memory credential store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

// normalizeEmail lowercases the email so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail returns the user registered under the given email.
func (repository *MemoryUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	id, found := repository.byEmail[normalizeEmail(email)]
	if !found {
		return nil, apperr.NotFound("User")
	}

	// Return a copy so callers cannot mutate shared state without Update.
	clone := *repository.byID[id]
	return &clone, nil
}

// FindByID returns the user with the given ID.
func (repository *MemoryUserRepository) FindByID(context context.Context, id string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, found := repository.byID[id]
	if !found {
		return nil, apperr.NotFound("User")
	}

	clone := *user
	return &clone, nil
}

// Create persists a new user, enforcing email uniqueness atomically.
func (repository *MemoryUserRepository) Create(context context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	email := normalizeEmail(user.Email)

	// Check and insert under the same lock: exactly one of two concurrent
	// registrations for the same email can win.
	if _, exists := repository.byEmail[email]; exists {
		return apperr.Conflict("User with this email already exists").WithCode("USER_EXISTS")
	}

	clone := *user
	repository.byID[user.ID] = &clone
	repository.byEmail[email] = user.ID

	return nil
}

// Update replaces the stored user identified by user.ID.
func (repository *MemoryUserRepository) Update(context context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.byID[user.ID]; !found {
		return apperr.NotFound("User")
	}

	clone := *user
	repository.byID[user.ID] = &clone

	return nil
}
