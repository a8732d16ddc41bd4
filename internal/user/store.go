// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package user

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
)

// ProfileStore is the in-process directory backing the user service.
//
// # Concurrency
//
// A single RWMutex guards all maps. Like the auth credential store, the
// email-uniqueness check in Create happens under the write lock.
type ProfileStore struct {
	mu   sync.RWMutex
	byID map[string]*Profile
}

// NewProfileStore constructs an empty directory.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{byID: make(map[string]*Profile)}
}

// NewSeededProfileStore constructs a directory pre-loaded with the demo
// fixtures. The fixed IDs match the Kong consumer entries shipped with the
// demo gateway configuration, so forwarded-identity headers resolve out of
// the box.
func NewSeededProfileStore() *ProfileStore {
	store := NewProfileStore()

	seedTime := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	store.byID["user-001"] = &Profile{
		ID:        "user-001",
		Username:  "john_doe",
		Email:     "john@example.com",
		FirstName: "John",
		LastName:  "Doe",
		Phone:     "+1234567890",
		Role:      RoleUser,
		Active:    true,
		CreatedAt: seedTime,
		UpdatedAt: seedTime,
	}

	seedTime = time.Date(2024, 1, 10, 8, 15, 0, 0, time.UTC)
	store.byID["user-002"] = &Profile{
		ID:        "user-002",
		Username:  "jane_smith",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Smith",
		Phone:     "+0987654321",
		Role:      RoleAdmin,
		Active:    true,
		CreatedAt: seedTime,
		UpdatedAt: seedTime.Add(54*time.Hour + 5*time.Minute),
	}

	return store
}

// Find returns the profile with the given ID, or [apperr.NotFound].
func (store *ProfileStore) Find(context context.Context, id string) (*Profile, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	profile, found := store.byID[id]
	if !found {
		return nil, apperr.NotFound("User").WithCode("USER_NOT_FOUND")
	}

	clone := *profile
	return &clone, nil
}

// All returns every profile, sorted by ID for deterministic listings.
func (store *ProfileStore) All(context context.Context) []*Profile {
	store.mu.RLock()
	defer store.mu.RUnlock()

	profiles := make([]*Profile, 0, len(store.byID))
	for _, profile := range store.byID {
		clone := *profile
		profiles = append(profiles, &clone)
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return profiles
}

// Create persists a new profile, enforcing email uniqueness atomically.
func (store *ProfileStore) Create(context context.Context, profile *Profile) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.byID {
		if existing.Email == profile.Email {
			return apperr.Conflict("User with this email already exists").WithCode("DUPLICATE_EMAIL")
		}
	}

	clone := *profile
	store.byID[profile.ID] = &clone
	return nil
}

// Update replaces the stored profile identified by profile.ID.
func (store *ProfileStore) Update(context context.Context, profile *Profile) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, found := store.byID[profile.ID]; !found {
		return apperr.NotFound("User").WithCode("USER_NOT_FOUND")
	}

	clone := *profile
	store.byID[profile.ID] = &clone
	return nil
}
