// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

// Package auth implements the token issuance and revocation service.
//
// # Architecture
//
// The package follows a three-layer split: entities and repository contracts
// (user.go, store.go), the use-case service (service.go), and the HTTP
// delivery layer (http.go). The service layer is technology-agnostic — it
// knows nothing about HTTP or Redis.
package auth

import "time"

// User is the credential-store entity for one registered account.
//
// # Lifecycle
//
// Users are never hard-deleted. Deactivation flips Active to false, which
// blocks login and refresh while keeping the record (and its unique email)
// in place.
type User struct {
	// ID is the opaque, time-sortable account identifier (UUIDv7).
	ID string `json:"id"`

	// Username is the display handle. Not unique — email is the login key.
	Username string `json:"username"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// PasswordHash is the bcrypt digest. Never serialized to clients.
	PasswordHash string `json:"-"`

	// Active gates login and refresh. Deactivated accounts keep their tokens
	// until expiry; the refresh path is where staleness gets re-checked.
	Active bool `json:"is_active"`

	// CreatedAt is the registration timestamp (UTC).
	CreatedAt time.Time `json:"created_at"`
}
