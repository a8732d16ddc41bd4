// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

// Package user implements the profile and directory service.
//
// # Architecture
//
// The package mirrors the auth service's three-layer split: entity and store
// (profile.go, store.go), use-case service (service.go), and HTTP delivery
// (http.go). Identity arrives via the gateway-forwarded consumer headers;
// this service never sees a token.
package user

import "time"

// # Roles

// Role is the coarse authorization level attached to a profile.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleViewer    Role = "viewer"
)

// ValidRoles enumerates every role the admin endpoints accept.
var ValidRoles = []string{
	string(RoleUser),
	string(RoleAdmin),
	string(RoleModerator),
	string(RoleViewer),
}

// # Entity

// Profile is the directory entry for one account.
//
// # Lifecycle
//
// Profiles are never hard-deleted. DELETE deactivates; an admin can
// re-activate later.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
