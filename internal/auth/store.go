// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package auth

import "context"

// UserRepository defines the persistence contract for the credential store.
//
// # Contract
//
// Implementations must make Create atomic with respect to the email
// uniqueness check: of two concurrent Create calls for the same email,
// exactly one succeeds and the other returns [apperr.Conflict].
type UserRepository interface {
	// FindByEmail returns the user registered under the given email,
	// or [apperr.NotFound] if no such user exists.
	FindByEmail(context context.Context, email string) (*User, error)

	// FindByID returns the user with the given ID,
	// or [apperr.NotFound] if no such user exists.
	FindByID(context context.Context, id string) (*User, error)

	// Create persists a new user. Returns [apperr.Conflict] if the email
	// is already registered.
	Create(context context.Context, user *User) error

	// Update replaces the stored user identified by user.ID.
	// Returns [apperr.NotFound] if the user does not exist.
	Update(context context.Context, user *User) error
}
