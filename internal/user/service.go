// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package user

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
	"github.com/Muhammad-Mk/kong-microservices/pkg/pagination"
	"github.com/Muhammad-Mk/kong-microservices/pkg/slice"
	"github.com/Muhammad-Mk/kong-microservices/pkg/uuid"
)

// Service implements the profile and directory use cases.
type Service struct {
	store *ProfileStore
}

// NewService constructs a new [Service] over the given store.
func NewService(store *ProfileStore) *Service {
	return &Service{store: store}
}

// GetProfile returns the profile for the given account ID.
func (service *Service) GetProfile(context context.Context, id string) (*Profile, error) {
	return service.store.Find(context, id)
}

// ProfileUpdate carries the editable profile fields. Nil pointers mean
// "leave unchanged" — the zero value is a legal phone number, so presence
// must be explicit.
type ProfileUpdate struct {
	Username  *string
	FirstName *string
	LastName  *string
	Phone     *string
}

// UpdateProfile applies the allowed-field update to the caller's own profile.
//
// Role, email, and the active flag are deliberately NOT editable here — those
// changes go through the admin endpoints.
func (service *Service) UpdateProfile(context context.Context, id string, update ProfileUpdate) (*Profile, error) {
	profile, err := service.store.Find(context, id)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		profile.Username = *update.Username
	}
	if update.FirstName != nil {
		profile.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		profile.LastName = *update.LastName
	}
	if update.Phone != nil {
		profile.Phone = *update.Phone
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := service.store.Update(context, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// List returns one page of the directory, optionally filtered by a
// case-insensitive search over username, email, and name fields.
func (service *Service) List(context context.Context, params pagination.Params, search string) ([]*Profile, pagination.Meta) {
	profiles := service.store.All(context)

	if search != "" {
		needle := strings.ToLower(search)
		profiles = slice.Filter(profiles, func(profile *Profile) bool {
			return strings.Contains(strings.ToLower(profile.Username), needle) ||
				strings.Contains(strings.ToLower(profile.Email), needle) ||
				strings.Contains(strings.ToLower(profile.FirstName), needle) ||
				strings.Contains(strings.ToLower(profile.LastName), needle)
		})
	}

	total := len(profiles)
	page := pagination.Slice(profiles, params)

	return page, pagination.NewMeta(params.Page, params.Limit, total)
}

// Deactivate soft-deletes a profile. The record stays in the directory with
// Active set to false.
func (service *Service) Deactivate(context context.Context, id string) error {
	profile, err := service.store.Find(context, id)
	if err != nil {
		return err
	}

	profile.Active = false
	profile.UpdatedAt = time.Now().UTC()

	return service.store.Update(context, profile)
}

// Activate re-enables a deactivated profile (admin operation).
func (service *Service) Activate(context context.Context, id string) error {
	profile, err := service.store.Find(context, id)
	if err != nil {
		return err
	}

	profile.Active = true
	profile.UpdatedAt = time.Now().UTC()

	return service.store.Update(context, profile)
}

// AdminCreateInput holds the fields for admin-side account creation.
type AdminCreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Role      string
}

// AdminCreate enrolls a profile directly, bypassing self-registration.
//
// An empty role defaults to "user"; an invalid role is rejected.
func (service *Service) AdminCreate(context context.Context, input AdminCreateInput) (*Profile, error) {
	role := input.Role
	if role == "" {
		role = string(RoleUser)
	}
	if !slices.Contains(ValidRoles, role) {
		return nil, apperr.ValidationError("Invalid role. Valid roles: "+strings.Join(ValidRoles, ", ")).WithCode("INVALID_ROLE")
	}

	now := time.Now().UTC()
	profile := &Profile{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      Role(role),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.store.Create(context, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// UpdateRole changes a profile's authorization level (admin operation).
func (service *Service) UpdateRole(context context.Context, id, role string) error {
	if !slices.Contains(ValidRoles, role) {
		return apperr.ValidationError("Invalid role. Valid roles: "+strings.Join(ValidRoles, ", ")).WithCode("INVALID_ROLE")
	}

	profile, err := service.store.Find(context, id)
	if err != nil {
		return err
	}

	profile.Role = Role(role)
	profile.UpdatedAt = time.Now().UTC()

	return service.store.Update(context, profile)
}

// Stats is the directory-wide aggregate exposed to admins.
type Stats struct {
	TotalUsers        int            `json:"total_users"`
	ActiveUsers       int            `json:"active_users"`
	InactiveUsers     int            `json:"inactive_users"`
	RolesDistribution map[string]int `json:"roles_distribution"`
	Timestamp         time.Time      `json:"timestamp"`
}

// GetStats computes the directory aggregate in one pass.
func (service *Service) GetStats(context context.Context) *Stats {
	profiles := service.store.All(context)

	stats := &Stats{
		TotalUsers:        len(profiles),
		RolesDistribution: make(map[string]int),
		Timestamp:         time.Now().UTC(),
	}

	for _, profile := range profiles {
		if profile.Active {
			stats.ActiveUsers++
		}
		stats.RolesDistribution[string(profile.Role)]++
	}
	stats.InactiveUsers = stats.TotalUsers - stats.ActiveUsers

	return stats
}
