// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package user_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
	"github.com/Muhammad-Mk/kong-microservices/internal/user"
	"github.com/Muhammad-Mk/kong-microservices/pkg/pagination"
	"github.com/Muhammad-Mk/kong-microservices/pkg/pointer"
)

func newSeededService() *user.Service {
	return user.NewService(user.NewSeededProfileStore())
}

func TestService_GetProfile(t *testing.T) {
	service := newSeededService()

	profile, err := service.GetProfile(context.Background(), "user-001")
	require.NoError(t, err)
	assert.Equal(t, "john_doe", profile.Username)
	assert.Equal(t, user.RoleUser, profile.Role)

	_, err = service.GetProfile(context.Background(), "user-999")
	require.Error(t, err)
	assert.Equal(t, "USER_NOT_FOUND", apperr.As(err).Code)
}

func TestService_UpdateProfile_AllowedFieldsOnly(t *testing.T) {
	service := newSeededService()

	updated, err := service.UpdateProfile(context.Background(), "user-001", user.ProfileUpdate{
		FirstName: pointer.To("Johnny"),
		Phone:     pointer.To("+1555000111"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Johnny", updated.FirstName)
	assert.Equal(t, "+1555000111", updated.Phone)
	// Untouched fields survive a partial update.
	assert.Equal(t, "john_doe", updated.Username)
	assert.Equal(t, "john@example.com", updated.Email)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestService_List(t *testing.T) {
	service := newSeededService()

	t.Run("all", func(t *testing.T) {
		profiles, meta := service.List(context.Background(), pagination.Params{Page: 1, Limit: 10}, "")
		assert.Len(t, profiles, 2)
		assert.Equal(t, 2, meta.Total)
		assert.Equal(t, 1, meta.TotalPages)
	})

	t.Run("search_matches_name", func(t *testing.T) {
		profiles, meta := service.List(context.Background(), pagination.Params{Page: 1, Limit: 10}, "jane")
		require.Len(t, profiles, 1)
		assert.Equal(t, "jane_smith", profiles[0].Username)
		assert.Equal(t, 1, meta.Total)
	})

	t.Run("search_is_case_insensitive", func(t *testing.T) {
		profiles, _ := service.List(context.Background(), pagination.Params{Page: 1, Limit: 10}, "DOE")
		require.Len(t, profiles, 1)
		assert.Equal(t, "john_doe", profiles[0].Username)
	})

	t.Run("page_past_end_is_empty", func(t *testing.T) {
		profiles, meta := service.List(context.Background(), pagination.Params{Page: 5, Limit: 10}, "")
		assert.Empty(t, profiles)
		assert.Equal(t, 2, meta.Total)
	})
}

func TestService_DeactivateAndActivate(t *testing.T) {
	service := newSeededService()

	require.NoError(t, service.Deactivate(context.Background(), "user-001"))

	// Soft delete: the record is still there, just inactive.
	profile, err := service.GetProfile(context.Background(), "user-001")
	require.NoError(t, err)
	assert.False(t, profile.Active)

	require.NoError(t, service.Activate(context.Background(), "user-001"))
	profile, err = service.GetProfile(context.Background(), "user-001")
	require.NoError(t, err)
	assert.True(t, profile.Active)
}

func TestService_AdminCreate(t *testing.T) {
	service := newSeededService()

	t.Run("defaults_role_to_user", func(t *testing.T) {
		profile, err := service.AdminCreate(context.Background(), user.AdminCreateInput{
			Username:  "new_user",
			Email:     "new@example.com",
			FirstName: "New",
			LastName:  "User",
		})
		require.NoError(t, err)
		assert.Equal(t, user.RoleUser, profile.Role)
		assert.True(t, profile.Active)
		assert.NotEmpty(t, profile.ID)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		_, err := service.AdminCreate(context.Background(), user.AdminCreateInput{
			Username:  "clone",
			Email:     "john@example.com",
			FirstName: "John",
			LastName:  "Clone",
		})
		require.Error(t, err)
		ae := apperr.As(err)
		assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
		assert.Equal(t, "DUPLICATE_EMAIL", ae.Code)
	})

	t.Run("invalid_role", func(t *testing.T) {
		_, err := service.AdminCreate(context.Background(), user.AdminCreateInput{
			Username:  "x",
			Email:     "x@example.com",
			FirstName: "X",
			LastName:  "Y",
			Role:      "superuser",
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_ROLE", apperr.As(err).Code)
	})
}

func TestService_UpdateRole(t *testing.T) {
	service := newSeededService()

	require.NoError(t, service.UpdateRole(context.Background(), "user-001", "moderator"))

	profile, err := service.GetProfile(context.Background(), "user-001")
	require.NoError(t, err)
	assert.Equal(t, user.RoleModerator, profile.Role)

	err = service.UpdateRole(context.Background(), "user-001", "root")
	require.Error(t, err)
	assert.Equal(t, "INVALID_ROLE", apperr.As(err).Code)
}

func TestService_GetStats(t *testing.T) {
	service := newSeededService()
	require.NoError(t, service.Deactivate(context.Background(), "user-001"))

	stats := service.GetStats(context.Background())

	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.ActiveUsers)
	assert.Equal(t, 1, stats.InactiveUsers)
	assert.Equal(t, 1, stats.RolesDistribution["user"])
	assert.Equal(t, 1, stats.RolesDistribution["admin"])
}
