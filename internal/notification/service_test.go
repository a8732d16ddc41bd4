// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package notification_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Mk/kong-microservices/internal/notification"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
	"github.com/Muhammad-Mk/kong-microservices/pkg/pagination"
	"github.com/Muhammad-Mk/kong-microservices/pkg/pointer"
)

func newSeededService() *notification.Service {
	return notification.NewService(notification.NewSeededStore(), notification.NewSeededPreferenceStore())
}

func TestService_Send(t *testing.T) {
	service := newSeededService()

	sent, err := service.Send(context.Background(), notification.SendInput{
		UserID:  "user-002",
		Type:    notification.TypeSecurity,
		Channel: notification.ChannelEmail,
		Title:   "New login detected",
		Message: "A new login to your account was detected from Berlin, DE",
	})
	require.NoError(t, err)

	// Delivery is simulated: every notification lands immediately.
	assert.Equal(t, notification.StatusDelivered, sent.Status)
	require.NotNil(t, sent.DeliveredAt)
	assert.False(t, sent.Read)
	assert.NotEmpty(t, sent.ID)

	fetched, err := service.Get(context.Background(), sent.ID)
	require.NoError(t, err)
	assert.Equal(t, "New login detected", fetched.Title)
}

func TestService_List(t *testing.T) {
	service := newSeededService()
	params := pagination.Params{Page: 1, Limit: 10}

	t.Run("sorted_newest_first", func(t *testing.T) {
		result := service.List(context.Background(), params, notification.ListFilter{})

		require.Len(t, result.Notifications, 3)
		assert.Equal(t, "notif-003", result.Notifications[0].ID)
		assert.Equal(t, "notif-001", result.Notifications[2].ID)
		assert.Equal(t, 3, result.Pagination.Total)
	})

	t.Run("filter_by_type", func(t *testing.T) {
		result := service.List(context.Background(), params, notification.ListFilter{Type: "price_alert"})
		require.Len(t, result.Notifications, 1)
		assert.Equal(t, "notif-002", result.Notifications[0].ID)
	})

	t.Run("filter_by_channel_and_status", func(t *testing.T) {
		result := service.List(context.Background(), params, notification.ListFilter{Channel: "in_app", Status: "pending"})
		require.Len(t, result.Notifications, 1)
		assert.Equal(t, "notif-003", result.Notifications[0].ID)
	})

	t.Run("unread_count_ignores_filters", func(t *testing.T) {
		result := service.List(context.Background(), params, notification.ListFilter{Read: pointer.To(true)})

		require.Len(t, result.Notifications, 1)
		assert.Equal(t, "notif-001", result.Notifications[0].ID)
		// notif-002 and notif-003 stay unread regardless of the read filter.
		assert.Equal(t, 2, result.UnreadCount)
	})
}

func TestService_MarkRead(t *testing.T) {
	service := newSeededService()

	marked, err := service.MarkRead(context.Background(), "notif-002")
	require.NoError(t, err)
	assert.True(t, marked.Read)
	require.NotNil(t, marked.ReadAt)

	result := service.List(context.Background(), pagination.Params{Page: 1, Limit: 10}, notification.ListFilter{})
	assert.Equal(t, 1, result.UnreadCount)

	_, err = service.MarkRead(context.Background(), "notif-404")
	require.Error(t, err)
	assert.Equal(t, "NOTIFICATION_NOT_FOUND", apperr.As(err).Code)
}

func TestService_Delete(t *testing.T) {
	service := newSeededService()

	require.NoError(t, service.Delete(context.Background(), "notif-001"))

	_, err := service.Get(context.Background(), "notif-001")
	require.Error(t, err)
	assert.Equal(t, "NOTIFICATION_NOT_FOUND", apperr.As(err).Code)

	err = service.Delete(context.Background(), "notif-001")
	require.Error(t, err)
	assert.Equal(t, "NOTIFICATION_NOT_FOUND", apperr.As(err).Code)
}

func TestService_Preferences(t *testing.T) {
	service := newSeededService()

	t.Run("seeded_user", func(t *testing.T) {
		preferences := service.GetPreferences(context.Background(), "user-001")

		assert.Equal(t, "john@example.com", preferences.Channels.Email.Address)
		assert.True(t, preferences.Channels.Email.Verified)
		assert.ElementsMatch(t, []string{"email", "sms", "push"}, preferences.NotificationTypes["security"])
	})

	t.Run("unknown_user_gets_defaults", func(t *testing.T) {
		preferences := service.GetPreferences(context.Background(), "user-999")

		assert.Equal(t, "user-999", preferences.UserID)
		assert.True(t, preferences.Channels.Email.Enabled)
		assert.False(t, preferences.Channels.SMS.Enabled)
		assert.Equal(t, []string{"in_app"}, preferences.NotificationTypes["trade_executed"])
		assert.Equal(t, "22:00", preferences.QuietHours.Start)
	})

	t.Run("partial_update", func(t *testing.T) {
		updated := service.UpdatePreferences(context.Background(), "user-001", notification.PreferencesUpdate{
			SMS:   &notification.SMSPreference{Enabled: true, Phone: "+1987654321", Verified: true},
			Types: map[string][]string{"price_alert": {"email", "push"}},
		})

		assert.True(t, updated.Channels.SMS.Enabled)
		assert.Equal(t, "+1987654321", updated.Channels.SMS.Phone)
		// Untouched sections survive the partial update.
		assert.Equal(t, "john@example.com", updated.Channels.Email.Address)
		assert.Equal(t, []string{"email", "push"}, updated.NotificationTypes["price_alert"])
		assert.ElementsMatch(t, []string{"email", "in_app"}, updated.NotificationTypes["system"])
		require.NotNil(t, updated.UpdatedAt)

		persisted := service.GetPreferences(context.Background(), "user-001")
		assert.True(t, persisted.Channels.SMS.Enabled)
	})

	t.Run("update_for_unknown_user_starts_from_defaults", func(t *testing.T) {
		updated := service.UpdatePreferences(context.Background(), "user-777", notification.PreferencesUpdate{
			QuietHours: &notification.QuietHours{Enabled: true, Start: "23:00", End: "07:00", Timezone: "UTC"},
		})

		assert.True(t, updated.QuietHours.Enabled)
		assert.True(t, updated.Channels.Email.Enabled)

		persisted := service.GetPreferences(context.Background(), "user-777")
		assert.True(t, persisted.QuietHours.Enabled)
	})
}

func TestService_RegisterDevice(t *testing.T) {
	service := newSeededService()

	t.Run("appends_new_token", func(t *testing.T) {
		registration := service.RegisterDevice(context.Background(), "user-001", "token-xyz-789", "ios")

		assert.Equal(t, "token-xyz-789", registration.DeviceToken)
		assert.Equal(t, 2, registration.TotalDevices)
	})

	t.Run("idempotent_for_known_token", func(t *testing.T) {
		registration := service.RegisterDevice(context.Background(), "user-001", "token-xyz-789", "ios")
		assert.Equal(t, 2, registration.TotalDevices)
	})

	t.Run("enables_push_for_new_user", func(t *testing.T) {
		registration := service.RegisterDevice(context.Background(), "user-555", "token-first", "android")
		assert.Equal(t, 1, registration.TotalDevices)

		preferences := service.GetPreferences(context.Background(), "user-555")
		assert.True(t, preferences.Channels.Push.Enabled)
		assert.Equal(t, []string{"token-first"}, preferences.Channels.Push.DeviceTokens)
	})
}

func TestService_VerifyChannel(t *testing.T) {
	service := newSeededService()

	issue := service.VerifyChannel(context.Background(), "user-001", "email")

	assert.Equal(t, "email", issue.Channel)
	assert.Equal(t, 600, issue.ExpiresIn)
}
