// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package notification

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
)

// Store is the in-process notification inbox.
type Store struct {
	mu   sync.RWMutex
	byID map[string]*Notification
}

// NewStore constructs an empty inbox.
func NewStore() *Store {
	return &Store{byID: make(map[string]*Notification)}
}

// NewSeededStore pre-loads the demo fixtures so the list endpoint returns
// data out of the box.
func NewSeededStore() *Store {
	store := NewStore()

	delivered1 := time.Date(2024, 1, 15, 10, 30, 15, 0, time.UTC)
	store.byID["notif-001"] = &Notification{
		ID: "notif-001", UserID: "user-001", Type: TypeTradeExecuted, Channel: ChannelEmail,
		Title:   "Trade Executed Successfully",
		Message: "Your buy order for 100 shares of AAPL has been executed at $175.50",
		Status:  StatusDelivered, Read: true,
		CreatedAt: time.Date(2024, 1, 15, 10, 30, 10, 0, time.UTC), DeliveredAt: &delivered1,
	}

	delivered2 := time.Date(2024, 1, 16, 9, 0, 5, 0, time.UTC)
	store.byID["notif-002"] = &Notification{
		ID: "notif-002", UserID: "user-001", Type: TypePriceAlert, Channel: ChannelPush,
		Title:   "Price Alert: GOOGL",
		Message: "GOOGL has reached your target price of $145.00",
		Status:  StatusDelivered, Read: false,
		CreatedAt: time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC), DeliveredAt: &delivered2,
	}

	store.byID["notif-003"] = &Notification{
		ID: "notif-003", UserID: "user-002", Type: TypeSystem, Channel: ChannelInApp,
		Title:   "System Maintenance Scheduled",
		Message: "Scheduled maintenance on January 20, 2024 from 2:00 AM to 4:00 AM UTC",
		Status:  StatusPending, Read: false,
		CreatedAt: time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC),
	}

	return store
}

// Find returns the notification with the given ID, or [apperr.NotFound].
func (store *Store) Find(context context.Context, id string) (*Notification, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	notification, found := store.byID[id]
	if !found {
		return nil, apperr.NotFound("Notification").WithCode("NOTIFICATION_NOT_FOUND")
	}

	clone := *notification
	return &clone, nil
}

// All returns every notification sorted by creation time descending.
func (store *Store) All(context context.Context) []*Notification {
	store.mu.RLock()
	defer store.mu.RUnlock()

	notifications := make([]*Notification, 0, len(store.byID))
	for _, notification := range store.byID {
		clone := *notification
		notifications = append(notifications, &clone)
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications
}

// CountUnread returns the number of unread notifications across the inbox.
func (store *Store) CountUnread(context context.Context) int {
	store.mu.RLock()
	defer store.mu.RUnlock()

	unread := 0
	for _, notification := range store.byID {
		if !notification.Read {
			unread++
		}
	}
	return unread
}

// Create persists a new notification.
func (store *Store) Create(context context.Context, notification *Notification) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	clone := *notification
	store.byID[notification.ID] = &clone
	return nil
}

// Update replaces the stored notification identified by notification.ID.
func (store *Store) Update(context context.Context, notification *Notification) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, found := store.byID[notification.ID]; !found {
		return apperr.NotFound("Notification").WithCode("NOTIFICATION_NOT_FOUND")
	}

	clone := *notification
	store.byID[notification.ID] = &clone
	return nil
}

// Delete removes the notification with the given ID.
func (store *Store) Delete(context context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, found := store.byID[id]; !found {
		return apperr.NotFound("Notification").WithCode("NOTIFICATION_NOT_FOUND")
	}

	delete(store.byID, id)
	return nil
}

// PreferenceStore is the in-process per-user channel configuration.
type PreferenceStore struct {
	mu     sync.RWMutex
	byUser map[string]*Preferences
}

// NewPreferenceStore constructs an empty preference store.
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{byUser: make(map[string]*Preferences)}
}

// NewSeededPreferenceStore pre-loads the first demo consumer's preferences.
func NewSeededPreferenceStore() *PreferenceStore {
	store := NewPreferenceStore()

	updated := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	store.byUser["user-001"] = &Preferences{
		UserID: "user-001",
		Channels: ChannelSettings{
			Email: EmailPreference{Enabled: true, Address: "john@example.com", Verified: true},
			SMS:   SMSPreference{Enabled: false, Phone: "+1234567890", Verified: false},
			Push:  PushPreference{Enabled: true, DeviceTokens: []string{"token-abc-123"}},
			InApp: InAppPreference{Enabled: true},
		},
		NotificationTypes: map[string][]string{
			string(TypeTradeExecuted): {"email", "push", "in_app"},
			string(TypePriceAlert):    {"push", "in_app"},
			string(TypeSystem):        {"email", "in_app"},
			string(TypeAccount):       {"email", "sms"},
			string(TypeSecurity):      {"email", "sms", "push"},
		},
		QuietHours: QuietHours{Enabled: false, Start: "22:00", End: "08:00", Timezone: "UTC"},
		UpdatedAt:  &updated,
	}

	return store
}

// Find returns the saved preferences for a user, or nil when none exist.
func (store *PreferenceStore) Find(context context.Context, userID string) *Preferences {
	store.mu.RLock()
	defer store.mu.RUnlock()

	preferences, found := store.byUser[userID]
	if !found {
		return nil
	}

	return clonePreferences(preferences)
}

// Save persists a user's preferences, replacing any previous version.
func (store *PreferenceStore) Save(context context.Context, preferences *Preferences) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.byUser[preferences.UserID] = clonePreferences(preferences)
}

// clonePreferences deep-copies the mutable members so callers can never
// mutate the store through a returned pointer.
func clonePreferences(preferences *Preferences) *Preferences {
	clone := *preferences

	clone.Channels.Push.DeviceTokens = append([]string(nil), preferences.Channels.Push.DeviceTokens...)

	clone.NotificationTypes = make(map[string][]string, len(preferences.NotificationTypes))
	for notificationType, channels := range preferences.NotificationTypes {
		clone.NotificationTypes[notificationType] = append([]string(nil), channels...)
	}

	return &clone
}
