// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package notification

import (
	"context"
	"slices"
	"time"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/ctxutil"
	"github.com/Muhammad-Mk/kong-microservices/pkg/pagination"
	"github.com/Muhammad-Mk/kong-microservices/pkg/slice"
	"github.com/Muhammad-Mk/kong-microservices/pkg/uuid"
)

// verificationCodeTTL is how long a channel verification code stays valid.
const verificationCodeTTL = 10 * time.Minute

// Service implements the notification and channel-preference use cases.
type Service struct {
	notifications *Store
	preferences   *PreferenceStore
}

// NewService constructs a new [Service] over the given stores.
func NewService(notifications *Store, preferences *PreferenceStore) *Service {
	return &Service{notifications: notifications, preferences: preferences}
}

// SendInput holds a new notification's parameters.
type SendInput struct {
	UserID   string
	Type     Type
	Channel  Channel
	Title    string
	Message  string
	Metadata map[string]any
}

// Send creates a notification and simulates its delivery: there is no real
// transport behind the demo, so every notification is marked delivered
// immediately.
func (service *Service) Send(context context.Context, input SendInput) (*Notification, error) {
	now := time.Now().UTC()

	notification := &Notification{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Type:        input.Type,
		Channel:     input.Channel,
		Title:       input.Title,
		Message:     input.Message,
		Status:      StatusDelivered,
		Read:        false,
		CreatedAt:   now,
		DeliveredAt: &now,
		Metadata:    input.Metadata,
	}

	if err := service.notifications.Create(context, notification); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("notification sent",
		"notification_id", notification.ID,
		"user_id", notification.UserID,
		"channel", notification.Channel,
	)

	return notification, nil
}

// ListFilter narrows the notification listing. Read is nil when the filter
// is not applied.
type ListFilter struct {
	Type    string
	Channel string
	Status  string
	Read    *bool
}

// ListResult is one page of notifications plus the inbox-wide unread count.
type ListResult struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int             `json:"unread_count"`
	Pagination    pagination.Meta `json:"pagination"`
}

// List returns one page of notifications, newest first.
//
// The unread count always covers the whole inbox, not just the filtered page.
func (service *Service) List(context context.Context, params pagination.Params, filter ListFilter) *ListResult {
	notifications := service.notifications.All(context)

	if filter.Type != "" {
		notifications = slice.Filter(notifications, func(notification *Notification) bool {
			return string(notification.Type) == filter.Type
		})
	}
	if filter.Channel != "" {
		notifications = slice.Filter(notifications, func(notification *Notification) bool {
			return string(notification.Channel) == filter.Channel
		})
	}
	if filter.Status != "" {
		notifications = slice.Filter(notifications, func(notification *Notification) bool {
			return string(notification.Status) == filter.Status
		})
	}
	if filter.Read != nil {
		notifications = slice.Filter(notifications, func(notification *Notification) bool {
			return notification.Read == *filter.Read
		})
	}

	total := len(notifications)

	return &ListResult{
		Notifications: pagination.Slice(notifications, params),
		UnreadCount:   service.notifications.CountUnread(context),
		Pagination:    pagination.NewMeta(params.Page, params.Limit, total),
	}
}

// Get returns one notification by ID.
func (service *Service) Get(context context.Context, id string) (*Notification, error) {
	return service.notifications.Find(context, id)
}

// Delete removes a notification from the inbox.
func (service *Service) Delete(context context.Context, id string) error {
	return service.notifications.Delete(context, id)
}

// MarkRead marks a notification as read and stamps the read time. Marking an
// already-read notification refreshes the timestamp.
func (service *Service) MarkRead(context context.Context, id string) (*Notification, error) {
	notification, err := service.notifications.Find(context, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	notification.Read = true
	notification.ReadAt = &now

	if err := service.notifications.Update(context, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

// GetPreferences returns a user's saved preferences, falling back to the
// defaults for users who never configured anything. The defaults are not
// persisted by a read.
func (service *Service) GetPreferences(context context.Context, userID string) *Preferences {
	if preferences := service.preferences.Find(context, userID); preferences != nil {
		return preferences
	}
	return DefaultPreferences(userID)
}

// PreferencesUpdate carries a partial preferences change. Nil sections are
// left untouched.
type PreferencesUpdate struct {
	Email      *EmailPreference
	SMS        *SMSPreference
	Push       *PushPreference
	InApp      *InAppPreference
	Types      map[string][]string
	QuietHours *QuietHours
}

// UpdatePreferences applies a partial update on top of the user's current
// preferences (defaults when none were saved yet). Type routes merge per
// key; channel sections and quiet hours replace as a unit.
func (service *Service) UpdatePreferences(context context.Context, userID string, update PreferencesUpdate) *Preferences {
	preferences := service.GetPreferences(context, userID)

	if update.Email != nil {
		preferences.Channels.Email = *update.Email
	}
	if update.SMS != nil {
		preferences.Channels.SMS = *update.SMS
	}
	if update.Push != nil {
		preferences.Channels.Push = *update.Push
	}
	if update.InApp != nil {
		preferences.Channels.InApp = *update.InApp
	}
	for notificationType, channels := range update.Types {
		preferences.NotificationTypes[notificationType] = channels
	}
	if update.QuietHours != nil {
		preferences.QuietHours = *update.QuietHours
	}

	now := time.Now().UTC()
	preferences.UpdatedAt = &now

	service.preferences.Save(context, preferences)
	return preferences
}

// VerificationIssue reports a verification code dispatch.
type VerificationIssue struct {
	Channel   string `json:"channel"`
	ExpiresIn int    `json:"expires_in"`
}

// VerifyChannel simulates sending a verification code for an address-bearing
// channel. The demo never delivers a real code; only the dispatch metadata
// is returned.
func (service *Service) VerifyChannel(context context.Context, userID, channel string) *VerificationIssue {
	ctxutil.GetLogger(context).Info("verification code sent",
		"user_id", userID,
		"channel", channel,
	)

	return &VerificationIssue{
		Channel:   channel,
		ExpiresIn: int(verificationCodeTTL.Seconds()),
	}
}

// DeviceRegistration reports a push device registration.
type DeviceRegistration struct {
	DeviceToken  string `json:"device_token"`
	Platform     string `json:"platform"`
	TotalDevices int    `json:"total_devices"`
}

// RegisterDevice adds a device token to the user's push channel. Registration
// is idempotent: a token already on file is not duplicated. Registering a
// device enables push delivery.
func (service *Service) RegisterDevice(context context.Context, userID, deviceToken, platform string) *DeviceRegistration {
	preferences := service.GetPreferences(context, userID)

	preferences.Channels.Push.Enabled = true
	if !slices.Contains(preferences.Channels.Push.DeviceTokens, deviceToken) {
		preferences.Channels.Push.DeviceTokens = append(preferences.Channels.Push.DeviceTokens, deviceToken)
	}

	now := time.Now().UTC()
	preferences.UpdatedAt = &now
	service.preferences.Save(context, preferences)

	return &DeviceRegistration{
		DeviceToken:  deviceToken,
		Platform:     platform,
		TotalDevices: len(preferences.Channels.Push.DeviceTokens),
	}
}
