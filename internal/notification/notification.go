// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package notification

import "time"

// Type classifies what a notification is about.
type Type string

const (
	TypeTradeExecuted Type = "trade_executed"
	TypePriceAlert    Type = "price_alert"
	TypeSystem        Type = "system"
	TypeAccount       Type = "account"
	TypeSecurity      Type = "security"
)

// ValidTypes lists every accepted notification type, in display order.
var ValidTypes = []string{
	string(TypeTradeExecuted),
	string(TypePriceAlert),
	string(TypeSystem),
	string(TypeAccount),
	string(TypeSecurity),
}

// Channel is a delivery medium.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
	ChannelInApp Channel = "in_app"
)

// ValidChannels lists every accepted delivery channel, in display order.
var ValidChannels = []string{
	string(ChannelEmail),
	string(ChannelSMS),
	string(ChannelPush),
	string(ChannelInApp),
}

// Status is a notification's delivery state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
)

// Notification is one message sent to a user over a channel.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      Type      `json:"type"`
	Channel   Channel   `json:"channel"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`

	// DeliveredAt is null while the notification is still pending.
	DeliveredAt *time.Time `json:"delivered_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// EmailPreference configures the email channel for one user.
type EmailPreference struct {
	Enabled  bool   `json:"enabled"`
	Address  string `json:"address"`
	Verified bool   `json:"verified"`
}

// SMSPreference configures the sms channel for one user.
type SMSPreference struct {
	Enabled  bool   `json:"enabled"`
	Phone    string `json:"phone"`
	Verified bool   `json:"verified"`
}

// PushPreference configures the push channel for one user.
type PushPreference struct {
	Enabled      bool     `json:"enabled"`
	DeviceTokens []string `json:"device_tokens"`
}

// InAppPreference configures the in-app channel for one user.
type InAppPreference struct {
	Enabled bool `json:"enabled"`
}

// ChannelSettings groups the per-channel configuration.
type ChannelSettings struct {
	Email EmailPreference `json:"email"`
	SMS   SMSPreference   `json:"sms"`
	Push  PushPreference  `json:"push"`
	InApp InAppPreference `json:"in_app"`
}

// QuietHours suppresses deliveries inside a daily window.
type QuietHours struct {
	Enabled  bool   `json:"enabled"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"timezone"`
}

// Preferences is a user's full notification configuration: channel settings,
// the channel routing per notification type, and quiet hours.
type Preferences struct {
	UserID            string              `json:"user_id"`
	Channels          ChannelSettings     `json:"preferences"`
	NotificationTypes map[string][]string `json:"notification_types"`
	QuietHours        QuietHours          `json:"quiet_hours"`
	UpdatedAt         *time.Time          `json:"updated_at,omitempty"`
}

// DefaultPreferences is the configuration applied to users who never saved
// one: email and push on, sms off, everything routed in-app only.
func DefaultPreferences(userID string) *Preferences {
	types := make(map[string][]string, len(ValidTypes))
	for _, notificationType := range ValidTypes {
		types[notificationType] = []string{string(ChannelInApp)}
	}

	return &Preferences{
		UserID: userID,
		Channels: ChannelSettings{
			Email: EmailPreference{Enabled: true},
			SMS:   SMSPreference{Enabled: false},
			Push:  PushPreference{Enabled: true, DeviceTokens: []string{}},
			InApp: InAppPreference{Enabled: true},
		},
		NotificationTypes: types,
		QuietHours: QuietHours{
			Enabled:  false,
			Start:    "22:00",
			End:      "08:00",
			Timezone: "UTC",
		},
	}
}
