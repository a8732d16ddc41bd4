// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package notification

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
	requestutil "github.com/Muhammad-Mk/kong-microservices/internal/platform/request"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/respond"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/validate"
	"github.com/Muhammad-Mk/kong-microservices/pkg/pagination"
)

// demoFallbackUserID scopes channel operations without a forwarded identity
// to the first demo consumer, matching the unprotected demo gateway routes.
const demoFallbackUserID = "user-001"

// defaultDevicePlatform labels device registrations that omit a platform.
const defaultDevicePlatform = "unknown"

// Handler implements the notification service's HTTP endpoints.
type Handler struct {
	notificationService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{notificationService: service}
}

// Routes returns a [chi.Router] configured with the notification endpoints.
//
// # Endpoints
//   - POST   /send                      : Send a notification.
//   - GET    /list                      : Paginated inbox, newest first.
//   - DELETE /delete/{notification_id}  : Remove a notification.
//   - POST   /{notification_id}/read    : Mark a notification read.
//   - GET    /{notification_id}         : One notification by ID.
//   - GET    /channels/preferences      : Current user's channel settings.
//   - PUT    /channels/preferences      : Partial preferences update.
//   - POST   /channels/verify           : Dispatch a verification code.
//   - POST   /channels/register-device  : Register a push device token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/send", handler.send)
	router.Get("/list", handler.list)
	router.Delete("/delete/{notification_id}", handler.delete)

	router.Route("/channels", func(channels chi.Router) {
		channels.Get("/preferences", handler.getPreferences)
		channels.Put("/preferences", handler.updatePreferences)
		channels.Post("/verify", handler.verifyChannel)
		channels.Post("/register-device", handler.registerDevice)
	})

	router.Post("/{notification_id}/read", handler.markRead)
	router.Get("/{notification_id}", handler.get)

	return router
}

// callerID resolves the acting user from the forwarded identity headers.
func callerID(request *http.Request) string {
	if identity := requestutil.Identity(request); identity != nil && identity.UserID != "" {
		return identity.UserID
	}
	return demoFallbackUserID
}

// sendRequest carries a new notification.
type sendRequest struct {
	UserID   string         `json:"user_id"`
	Type     string         `json:"type"`
	Channel  string         `json:"channel"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata"`
}

// send handles POST /send.
func (handler *Handler) send(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input sendRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.Required("user_id", input.UserID).
		Required("type", input.Type).
		Required("channel", input.Channel).
		Required("title", input.Title).
		Required("message", input.Message)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if !slices.Contains(ValidTypes, input.Type) {
		respond.Error(writer, request, apperr.ValidationError(
			"Invalid notification type. Valid types: "+strings.Join(ValidTypes, ", "),
		).WithCode("INVALID_TYPE"))
		return
	}
	if !slices.Contains(ValidChannels, input.Channel) {
		respond.Error(writer, request, apperr.ValidationError(
			"Invalid channel. Valid channels: "+strings.Join(ValidChannels, ", "),
		).WithCode("INVALID_CHANNEL"))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	notification, err := handler.notificationService.Send(request.Context(), SendInput{
		UserID:   input.UserID,
		Type:     Type(input.Type),
		Channel:  Channel(input.Channel),
		Title:    input.Title,
		Message:  input.Message,
		Metadata: input.Metadata,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, "Notification sent successfully", notification)
}

// list handles GET /list with page, limit, type, channel, read, and status
// parameters.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := ListFilter{
		Type:    query.Get("type"),
		Channel: query.Get("channel"),
		Status:  query.Get("status"),
	}
	if raw := query.Get("read"); raw != "" {
		read := strings.EqualFold(raw, "true")
		filter.Read = &read
	}

	respond.OK(writer, handler.notificationService.List(request.Context(), params, filter))
}

// get handles GET /{notification_id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	notification, err := handler.notificationService.Get(request.Context(), requestutil.Param(request, "notification_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, notification)
}

// delete handles DELETE /delete/{notification_id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.notificationService.Delete(request.Context(), requestutil.Param(request, "notification_id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKMessage(writer, "Notification deleted successfully", nil)
}

// markRead handles POST /{notification_id}/read.
func (handler *Handler) markRead(writer http.ResponseWriter, request *http.Request) {
	notification, err := handler.notificationService.MarkRead(request.Context(), requestutil.Param(request, "notification_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKMessage(writer, "Notification marked as read", notification)
}

// getPreferences handles GET /channels/preferences.
func (handler *Handler) getPreferences(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.notificationService.GetPreferences(request.Context(), callerID(request)))
}

// preferencesRequest carries a partial preferences update. Absent sections
// leave the saved values untouched.
type preferencesRequest struct {
	Channels *struct {
		Email *EmailPreference `json:"email"`
		SMS   *SMSPreference   `json:"sms"`
		Push  *PushPreference  `json:"push"`
		InApp *InAppPreference `json:"in_app"`
	} `json:"preferences"`
	NotificationTypes map[string][]string `json:"notification_types"`
	QuietHours        *QuietHours         `json:"quiet_hours"`
}

// updatePreferences handles PUT /channels/preferences.
func (handler *Handler) updatePreferences(writer http.ResponseWriter, request *http.Request) {
	var input preferencesRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := PreferencesUpdate{
		Types:      input.NotificationTypes,
		QuietHours: input.QuietHours,
	}
	if input.Channels != nil {
		update.Email = input.Channels.Email
		update.SMS = input.Channels.SMS
		update.Push = input.Channels.Push
		update.InApp = input.Channels.InApp
	}

	preferences := handler.notificationService.UpdatePreferences(request.Context(), callerID(request), update)

	respond.OKMessage(writer, "Preferences updated successfully", preferences)
}

// verifyRequest names the channel to verify.
type verifyRequest struct {
	Channel string `json:"channel"`
}

// verifyChannel handles POST /channels/verify.
func (handler *Handler) verifyChannel(writer http.ResponseWriter, request *http.Request) {
	var input verifyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Channel == "" {
		respond.Error(writer, request, apperr.ValidationError("Channel is required").WithCode("MISSING_CHANNEL"))
		return
	}
	if input.Channel != string(ChannelEmail) && input.Channel != string(ChannelSMS) {
		respond.Error(writer, request, apperr.ValidationError("Only email and sms channels can be verified").WithCode("INVALID_CHANNEL"))
		return
	}

	issue := handler.notificationService.VerifyChannel(request.Context(), callerID(request), input.Channel)

	respond.OKMessage(writer, "Verification code sent to your "+input.Channel, issue)
}

// registerDeviceRequest carries a push device token.
type registerDeviceRequest struct {
	DeviceToken string `json:"device_token"`
	Platform    string `json:"platform"`
}

// registerDevice handles POST /channels/register-device.
func (handler *Handler) registerDevice(writer http.ResponseWriter, request *http.Request) {
	var input registerDeviceRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.DeviceToken == "" {
		respond.Error(writer, request, apperr.ValidationError("Device token is required").WithCode("MISSING_TOKEN"))
		return
	}

	platform := input.Platform
	if platform == "" {
		platform = defaultDevicePlatform
	}

	registration := handler.notificationService.RegisterDevice(request.Context(), callerID(request), input.DeviceToken, platform)

	respond.OKMessage(writer, "Device registered successfully", registration)
}
