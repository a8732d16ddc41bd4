// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/Muhammad-Mk/kong-microservices/internal/platform/request"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/respond"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/validate"
	"github.com/Muhammad-Mk/kong-microservices/pkg/pagination"
)

// demoFallbackUserID is used when no identity header was forwarded. The demo
// gateway config does not protect every route, so the profile endpoints
// resolve to the first seeded user rather than failing.
const demoFallbackUserID = "user-001"

// Handler implements the user service's HTTP endpoints.
type Handler struct {
	userService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{userService: service}
}

// Routes returns a [chi.Router] configured with the user endpoints.
//
// # Endpoints
//   - GET    /profile                     : Caller's own profile.
//   - PUT    /profile                     : Update caller's own profile.
//   - GET    /list                        : Paginated directory with search.
//   - GET    /{user_id}                   : One profile by ID.
//   - DELETE /{user_id}                   : Deactivate (soft delete).
//   - POST   /admin/users/create          : Direct enrollment.
//   - PUT    /admin/users/{user_id}/role  : Role change.
//   - POST   /admin/users/{user_id}/activate : Re-activation.
//   - GET    /admin/stats                 : Directory aggregate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/profile", handler.getProfile)
	router.Put("/profile", handler.updateProfile)
	router.Get("/list", handler.list)

	router.Route("/admin", func(admin chi.Router) {
		admin.Post("/users/create", handler.adminCreate)
		admin.Put("/users/{user_id}/role", handler.adminUpdateRole)
		admin.Post("/users/{user_id}/activate", handler.adminActivate)
		admin.Get("/stats", handler.adminStats)
	})

	router.Get("/{user_id}", handler.getUser)
	router.Delete("/{user_id}", handler.deleteUser)

	return router
}

// callerID resolves the acting user from the forwarded identity headers,
// falling back to the demo fixture when the route is unprotected.
func callerID(request *http.Request) string {
	if identity := requestutil.Identity(request); identity != nil && identity.UserID != "" {
		return identity.UserID
	}
	return demoFallbackUserID
}

// getProfile handles GET /profile.
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.userService.GetProfile(request.Context(), callerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// updateProfileRequest carries the editable profile fields.
type updateProfileRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// updateProfile handles PUT /profile.
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.userService.UpdateProfile(request.Context(), callerID(request), ProfileUpdate{
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKMessage(writer, "Profile updated successfully", profile)
}

// list handles GET /list with page, limit, and search query parameters.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	profiles, meta := handler.userService.List(request.Context(), params, search)

	respond.OK(writer, map[string]any{
		"users":      profiles,
		"pagination": meta,
	})
}

// getUser handles GET /{user_id}.
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.userService.GetProfile(request.Context(), requestutil.Param(request, "user_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// deleteUser handles DELETE /{user_id}. Soft delete only.
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	if err := handler.userService.Deactivate(request.Context(), requestutil.Param(request, "user_id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKMessage(writer, "User deleted successfully", nil)
}

// adminCreateRequest carries the admin enrollment payload.
type adminCreateRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

// adminCreate handles POST /admin/users/create.
func (handler *Handler) adminCreate(writer http.ResponseWriter, request *http.Request) {
	var input adminCreateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required("username", input.Username).
		Required("email", input.Email).
		Required("first_name", input.FirstName).
		Required("last_name", input.LastName).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.userService.AdminCreate(request.Context(), AdminCreateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "User created successfully", profile)
}

// adminUpdateRoleRequest carries the new role.
type adminUpdateRoleRequest struct {
	Role string `json:"role"`
}

// adminUpdateRole handles PUT /admin/users/{user_id}/role.
func (handler *Handler) adminUpdateRole(writer http.ResponseWriter, request *http.Request) {
	var input adminUpdateRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Role == "" {
		respond.Error(writer, request, validate.RequiredError("role", "Role is required").WithCode("MISSING_ROLE"))
		return
	}

	userID := requestutil.Param(request, "user_id")
	if err := handler.userService.UpdateRole(request.Context(), userID, input.Role); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKMessage(writer, "User role updated successfully", map[string]any{
		"user_id": userID,
		"role":    input.Role,
	})
}

// adminActivate handles POST /admin/users/{user_id}/activate.
func (handler *Handler) adminActivate(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "user_id")
	if err := handler.userService.Activate(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKMessage(writer, "User activated successfully", map[string]any{
		"user_id":   userID,
		"is_active": true,
	})
}

// adminStats handles GET /admin/stats.
func (handler *Handler) adminStats(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.userService.GetStats(request.Context()))
}
