// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/middleware"
	"github.com/Muhammad-Mk/kong-microservices/internal/user"
)

// newTestRouter wires the handler behind the forwarded-identity middleware,
// the same shape the real server uses.
func newTestRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.ForwardedIdentity())
	router.Mount("/", user.NewHandler(newSeededService()).Routes())
	return router
}

func doRequest(t *testing.T, router http.Handler, method, path string, body map[string]any, consumerID string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	if consumerID != "" {
		request.Header.Set("X-Consumer-Custom-ID", consumerID)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

func TestHTTP_Profile(t *testing.T) {
	router := newTestRouter()

	t.Run("forwarded_identity_resolves", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/profile", nil, "user-002")
		require.Equal(t, http.StatusOK, recorder.Code)

		data := decodeBody(t, recorder)["data"].(map[string]any)
		assert.Equal(t, "jane_smith", data["username"])
	})

	t.Run("no_identity_falls_back_to_demo_user", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/profile", nil, "")
		require.Equal(t, http.StatusOK, recorder.Code)

		data := decodeBody(t, recorder)["data"].(map[string]any)
		assert.Equal(t, "john_doe", data["username"])
	})

	t.Run("update", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPut, "/profile", map[string]any{
			"first_name": "Janet",
		}, "user-002")

		require.Equal(t, http.StatusOK, recorder.Code)
		data := decodeBody(t, recorder)["data"].(map[string]any)
		assert.Equal(t, "Janet", data["first_name"])
		assert.Equal(t, "Smith", data["last_name"])
	})
}

func TestHTTP_List(t *testing.T) {
	router := newTestRouter()

	recorder := doRequest(t, router, http.MethodGet, "/list?search=john&page=1&limit=5", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	data := decodeBody(t, recorder)["data"].(map[string]any)
	users := data["users"].([]any)
	require.Len(t, users, 1)

	meta := data["pagination"].(map[string]any)
	assert.Equal(t, float64(1), meta["total"])
	assert.Equal(t, float64(5), meta["limit"])
}

func TestHTTP_GetAndDelete(t *testing.T) {
	router := newTestRouter()

	recorder := doRequest(t, router, http.MethodGet, "/user-001", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, router, http.MethodDelete, "/user-001", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	// Soft delete: still fetchable, now inactive.
	recorder = doRequest(t, router, http.MethodGet, "/user-001", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	data := decodeBody(t, recorder)["data"].(map[string]any)
	assert.Equal(t, false, data["is_active"])

	recorder = doRequest(t, router, http.MethodGet, "/user-404", nil, "")
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "USER_NOT_FOUND", decodeBody(t, recorder)["code"])
}

func TestHTTP_Admin(t *testing.T) {
	router := newTestRouter()

	t.Run("create_missing_fields", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/admin/users/create", map[string]any{
			"username": "only-name",
		}, "")
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "MISSING_FIELDS", decodeBody(t, recorder)["code"])
	})

	t.Run("create_and_promote", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/admin/users/create", map[string]any{
			"username":   "carol",
			"email":      "carol@example.com",
			"first_name": "Carol",
			"last_name":  "Jones",
		}, "")
		require.Equal(t, http.StatusCreated, recorder.Code)
		created := decodeBody(t, recorder)["data"].(map[string]any)
		newID := created["id"].(string)

		recorder = doRequest(t, router, http.MethodPut, "/admin/users/"+newID+"/role", map[string]any{
			"role": "admin",
		}, "")
		require.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("missing_role", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPut, "/admin/users/user-001/role", map[string]any{}, "")
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "MISSING_ROLE", decodeBody(t, recorder)["code"])
	})

	t.Run("stats", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/admin/stats", nil, "")
		require.Equal(t, http.StatusOK, recorder.Code)
		data := decodeBody(t, recorder)["data"].(map[string]any)
		assert.NotNil(t, data["roles_distribution"])
		assert.GreaterOrEqual(t, data["total_users"], float64(2))
	})
}
