package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docuchat/internal/server/middleware"
	"github.com/jonathan/docuchat/internal/types"
)

func newAuthTestServer(store *fakeUserStore) *Server {
	return &Server{
		userService: newTestUserService(store),
		jwtService:  newTestJWTService(),
		log:         zerolog.Nop(),
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleSignup(t *testing.T) {
	s := newAuthTestServer(newFakeUserStore())

	rec := postJSON(t, s.handleSignup, "/auth/signup", types.CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, types.RoleRegularUser, resp.User.Role)
}

func TestHandleSignup_Validation(t *testing.T) {
	s := newAuthTestServer(newFakeUserStore())

	tests := []struct {
		name string
		req  types.CreateUserRequest
	}{
		{"missing name", types.CreateUserRequest{Email: "a@b.com", Password: "secret123"}},
		{"bad email", types.CreateUserRequest{Name: "A", Email: "not-an-email", Password: "secret123"}},
		{"short password", types.CreateUserRequest{Name: "A", Email: "a@b.com", Password: "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, s.handleSignup, "/auth/signup", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "validation error")
		})
	}
}

func TestHandleSignup_DuplicateEmail(t *testing.T) {
	s := newAuthTestServer(newFakeUserStore())
	req := types.CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123"}

	rec := postJSON(t, s.handleSignup, "/auth/signup", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, s.handleSignup, "/auth/signup", req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleSignin(t *testing.T) {
	s := newAuthTestServer(newFakeUserStore())

	rec := postJSON(t, s.handleSignup, "/auth/signup", types.CreateUserRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("valid credentials", func(t *testing.T) {
		rec := postJSON(t, s.handleSignin, "/auth/signin", types.LoginRequest{
			Email: "alice@example.com", Password: "secret123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp types.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)

		// Token must round-trip through the JWT service with the role claim.
		claims, err := newTestJWTService().ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.GetUserID())
		assert.Equal(t, types.RoleRegularUser, claims.GetRole())
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(t, s.handleSignin, "/auth/signin", types.LoginRequest{
			Email: "alice@example.com", Password: "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := postJSON(t, s.handleSignin, "/auth/signin", types.LoginRequest{
			Email: "ghost@example.com", Password: "whatever",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandleUpdatePassword(t *testing.T) {
	store := newFakeUserStore()
	s := newAuthTestServer(store)

	rec := postJSON(t, s.handleSignup, "/auth/signup", types.CreateUserRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var signup types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signup))

	update := func(body types.UpdatePasswordRequest) *httptest.ResponseRecorder {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewReader(payload))
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey(), signup.User.ID))
		rec := httptest.NewRecorder()
		s.handleUpdatePassword(rec, req)
		return rec
	}

	t.Run("wrong current password", func(t *testing.T) {
		rec := update(types.UpdatePasswordRequest{CurrentPassword: "nope", NewPassword: "newpass1"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		rec := update(types.UpdatePasswordRequest{CurrentPassword: "secret123", NewPassword: "newpass1"})
		require.Equal(t, http.StatusOK, rec.Code)

		rec2 := postJSON(t, s.handleSignin, "/auth/signin", types.LoginRequest{
			Email: "alice@example.com", Password: "newpass1",
		})
		assert.Equal(t, http.StatusOK, rec2.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewReader([]byte(`{}`)))
		rec := httptest.NewRecorder()
		s.handleUpdatePassword(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandleSignup_InvalidBody(t *testing.T) {
	s := newAuthTestServer(newFakeUserStore())

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.handleSignup(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
