package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docuchat/internal/db"
	"github.com/jonathan/docuchat/internal/types"
)

type fakeAdminStore struct {
	users      []db.UserWithChatCount
	adminCount int
	chatCount  int
}

func (s *fakeAdminStore) ListUsersWithChatCounts(_ context.Context) ([]db.UserWithChatCount, error) {
	return s.users, nil
}

func (s *fakeAdminStore) CountUsers(_ context.Context, role string) (int, error) {
	if role == types.RoleAdmin {
		return s.adminCount, nil
	}
	return len(s.users), nil
}

func (s *fakeAdminStore) CountChats(_ context.Context) (int, error) {
	return s.chatCount, nil
}

func TestHandleAdminListUsers(t *testing.T) {
	store := &fakeAdminStore{
		users: []db.UserWithChatCount{
			{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", Role: types.RoleAdmin, ChatCount: 3},
			{ID: uuid.New(), Name: "Bob", Email: "bob@example.com", Role: types.RoleRegularUser, ChatCount: 0},
		},
	}
	s := &Server{adminStore: store, log: zerolog.Nop()}

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	s.handleAdminListUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var users []db.UserWithChatCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, 3, users[0].ChatCount)
}

func TestHandleAdminListUsers_EmptyIsArray(t *testing.T) {
	s := &Server{adminStore: &fakeAdminStore{}, log: zerolog.Nop()}

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	s.handleAdminListUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestHandleAdminStats(t *testing.T) {
	store := &fakeAdminStore{
		users: []db.UserWithChatCount{
			{ID: uuid.New(), Role: types.RoleAdmin},
			{ID: uuid.New(), Role: types.RoleRegularUser},
			{ID: uuid.New(), Role: types.RoleRegularUser},
		},
		adminCount: 1,
		chatCount:  7,
	}
	s := &Server{adminStore: store, log: zerolog.Nop()}

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	rec := httptest.NewRecorder()
	s.handleAdminStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stats StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 1, stats.AdminUsers)
	assert.Equal(t, 2, stats.RegularUsers)
	assert.Equal(t, 7, stats.TotalChats)
}
