package server

import (
	"context"
	"net/http"

	"github.com/jonathan/docuchat/internal/db"
	"github.com/jonathan/docuchat/internal/types"
)

// AdminStore is the persistence surface the admin handlers need.
type AdminStore interface {
	ListUsersWithChatCounts(ctx context.Context) ([]db.UserWithChatCount, error)
	CountUsers(ctx context.Context, role string) (int, error)
	CountChats(ctx context.Context) (int, error)
}

// StatsResponse is the admin dashboard summary.
type StatsResponse struct {
	TotalUsers   int `json:"total_users"`
	AdminUsers   int `json:"admin_users"`
	RegularUsers int `json:"regular_users"`
	TotalChats   int `json:"total_chats"`
}

// handleAdminListUsers lists all users with their chat counts.
func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.adminStore.ListUsersWithChatCounts(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if users == nil {
		users = []db.UserWithChatCount{}
	}

	s.jsonResponse(w, http.StatusOK, users)
}

// handleAdminStats returns aggregate user and chat counts.
func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	total, err := s.adminStore.CountUsers(r.Context(), "")
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	admins, err := s.adminStore.CountUsers(r.Context(), types.RoleAdmin)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	chats, err := s.adminStore.CountChats(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, StatsResponse{
		TotalUsers:   total,
		AdminUsers:   admins,
		RegularUsers: total - admins,
		TotalChats:   chats,
	})
}
