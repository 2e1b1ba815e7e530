package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/docuchat/internal/db"
	"github.com/jonathan/docuchat/internal/server/middleware"
	"github.com/jonathan/docuchat/internal/types"
)

// ChatStore is the persistence surface the stored-chat handlers need.
type ChatStore interface {
	CreateChat(ctx context.Context, userID uuid.UUID, name string, documents []types.DocumentReference) (*db.Chat, error)
	GetChat(ctx context.Context, chatID, userID uuid.UUID) (*db.Chat, error)
	ListChats(ctx context.Context, userID uuid.UUID) ([]db.ChatSummary, error)
	UpdateChatName(ctx context.Context, chatID, userID uuid.UUID, name string) (bool, error)
	UpdateChatDocuments(ctx context.Context, chatID, userID uuid.UUID, documents []types.DocumentReference) (bool, error)
	AppendChatMessage(ctx context.Context, chatID, userID uuid.UUID, msg types.StoredMessage) (bool, error)
	SetChatPinned(ctx context.Context, chatID, userID uuid.UUID, pinned bool) (bool, error)
	DeleteChat(ctx context.Context, chatID, userID uuid.UUID) (bool, error)
}

// ChatView is the API shape of a stored chat.
type ChatView struct {
	ID        uuid.UUID                 `json:"id"`
	Name      string                    `json:"name"`
	Messages  []types.StoredMessage     `json:"messages"`
	Documents []types.DocumentReference `json:"documents"`
	IsPinned  bool                      `json:"is_pinned"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

func chatView(c *db.Chat) ChatView {
	return ChatView{
		ID:        c.ID,
		Name:      c.Name,
		Messages:  c.Messages,
		Documents: c.Documents,
		IsPinned:  c.IsPinned,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// requestIdentity pulls the authenticated user out of the request. A missing
// identity means the auth middleware did not run; treat as unauthorized.
func (s *Server) requestIdentity(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// chatIDFromPath parses the {id} path segment.
func (s *Server) chatIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	chatID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid chat id")
		return uuid.Nil, false
	}
	return chatID, true
}

// handleCreateChat creates a stored chat, defaulting the name.
func (s *Server) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestIdentity(w, r)
	if !ok {
		return
	}

	var req types.CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := s.chatStore.CreateChat(r.Context(), userID, req.Name, req.Documents)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, chatView(created))
}

// handleListChats lists the user's chats, most recently updated first.
func (s *Server) handleListChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestIdentity(w, r)
	if !ok {
		return
	}

	chats, err := s.chatStore.ListChats(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if chats == nil {
		chats = []db.ChatSummary{}
	}

	s.jsonResponse(w, http.StatusOK, chats)
}

// handleGetChat returns one chat with its full message history.
func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestIdentity(w, r)
	if !ok {
		return
	}
	chatID, ok := s.chatIDFromPath(w, r)
	if !ok {
		return
	}

	c, err := s.chatStore.GetChat(r.Context(), chatID, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if c == nil {
		s.errorResponse(w, http.StatusNotFound, "chat not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, chatView(c))
}

// handleUpdateChatName renames a chat.
func (s *Server) handleUpdateChatName(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestIdentity(w, r)
	if !ok {
		return
	}
	chatID, ok := s.chatIDFromPath(w, r)
	if !ok {
		return
	}

	var req types.UpdateChatNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		s.errorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	found, err := s.chatStore.UpdateChatName(r.Context(), chatID, userID, req.Name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		s.errorResponse(w, http.StatusNotFound, "chat not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Chat renamed"})
}

// handleUpdateChatDocuments replaces the documents attached to a chat.
func (s *Server) handleUpdateChatDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestIdentity(w, r)
	if !ok {
		return
	}
	chatID, ok := s.chatIDFromPath(w, r)
	if !ok {
		return
	}

	var req types.UpdateChatDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	found, err := s.chatStore.UpdateChatDocuments(r.Context(), chatID, userID, req.Documents)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		s.errorResponse(w, http.StatusNotFound, "chat not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Documents updated"})
}

// handleAddChatMessage appends a message to a chat's history.
func (s *Server) handleAddChatMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestIdentity(w, r)
	if !ok {
		return
	}
	chatID, ok := s.chatIDFromPath(w, r)
	if !ok {
		return
	}

	var req types.AddMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if !req.Role.Valid() || req.Content == "" {
		s.errorResponse(w, http.StatusBadRequest, "role and content are required")
		return
	}

	msg := types.StoredMessage{Role: req.Role, Content: req.Content, Timestamp: time.Now().UTC()}
	found, err := s.chatStore.AppendChatMessage(r.Context(), chatID, userID, msg)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		s.errorResponse(w, http.StatusNotFound, "chat not found")
		return
	}

	s.jsonResponse(w, http.StatusCreated, msg)
}

// handleTogglePin sets the pinned flag on a chat.
func (s *Server) handleTogglePin(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestIdentity(w, r)
	if !ok {
		return
	}
	chatID, ok := s.chatIDFromPath(w, r)
	if !ok {
		return
	}

	var req types.TogglePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	found, err := s.chatStore.SetChatPinned(r.Context(), chatID, userID, req.IsPinned)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		s.errorResponse(w, http.StatusNotFound, "chat not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"is_pinned": req.IsPinned})
}

// handleDeleteChat deletes a chat.
func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestIdentity(w, r)
	if !ok {
		return
	}
	chatID, ok := s.chatIDFromPath(w, r)
	if !ok {
		return
	}

	found, err := s.chatStore.DeleteChat(r.Context(), chatID, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		s.errorResponse(w, http.StatusNotFound, "chat not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Chat deleted"})
}
