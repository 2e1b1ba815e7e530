package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docuchat/internal/db"
	"github.com/jonathan/docuchat/internal/server/middleware"
	"github.com/jonathan/docuchat/internal/types"
)

type fakeChatStore struct {
	chats map[uuid.UUID]*db.Chat
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{chats: map[uuid.UUID]*db.Chat{}}
}

func (s *fakeChatStore) CreateChat(_ context.Context, userID uuid.UUID, name string, documents []types.DocumentReference) (*db.Chat, error) {
	if name == "" {
		name = "Untitled Chat"
	}
	if documents == nil {
		documents = []types.DocumentReference{}
	}
	c := &db.Chat{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Messages:  []types.StoredMessage{},
		Documents: documents,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.chats[c.ID] = c
	return c, nil
}

func (s *fakeChatStore) GetChat(_ context.Context, chatID, userID uuid.UUID) (*db.Chat, error) {
	c, ok := s.chats[chatID]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	return c, nil
}

func (s *fakeChatStore) ListChats(_ context.Context, userID uuid.UUID) ([]db.ChatSummary, error) {
	var out []db.ChatSummary
	for _, c := range s.chats {
		if c.UserID == userID {
			out = append(out, db.ChatSummary{ID: c.ID, Name: c.Name, IsPinned: c.IsPinned})
		}
	}
	return out, nil
}

func (s *fakeChatStore) UpdateChatName(_ context.Context, chatID, userID uuid.UUID, name string) (bool, error) {
	c, ok := s.chats[chatID]
	if !ok || c.UserID != userID {
		return false, nil
	}
	c.Name = name
	return true, nil
}

func (s *fakeChatStore) UpdateChatDocuments(_ context.Context, chatID, userID uuid.UUID, documents []types.DocumentReference) (bool, error) {
	c, ok := s.chats[chatID]
	if !ok || c.UserID != userID {
		return false, nil
	}
	c.Documents = documents
	return true, nil
}

func (s *fakeChatStore) AppendChatMessage(_ context.Context, chatID, userID uuid.UUID, msg types.StoredMessage) (bool, error) {
	c, ok := s.chats[chatID]
	if !ok || c.UserID != userID {
		return false, nil
	}
	c.Messages = append(c.Messages, msg)
	return true, nil
}

func (s *fakeChatStore) SetChatPinned(_ context.Context, chatID, userID uuid.UUID, pinned bool) (bool, error) {
	c, ok := s.chats[chatID]
	if !ok || c.UserID != userID {
		return false, nil
	}
	c.IsPinned = pinned
	return true, nil
}

func (s *fakeChatStore) DeleteChat(_ context.Context, chatID, userID uuid.UUID) (bool, error) {
	c, ok := s.chats[chatID]
	if !ok || c.UserID != userID {
		return false, nil
	}
	delete(s.chats, chatID)
	return true, nil
}

func newChatTestServer(store ChatStore) *Server {
	return &Server{chatStore: store, log: zerolog.Nop()}
}

// authedRequest builds a request carrying an authenticated user ID, as the
// auth middleware would.
func authedRequest(t *testing.T, method, path string, userID uuid.UUID, body any) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey(), userID)
	return req.WithContext(ctx)
}

func TestHandleCreateChat(t *testing.T) {
	store := newFakeChatStore()
	s := newChatTestServer(store)
	userID := uuid.New()

	t.Run("default name", func(t *testing.T) {
		req := authedRequest(t, http.MethodPost, "/chats", userID, types.CreateChatRequest{})
		rec := httptest.NewRecorder()
		s.handleCreateChat(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var view ChatView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "Untitled Chat", view.Name)
		assert.Empty(t, view.Messages)
	})

	t.Run("with documents", func(t *testing.T) {
		req := authedRequest(t, http.MethodPost, "/chats", userID, types.CreateChatRequest{
			Name: "Research",
			Documents: []types.DocumentReference{
				{Type: types.DocumentYouTubeVideo, URL: "https://youtu.be/abc123def45"},
			},
		})
		rec := httptest.NewRecorder()
		s.handleCreateChat(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var view ChatView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "Research", view.Name)
		assert.Len(t, view.Documents, 1)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewReader([]byte("{}")))
		rec := httptest.NewRecorder()
		s.handleCreateChat(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandleGetChat(t *testing.T) {
	store := newFakeChatStore()
	s := newChatTestServer(store)
	userID := uuid.New()
	created, err := store.CreateChat(context.Background(), userID, "Mine", nil)
	require.NoError(t, err)

	t.Run("owner can read", func(t *testing.T) {
		req := authedRequest(t, http.MethodGet, "/chats/"+created.ID.String(), userID, nil)
		req.SetPathValue("id", created.ID.String())
		rec := httptest.NewRecorder()
		s.handleGetChat(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var view ChatView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "Mine", view.Name)
	})

	t.Run("other user gets 404", func(t *testing.T) {
		req := authedRequest(t, http.MethodGet, "/chats/"+created.ID.String(), uuid.New(), nil)
		req.SetPathValue("id", created.ID.String())
		rec := httptest.NewRecorder()
		s.handleGetChat(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		req := authedRequest(t, http.MethodGet, "/chats/nope", userID, nil)
		req.SetPathValue("id", "nope")
		rec := httptest.NewRecorder()
		s.handleGetChat(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleUpdateChatName(t *testing.T) {
	store := newFakeChatStore()
	s := newChatTestServer(store)
	userID := uuid.New()
	created, err := store.CreateChat(context.Background(), userID, "Old", nil)
	require.NoError(t, err)

	req := authedRequest(t, http.MethodPut, "/chats/"+created.ID.String()+"/name", userID,
		types.UpdateChatNameRequest{Name: "New"})
	req.SetPathValue("id", created.ID.String())
	rec := httptest.NewRecorder()
	s.handleUpdateChatName(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New", store.chats[created.ID].Name)
}

func TestHandleAddChatMessage(t *testing.T) {
	store := newFakeChatStore()
	s := newChatTestServer(store)
	userID := uuid.New()
	created, err := store.CreateChat(context.Background(), userID, "", nil)
	require.NoError(t, err)

	t.Run("appends", func(t *testing.T) {
		req := authedRequest(t, http.MethodPost, "/chats/"+created.ID.String()+"/messages", userID,
			types.AddMessageRequest{Role: types.RoleUser, Content: "hello"})
		req.SetPathValue("id", created.ID.String())
		rec := httptest.NewRecorder()
		s.handleAddChatMessage(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, store.chats[created.ID].Messages, 1)
		assert.Equal(t, "hello", store.chats[created.ID].Messages[0].Content)
	})

	t.Run("rejects bad role", func(t *testing.T) {
		req := authedRequest(t, http.MethodPost, "/chats/"+created.ID.String()+"/messages", userID,
			types.AddMessageRequest{Role: "narrator", Content: "hello"})
		req.SetPathValue("id", created.ID.String())
		rec := httptest.NewRecorder()
		s.handleAddChatMessage(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleTogglePinAndDelete(t *testing.T) {
	store := newFakeChatStore()
	s := newChatTestServer(store)
	userID := uuid.New()
	created, err := store.CreateChat(context.Background(), userID, "", nil)
	require.NoError(t, err)

	req := authedRequest(t, http.MethodPut, "/chats/"+created.ID.String()+"/pin", userID,
		types.TogglePinRequest{IsPinned: true})
	req.SetPathValue("id", created.ID.String())
	rec := httptest.NewRecorder()
	s.handleTogglePin(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, store.chats[created.ID].IsPinned)

	req = authedRequest(t, http.MethodDelete, "/chats/"+created.ID.String(), userID, nil)
	req.SetPathValue("id", created.ID.String())
	rec = httptest.NewRecorder()
	s.handleDeleteChat(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.chats)
}

func TestHandleListChats_EmptyIsArray(t *testing.T) {
	s := newChatTestServer(newFakeChatStore())

	req := authedRequest(t, http.MethodGet, "/chats", uuid.New(), nil)
	rec := httptest.NewRecorder()
	s.handleListChats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
