package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docuchat/internal/chat"
	"github.com/jonathan/docuchat/internal/db"
	"github.com/jonathan/docuchat/internal/llm"
	"github.com/jonathan/docuchat/internal/sources"
	"github.com/jonathan/docuchat/internal/types"
)

type stubLLM struct {
	lastMessages []types.ChatMessage
	reply        string
	err          error
}

func (c *stubLLM) Complete(_ context.Context, messages []types.ChatMessage) (*llm.Completion, error) {
	c.lastMessages = messages
	if c.err != nil {
		return nil, c.err
	}
	return &llm.Completion{
		Message: types.ChatMessage{Role: types.RoleAssistant, Content: c.reply},
		Usage:   types.Usage{PromptTokens: 20, CompletionTokens: 8, TotalTokens: 28},
	}, nil
}

func (c *stubLLM) Model() string { return "stub" }
func (c *stubLLM) Close() error  { return nil }

func newChatEndpointServer(model llm.Client) *Server {
	resolver := sources.NewResolver(sources.ResolverConfig{
		TranscriptStore: &stubTranscriptStore{transcripts: map[string]*db.Transcript{}},
		Downloader:      &stubDownloader{},
		Transcriber:     &stubTranscriber{},
		Log:             zerolog.Nop(),
	})
	return &Server{
		resolver:     resolver,
		orchestrator: chat.NewOrchestrator(resolver, model, zerolog.Nop()),
		log:          zerolog.Nop(),
	}
}

func TestHandleChat(t *testing.T) {
	model := &stubLLM{reply: "the summary"}
	s := newChatEndpointServer(model)

	body, _ := json.Marshal(types.ChatRequest{
		Messages: []types.ChatMessage{{Role: types.RoleUser, Content: "Summarize"}},
		Documents: []types.DocumentReference{
			{Type: types.DocumentCustomText, URL: "Hello world"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleChat(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp types.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "the summary", resp.Message.Content)
	assert.Equal(t, 28, resp.Usage.TotalTokens)

	system := model.lastMessages[0].Content
	assert.Contains(t, system, "Custom Text: Hello world")
	assert.Contains(t, system, "--- End of Custom Text ---")
}

func TestHandleChat_MissingMessages(t *testing.T) {
	s := newChatEndpointServer(&stubLLM{reply: "x"})

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte(`{"documents":[]}`)))
	rec := httptest.NewRecorder()
	s.handleChat(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "messages")
}

func TestHandleChat_ProviderFailure(t *testing.T) {
	s := newChatEndpointServer(&stubLLM{err: errors.New("model unavailable")})

	body, _ := json.Marshal(types.ChatRequest{
		Messages: []types.ChatMessage{{Role: types.RoleUser, Content: "hi"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleChat(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "model unavailable")
}

func TestHandleChat_InvalidBody(t *testing.T) {
	s := newChatEndpointServer(&stubLLM{reply: "x"})

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	s.handleChat(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
