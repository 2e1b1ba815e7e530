package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docuchat/internal/db"
	"github.com/jonathan/docuchat/internal/sources"
)

func newTitleTestServer() *Server {
	resolver := sources.NewResolver(sources.ResolverConfig{
		TranscriptStore: &stubTranscriptStore{transcripts: map[string]*db.Transcript{}},
		Downloader:      &stubDownloader{},
		Transcriber:     &stubTranscriber{},
		Log:             zerolog.Nop(),
	})
	return &Server{resolver: resolver, log: zerolog.Nop()}
}

func TestHandleNotionTitle_FromSlug(t *testing.T) {
	s := newTitleTestServer()

	body, _ := json.Marshal(NotionTitleRequest{
		PageURL: "https://www.notion.so/team/Project-Roadmap-0123456789abcdef0123456789abcdef",
	})
	req := httptest.NewRequest(http.MethodPost, "/notion/page/title", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleNotionTitle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TitleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Project Roadmap", resp.Title)
}

func TestHandleNotionTitle_BadRequests(t *testing.T) {
	s := newTitleTestServer()

	t.Run("missing url", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/notion/page/title", bytes.NewReader([]byte(`{}`)))
		rec := httptest.NewRecorder()
		s.handleNotionTitle(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not a notion url", func(t *testing.T) {
		body, _ := json.Marshal(NotionTitleRequest{PageURL: "https://example.com/page"})
		req := httptest.NewRequest(http.MethodPost, "/notion/page/title", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		s.handleNotionTitle(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleGoogleTitles_MissingID(t *testing.T) {
	s := newTitleTestServer()

	req := httptest.NewRequest(http.MethodGet, "/googledocs/doc/", nil)
	rec := httptest.NewRecorder()
	s.handleGoogleDocTitle(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/googledocs/sheet/", nil)
	rec = httptest.NewRecorder()
	s.handleGoogleSheetTitle(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
