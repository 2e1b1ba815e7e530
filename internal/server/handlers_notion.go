package server

import (
	"encoding/json"
	"net/http"
)

// NotionTitleRequest is the body of POST /notion/page/title.
type NotionTitleRequest struct {
	PageURL string `json:"pageUrl"`
}

// handleNotionTitle resolves a display title for a Notion page URL.
func (s *Server) handleNotionTitle(w http.ResponseWriter, r *http.Request) {
	var req NotionTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.PageURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "pageUrl is required")
		return
	}

	title, err := s.resolver.Notion().Title(r.Context(), req.PageURL)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, TitleResponse{Title: title})
}
