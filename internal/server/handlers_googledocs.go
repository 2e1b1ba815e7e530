package server

import "net/http"

// TitleResponse carries a scraped document title.
type TitleResponse struct {
	Title string `json:"title"`
}

// handleGoogleDocTitle scrapes the title of a Google Doc by ID.
func (s *Server) handleGoogleDocTitle(w http.ResponseWriter, r *http.Request) {
	docID := r.PathValue("docId")
	if docID == "" {
		s.errorResponse(w, http.StatusBadRequest, "docId is required")
		return
	}

	title, err := s.resolver.GoogleDocs().Title(r.Context(), docID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to fetch document title: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, TitleResponse{Title: title})
}

// handleGoogleSheetTitle scrapes the title of a Google Sheet by ID.
func (s *Server) handleGoogleSheetTitle(w http.ResponseWriter, r *http.Request) {
	sheetID := r.PathValue("sheetId")
	if sheetID == "" {
		s.errorResponse(w, http.StatusBadRequest, "sheetId is required")
		return
	}

	title, err := s.resolver.GoogleSheets().Title(r.Context(), sheetID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to fetch spreadsheet title: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, TitleResponse{Title: title})
}
