package server

import (
	"encoding/json"
	"net/http"
)

// ProcessVideoRequest is the body of POST /youtube/process.
type ProcessVideoRequest struct {
	VideoURL string `json:"videoUrl"`
}

// TranscriptResponse is the payload returned for transcript endpoints.
type TranscriptResponse struct {
	VideoID    string `json:"videoId"`
	Transcript string `json:"transcript"`
	Title      string `json:"title,omitempty"`
	Duration   int    `json:"duration"`
	Cached     bool   `json:"cached,omitempty"`
}

// handleProcessVideo transcribes a YouTube video, serving from the cache
// when the video was processed before.
func (s *Server) handleProcessVideo(w http.ResponseWriter, r *http.Request) {
	var req ProcessVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.VideoURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "videoUrl is required")
		return
	}

	result, err := s.resolver.YouTube().Process(r.Context(), req.VideoURL)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, TranscriptResponse{
		VideoID:    result.VideoID,
		Transcript: result.Transcript,
		Title:      result.Title,
		Duration:   result.DurationSeconds,
		Cached:     result.Cached,
	})
}

// handleGetTranscript returns a previously stored transcript.
func (s *Server) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoId")
	if videoID == "" {
		s.errorResponse(w, http.StatusBadRequest, "videoId is required")
		return
	}

	record, err := s.resolver.YouTube().Lookup(r.Context(), videoID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "transcript not found for video: "+videoID)
		return
	}

	s.jsonResponse(w, http.StatusOK, TranscriptResponse{
		VideoID:    record.VideoID,
		Transcript: record.Transcript,
		Title:      record.Title,
		Duration:   record.DurationSeconds,
	})
}
