package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/docuchat/internal/sources"
)

// PDFUploadResponse returns the extracted text of an uploaded PDF.
type PDFUploadResponse struct {
	Content string `json:"content"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// handlePDFUpload extracts the text of an uploaded PDF. The file must be a
// real PDF at most 10 MiB; both checks happen before any extraction work.
func (s *Server) handlePDFUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(sources.MaxPDFSizeBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if header.Size > sources.MaxPDFSizeBytes {
		s.errorResponse(w, http.StatusBadRequest, sources.ErrPDFTooLarge.Error())
		return
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/pdf" {
		s.errorResponse(w, http.StatusBadRequest, "file must be a PDF, got "+ct)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, sources.MaxPDFSizeBytes+1))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to read upload: "+err.Error())
		return
	}
	if len(data) > sources.MaxPDFSizeBytes {
		s.errorResponse(w, http.StatusBadRequest, sources.ErrPDFTooLarge.Error())
		return
	}
	// A declared Content-Type can be absent or lie; the magic number cannot.
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		s.errorResponse(w, http.StatusBadRequest, sources.ErrInvalidPDF.Error())
		return
	}

	result, err := sources.ExtractPDFText(data)
	if err != nil {
		status := HTTPStatus(err)
		if errors.Is(err, sources.ErrEmptyPDFText) {
			status = http.StatusBadRequest
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, PDFUploadResponse{
		Content: result.Content,
		Title:   result.Title,
		Message: "PDF processed successfully",
	})
}
