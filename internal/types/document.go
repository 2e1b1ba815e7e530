// Package types provides type definitions for structured data used throughout the document chat system.
package types

import "fmt"

// DocumentType identifies the kind of external source a document reference points at.
// The values match the labels the web client sends.
type DocumentType string

// Supported document types.
const (
	DocumentYouTubeVideo DocumentType = "Youtube Video"
	DocumentGoogleDoc    DocumentType = "Google Docs"
	DocumentGoogleSheet  DocumentType = "Google Sheets"
	DocumentNotionPage   DocumentType = "Notion Page"
	DocumentPDF          DocumentType = "PDF"
	DocumentCustomText   DocumentType = "Custom Text"
)

// Valid reports whether t is one of the supported document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentYouTubeVideo, DocumentGoogleDoc, DocumentGoogleSheet,
		DocumentNotionPage, DocumentPDF, DocumentCustomText:
		return true
	}
	return false
}

// DocumentReference is a user-declared pointer to external content to ingest.
// URL-backed types carry a URL; PDF and Custom Text instead carry the content
// inline (decoded PDF text or pasted text).
type DocumentReference struct {
	Type          DocumentType `json:"type"`
	URL           string       `json:"url,omitempty"`
	InlineContent string       `json:"content,omitempty"`
	Title         string       `json:"title,omitempty"`
}

// Validate checks the reference invariants for its declared type.
func (r *DocumentReference) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("unsupported document type: %q", r.Type)
	}
	switch r.Type {
	case DocumentPDF:
		if r.InlineContent == "" {
			return fmt.Errorf("PDF reference requires extracted content")
		}
	case DocumentCustomText:
		// Pasted text may arrive either as inline content or, from older
		// clients, smuggled in the url field.
		if r.InlineContent == "" && r.URL == "" {
			return fmt.Errorf("custom text reference requires content")
		}
	default:
		if r.URL == "" {
			return fmt.Errorf("%s reference requires a url", r.Type)
		}
	}
	return nil
}

// CatalogValue returns the value shown next to the type in the document
// catalog line of the system message.
func (r *DocumentReference) CatalogValue() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Title
}

// FetchResult is the normalized output of any source fetcher.
// Content is non-empty on success; fetchers fail instead of returning
// an empty result.
type FetchResult struct {
	Content string
	Title   string
}
