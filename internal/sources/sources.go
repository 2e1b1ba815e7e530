// Package sources turns document references into normalized text content.
// One fetcher exists per document kind; each either produces a non-empty
// FetchResult or fails explicitly.
package sources

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jonathan/docuchat/internal/transcribe"
	"github.com/jonathan/docuchat/internal/types"
)

// Fetcher turns a document reference into normalized text plus a title.
type Fetcher interface {
	Fetch(ctx context.Context, ref types.DocumentReference) (*types.FetchResult, error)
}

// Resolver dispatches document references to the fetcher for their type.
type Resolver struct {
	fetchers map[types.DocumentType]Fetcher
	youtube  *YouTubeFetcher
	docs     *GoogleDocFetcher
	sheets   *GoogleSheetFetcher
	notion   *NotionFetcher
}

// ResolverConfig holds the collaborators the per-type fetchers need.
type ResolverConfig struct {
	TranscriptStore TranscriptStore
	Downloader      AudioDownloader
	Transcriber     transcribe.Transcriber
	// TranscriptLanguage is the language requested from the
	// transcription service. Defaults to "en".
	TranscriptLanguage string
	// BrowserFallback enables headless-browser rendering for pages that
	// return no visible content over plain HTTP.
	BrowserFallback bool
	Log             zerolog.Logger
}

// NewResolver wires up one fetcher per supported document type.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.TranscriptLanguage == "" {
		cfg.TranscriptLanguage = "en"
	}

	youtube := &YouTubeFetcher{
		store:       cfg.TranscriptStore,
		downloader:  cfg.Downloader,
		transcriber: cfg.Transcriber,
		language:    cfg.TranscriptLanguage,
		log:         cfg.Log.With().Str("fetcher", "youtube").Logger(),
	}

	docs := &GoogleDocFetcher{log: cfg.Log.With().Str("fetcher", "googledoc").Logger()}
	sheets := &GoogleSheetFetcher{log: cfg.Log.With().Str("fetcher", "googlesheet").Logger()}
	notion := &NotionFetcher{
		browserFallback: cfg.BrowserFallback,
		log:             cfg.Log.With().Str("fetcher", "notion").Logger(),
	}

	fetchers := map[types.DocumentType]Fetcher{
		types.DocumentYouTubeVideo: youtube,
		types.DocumentGoogleDoc:    docs,
		types.DocumentGoogleSheet:  sheets,
		types.DocumentNotionPage:   notion,
		types.DocumentPDF:          &PDFFetcher{},
		types.DocumentCustomText:   &CustomTextFetcher{},
	}

	return &Resolver{
		fetchers: fetchers,
		youtube:  youtube,
		docs:     docs,
		sheets:   sheets,
		notion:   notion,
	}
}

// Resolve validates the reference and fetches its content.
func (r *Resolver) Resolve(ctx context.Context, ref types.DocumentReference) (*types.FetchResult, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	fetcher, ok := r.fetchers[ref.Type]
	if !ok {
		return nil, fmt.Errorf("no fetcher for document type %q", ref.Type)
	}
	return fetcher.Fetch(ctx, ref)
}

// YouTube exposes the YouTube fetcher directly for the video-processing
// endpoints, which need transcript metadata beyond the plain FetchResult.
func (r *Resolver) YouTube() *YouTubeFetcher {
	return r.youtube
}

// GoogleDocs exposes the Google Docs fetcher for the title endpoint.
func (r *Resolver) GoogleDocs() *GoogleDocFetcher {
	return r.docs
}

// GoogleSheets exposes the Google Sheets fetcher for the title endpoint.
func (r *Resolver) GoogleSheets() *GoogleSheetFetcher {
	return r.sheets
}

// Notion exposes the Notion fetcher for the title endpoint.
func (r *Resolver) Notion() *NotionFetcher {
	return r.notion
}
