package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/docuchat/internal/extract"
	"github.com/jonathan/docuchat/internal/fetch"
	"github.com/jonathan/docuchat/internal/types"
)

// Export and edit-view endpoints derived from the extracted identifier.
const (
	googleDocExportURL   = "https://docs.google.com/document/d/%s/export?format=txt"
	googleDocEditURL     = "https://docs.google.com/document/d/%s/edit"
	googleSheetExportURL = "https://docs.google.com/spreadsheets/d/%s/export?format=csv"
	googleSheetEditURL   = "https://docs.google.com/spreadsheets/d/%s/edit"
)

// Default titles when scraping fails.
const (
	DefaultGoogleDocTitle   = "Google Doc"
	DefaultGoogleSheetTitle = "Google Sheet"
)

// Errors returned by the Google fetchers.
var (
	ErrInvalidGoogleDocURL   = errors.New("invalid Google Docs URL")
	ErrInvalidGoogleSheetURL = errors.New("invalid Google Sheets URL")
)

// GoogleDocFetcher downloads a Google Doc through its plain-text export
// endpoint and scrapes the edit page for a human title.
type GoogleDocFetcher struct {
	log zerolog.Logger
}

// Fetch implements Fetcher.
func (f *GoogleDocFetcher) Fetch(ctx context.Context, ref types.DocumentReference) (*types.FetchResult, error) {
	docID := extract.GoogleDocID(ref.URL)
	if docID == "" {
		return nil, ErrInvalidGoogleDocURL
	}

	content, err := fetchGoogleExport(ctx, fmt.Sprintf(googleDocExportURL, docID))
	if err != nil {
		return nil, fmt.Errorf("failed to download Google Doc (is it shared as 'Anyone with the link can view'?): %w", err)
	}

	// Title scraping is best-effort; extraction continues with the
	// default title when the edit page cannot be read.
	title, err := scrapeGoogleTitle(ctx, fmt.Sprintf(googleDocEditURL, docID), DefaultGoogleDocTitle, " - Google Docs")
	if err != nil {
		f.log.Debug().Err(err).Str("doc_id", docID).Msg("title scrape failed, using default")
		title = DefaultGoogleDocTitle
	}

	return &types.FetchResult{Content: content, Title: title}, nil
}

// Title scrapes the document title from the edit page.
func (f *GoogleDocFetcher) Title(ctx context.Context, docID string) (string, error) {
	return scrapeGoogleTitle(ctx, fmt.Sprintf(googleDocEditURL, docID), DefaultGoogleDocTitle, " - Google Docs")
}

// GoogleSheetFetcher downloads a Google Sheet through its CSV export
// endpoint and scrapes the edit page for a human title.
type GoogleSheetFetcher struct {
	log zerolog.Logger
}

// Fetch implements Fetcher.
func (f *GoogleSheetFetcher) Fetch(ctx context.Context, ref types.DocumentReference) (*types.FetchResult, error) {
	sheetID := extract.GoogleSheetID(ref.URL)
	if sheetID == "" {
		return nil, ErrInvalidGoogleSheetURL
	}

	content, err := fetchGoogleExport(ctx, fmt.Sprintf(googleSheetExportURL, sheetID))
	if err != nil {
		return nil, fmt.Errorf("failed to download Google Sheet (is it shared as 'Anyone with the link can view'?): %w", err)
	}

	title, err := scrapeGoogleTitle(ctx, fmt.Sprintf(googleSheetEditURL, sheetID), DefaultGoogleSheetTitle, " - Google Sheets")
	if err != nil {
		f.log.Debug().Err(err).Str("sheet_id", sheetID).Msg("title scrape failed, using default")
		title = DefaultGoogleSheetTitle
	}

	return &types.FetchResult{Content: content, Title: title}, nil
}

// Title scrapes the spreadsheet title from the edit page.
func (f *GoogleSheetFetcher) Title(ctx context.Context, sheetID string) (string, error) {
	return scrapeGoogleTitle(ctx, fmt.Sprintf(googleSheetEditURL, sheetID), DefaultGoogleSheetTitle, " - Google Sheets")
}

// fetchGoogleExport downloads an export endpoint and rejects empty content.
func fetchGoogleExport(ctx context.Context, exportURL string) (string, error) {
	result, err := fetch.URL(ctx, exportURL, fetch.DefaultOptions())
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(result.Body) == "" {
		return "", errors.New("export returned no content")
	}
	return result.Body, nil
}

// scrapeGoogleTitle fetches the canonical edit page and extracts a title via
// the ordered strategy chain, trimming the provider suffix.
func scrapeGoogleTitle(ctx context.Context, editURL, fallback, suffix string) (string, error) {
	result, err := fetch.URL(ctx, editURL, fetch.ScrapeOptions())
	if err != nil {
		return "", err
	}

	title := fetch.TitleFromHTML(result.Body, fallback)
	title = strings.TrimSuffix(title, suffix)
	if strings.TrimSpace(title) == "" {
		title = fallback
	}
	return title, nil
}
