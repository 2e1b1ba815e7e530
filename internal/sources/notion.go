package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/docuchat/internal/extract"
	"github.com/jonathan/docuchat/internal/fetch"
	"github.com/jonathan/docuchat/internal/types"
)

// MinNotionContentLength is the threshold below which a scraped Notion page
// is considered empty. Public Notion pages render a skeleton over plain HTTP,
// so very short extractions usually mean the content never loaded.
const MinNotionContentLength = 10

// DefaultNotionTitle is used when neither the URL slug nor the page HTML
// yields a title.
const DefaultNotionTitle = "Notion Page"

// Errors returned by the Notion fetcher.
var (
	ErrInvalidNotionURL = errors.New("invalid Notion URL")
	ErrEmptyNotionPage  = errors.New("Notion page has no readable content (is it shared to the web?)")
)

// notionContentSelectors identify the main content region of a rendered
// Notion page, tried in order before falling back to the whole body.
var notionContentSelectors = []string{".notion-page-content", "main", "article"}

// notionNoiseSelectors match chrome that should never reach the prompt.
var notionNoiseSelectors = []string{
	".notion-topbar",
	".notion-sidebar",
	".notion-overlay-container",
	".notion-help-button",
}

// NotionFetcher scrapes publicly shared Notion pages. Plain HTTP is tried
// first; when the page is a client-rendered shell and browser fallback is
// enabled, a headless browser renders it instead.
type NotionFetcher struct {
	browserFallback bool
	log             zerolog.Logger
}

// Fetch implements Fetcher.
func (f *NotionFetcher) Fetch(ctx context.Context, ref types.DocumentReference) (*types.FetchResult, error) {
	if extract.NotionPageID(ref.URL) == "" {
		return nil, ErrInvalidNotionURL
	}

	result, err := fetch.URL(ctx, ref.URL, fetch.ScrapeOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Notion page: %w", err)
	}
	html := result.Body

	content, err := fetch.ExtractMainText(html, notionContentSelectors, notionNoiseSelectors...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Notion page: %w", err)
	}
	if f.browserFallback && fetch.ShouldUseBrowser(content) {
		f.log.Debug().Str("url", ref.URL).Msg("static scrape too thin, rendering with browser")
		rendered, berr := fetch.WithBrowser(ctx, ref.URL, fetch.ScrapeTimeout, f.log)
		if berr != nil {
			f.log.Warn().Err(berr).Str("url", ref.URL).Msg("browser render failed, keeping static content")
		} else if extracted, eerr := fetch.ExtractMainText(rendered, notionContentSelectors, notionNoiseSelectors...); eerr == nil {
			html = rendered
			content = extracted
		}
	}

	if len(strings.TrimSpace(content)) < MinNotionContentLength {
		return nil, ErrEmptyNotionPage
	}

	return &types.FetchResult{Content: content, Title: f.title(ref.URL, html)}, nil
}

// Title resolves a display title for a Notion URL without fetching content.
// The URL slug is preferred; the page itself is scraped only when the slug
// carries no words.
func (f *NotionFetcher) Title(ctx context.Context, pageURL string) (string, error) {
	if extract.NotionPageID(pageURL) == "" {
		return "", ErrInvalidNotionURL
	}

	if slug := extract.NotionSlugTitle(pageURL); slug != "" {
		return slug, nil
	}

	scrapeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	result, err := fetch.URL(scrapeCtx, pageURL, fetch.ScrapeOptions())
	if err != nil {
		return DefaultNotionTitle, nil
	}
	return f.title(pageURL, result.Body), nil
}

// title picks the best available title: URL slug, then page HTML, then the
// default.
func (f *NotionFetcher) title(pageURL, html string) string {
	if slug := extract.NotionSlugTitle(pageURL); slug != "" {
		return slug
	}
	title := fetch.TitleFromHTML(html, DefaultNotionTitle)
	title = strings.TrimSuffix(title, " | Notion")
	if strings.TrimSpace(title) == "" {
		return DefaultNotionTitle
	}
	return title
}
