// Package extract provides pure identifier extraction from provider URLs.
// Functions here never perform network access and return the empty string
// for any input that does not match the provider's URL shapes.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	googleDocRe   = regexp.MustCompile(`/document/d/([a-zA-Z0-9-_]+)`)
	googleSheetRe = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)
	notionPageRe  = regexp.MustCompile(`([a-f0-9]{32}|[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12})`)
	trailingIDRe  = regexp.MustCompile(`-[a-f0-9]{32}$`)
)

// YouTubeVideoID extracts the video ID from a YouTube URL.
// Supported shapes:
//
//	https://www.youtube.com/watch?v=VIDEO_ID
//	https://youtu.be/VIDEO_ID
//	https://www.youtube.com/embed/VIDEO_ID
func YouTubeVideoID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "youtu.be":
		id := strings.TrimPrefix(u.Path, "/")
		if i := strings.IndexByte(id, '/'); i >= 0 {
			id = id[:i]
		}
		return id
	case strings.HasSuffix(host, "youtube.com"):
		if id := u.Query().Get("v"); id != "" {
			return id
		}
		if rest, ok := strings.CutPrefix(u.Path, "/embed/"); ok {
			if i := strings.IndexByte(rest, '/'); i >= 0 {
				rest = rest[:i]
			}
			return rest
		}
	}
	return ""
}

// GoogleDocID extracts the document ID from a Google Docs URL
// (https://docs.google.com/document/d/DOCUMENT_ID/edit).
func GoogleDocID(raw string) string {
	m := googleDocRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

// GoogleSheetID extracts the spreadsheet ID from a Google Sheets URL
// (https://docs.google.com/spreadsheets/d/SHEET_ID/edit).
func GoogleSheetID(raw string) string {
	m := googleSheetRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

// NotionPageID extracts the page ID from a Notion URL. Notion exposes the
// ID either as a bare 32-char hex suffix or as a dashed UUID:
//
//	https://www.notion.so/Page-Title-abc123def456...
//	https://workspace.notion.site/Page-Title-abc123def456...
func NotionPageID(raw string) string {
	return notionPageRe.FindString(raw)
}

// NotionSlugTitle derives a human-readable title from a Notion URL slug.
// The slug is the most reliable title source for Notion pages, so it is
// computed before any network call: the trailing page ID is stripped,
// hyphens become spaces and the words are title-cased.
func NotionSlugTitle(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	slug := strings.Trim(u.Path, "/")
	if i := strings.LastIndexByte(slug, '/'); i >= 0 {
		slug = slug[i+1:]
	}
	slug = trailingIDRe.ReplaceAllString(slug, "")
	slug = strings.ReplaceAll(slug, "-", " ")
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ""
	}

	return cases.Title(language.English).String(slug)
}
