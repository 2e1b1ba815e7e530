package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// titleStrategy extracts a candidate title from a parsed document.
// Strategies are evaluated in priority order; the first non-empty wins.
type titleStrategy func(doc *goquery.Document) string

var titleStrategies = []titleStrategy{
	metaPropertyTitle("og:title"),
	metaNameTitle("twitter:title"),
	pageTitle,
}

// TitleFromHTML scrapes a human-readable title from an HTML page using an
// ordered fallback chain: structured metadata tags first, then the page
// title tag, then the caller-supplied fallback. Pure over its input.
func TitleFromHTML(html, fallback string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fallback
	}

	for _, strategy := range titleStrategies {
		if title := strings.TrimSpace(strategy(doc)); title != "" {
			return title
		}
	}
	return fallback
}

func metaPropertyTitle(property string) titleStrategy {
	return func(doc *goquery.Document) string {
		content, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
		return content
	}
}

func metaNameTitle(name string) titleStrategy {
	return func(doc *goquery.Document) string {
		content, _ := doc.Find(`meta[name="` + name + `"]`).First().Attr("content")
		return content
	}
}

func pageTitle(doc *goquery.Document) string {
	return doc.Find("title").First().Text()
}
