package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromHTML_OGTitleWins(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="Quarterly Report">
		<title>Quarterly Report - Google Docs</title>
	</head><body></body></html>`

	assert.Equal(t, "Quarterly Report", TitleFromHTML(html, "fallback"))
}

func TestTitleFromHTML_TwitterTitleSecond(t *testing.T) {
	html := `<html><head>
		<meta name="twitter:title" content="From Twitter Card">
		<title>Page Title</title>
	</head><body></body></html>`

	assert.Equal(t, "From Twitter Card", TitleFromHTML(html, "fallback"))
}

func TestTitleFromHTML_TitleTagFallback(t *testing.T) {
	html := `<html><head><title>  Plain Title  </title></head><body></body></html>`

	assert.Equal(t, "Plain Title", TitleFromHTML(html, "fallback"))
}

func TestTitleFromHTML_DefaultWhenNothingFound(t *testing.T) {
	html := `<html><head></head><body>no titles anywhere</body></html>`

	assert.Equal(t, "Untitled Document", TitleFromHTML(html, "Untitled Document"))
}

func TestTitleFromHTML_EmptyMetaSkipped(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="   ">
		<title>Real Title</title>
	</head><body></body></html>`

	assert.Equal(t, "Real Title", TitleFromHTML(html, "fallback"))
}
