package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_InvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "example.com/page"},
		{"garbage", "://nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := URL(context.Background(), tt.url, nil)
			require.Error(t, err)

			var fetchErr *Error
			require.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, fetchErr.Message, "invalid URL")
		})
	}
}

func TestURL_Success(t *testing.T) {
	var gotUserAgent, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, ScrapeOptions())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.Body, "hello")
	assert.Contains(t, result.ContentType, "text/html")
	assert.Equal(t, DefaultUserAgent, gotUserAgent)
	assert.Contains(t, gotAccept, "text/html")
}

func TestURL_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusForbidden, result.StatusCode)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "403")
}

func TestExtractMainText(t *testing.T) {
	html := `<html>
		<head><script>var x = 1;</script><style>.a{}</style></head>
		<body>
			<nav>Navigation links</nav>
			<main>  Actual   content
			here  </main>
			<footer>Footer junk</footer>
		</body>
	</html>`

	text, err := ExtractMainText(html, []string{"main"})
	require.NoError(t, err)
	assert.Equal(t, "Actual content\nhere", text)
	assert.NotContains(t, text, "Navigation")
	assert.NotContains(t, text, "var x")
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	html := `<html><body><div class="whatever">plain text</div></body></html>`

	text, err := ExtractMainText(html, []string{".notion-page-content", "main"})
	require.NoError(t, err)
	assert.Equal(t, "plain text", text)
}

func TestExtractMainText_NoiseSelectors(t *testing.T) {
	html := `<html><body>
		<div class="notion-topbar">topbar</div>
		<div class="notion-page-content">the real page</div>
	</body></html>`

	text, err := ExtractMainText(html, []string{".notion-page-content"}, ".notion-topbar", ".notion-presence")
	require.NoError(t, err)
	assert.Equal(t, "the real page", text)
}

func TestCleanWhitespace(t *testing.T) {
	in := "  a   b \n\n\n c\td  \n"
	assert.Equal(t, "a b\nc d", cleanWhitespace(in))
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("   short   "))

	long := make([]byte, MinContentLength+1)
	for i := range long {
		long[i] = 'x'
	}
	assert.False(t, ShouldUseBrowser(string(long)))
}
