package sources

import (
	"context"
	"strings"

	"github.com/jonathan/docuchat/internal/types"
)

// DefaultCustomTextTitle labels pasted text with no explicit title.
const DefaultCustomTextTitle = "Custom Text"

// CustomTextFetcher passes user-pasted text through unchanged. Some clients
// send the text in the url field, so that is accepted as a fallback. It
// never fails: whatever the user pasted, whitespace included, is the
// document.
type CustomTextFetcher struct{}

// Fetch implements Fetcher.
func (f *CustomTextFetcher) Fetch(ctx context.Context, ref types.DocumentReference) (*types.FetchResult, error) {
	content := ref.InlineContent
	if content == "" {
		content = ref.URL
	}

	title := ref.Title
	if strings.TrimSpace(title) == "" {
		title = DefaultCustomTextTitle
	}
	return &types.FetchResult{Content: content, Title: title}, nil
}
