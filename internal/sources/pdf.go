package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/docuchat/internal/types"
)

// MaxPDFSizeBytes caps uploaded PDF payloads at 10 MiB.
const MaxPDFSizeBytes = 10 << 20

// DefaultPDFTitle is used when the PDF carries no usable Title metadata.
const DefaultPDFTitle = "Untitled PDF Document"

// Errors returned by PDF extraction.
var (
	ErrPDFTooLarge  = errors.New("PDF exceeds the 10 MiB size limit")
	ErrEmptyPDFText = errors.New("no extractable text found in PDF")
	ErrInvalidPDF   = errors.New("file is not a valid PDF")
)

// ExtractPDFText parses raw PDF bytes and returns the concatenated page text
// plus the document title from the Info dictionary. Image-only PDFs yield
// ErrEmptyPDFText.
func ExtractPDFText(data []byte) (*types.FetchResult, error) {
	if len(data) > MaxPDFSizeBytes {
		return nil, ErrPDFTooLarge
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to decode rather than losing the
			// whole document.
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, strings.TrimSpace(text))
		}
	}

	content := strings.Join(pages, "\n")
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyPDFText
	}

	return &types.FetchResult{Content: content, Title: pdfTitle(reader)}, nil
}

// pdfTitle reads the Title entry of the Info dictionary, if present.
func pdfTitle(reader *pdf.Reader) (title string) {
	title = DefaultPDFTitle
	defer func() {
		// The underlying parser panics on some malformed trailers.
		_ = recover()
	}()

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return title
	}
	if t := strings.TrimSpace(info.Key("Title").RawString()); t != "" {
		title = t
	}
	return title
}

// PDFFetcher serves PDFs whose text was already extracted at upload time and
// passed along inline.
type PDFFetcher struct{}

// Fetch implements Fetcher.
func (f *PDFFetcher) Fetch(ctx context.Context, ref types.DocumentReference) (*types.FetchResult, error) {
	if strings.TrimSpace(ref.InlineContent) == "" {
		return nil, errors.New("PDF reference carries no extracted content")
	}

	title := ref.Title
	if title == "" {
		title = DefaultPDFTitle
	}
	return &types.FetchResult{Content: ref.InlineContent, Title: title}, nil
}
