package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/dvloznov/statement-sync/internal/logger"
)

// FetchError reports a failure to download a statement file.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a downloaded file that could not be read as a PDF.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Extractor downloads PDF files and extracts their plain text.
type Extractor struct {
	httpClient *http.Client
}

// NewExtractor creates an Extractor with a default HTTP client.
func NewExtractor() *Extractor {
	return &Extractor{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// NewExtractorWithClient creates an Extractor using the given HTTP client.
func NewExtractorWithClient(client *http.Client) *Extractor {
	return &Extractor{httpClient: client}
}

// Extract downloads the file at the given URL and returns the concatenated
// plain text of all pages. Pages that fail text extraction are skipped;
// the document as a whole fails only when it cannot be opened at all.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	log := logger.FromContext(ctx)

	data, err := e.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ParseError{URL: url, Err: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Warn().
				Err(err).
				Int("page", i).
				Str("url", url).
				Msg("Skipping page with unreadable text")
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// fetch downloads the file, bounding the request with the given context.
func (e *Extractor) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	return data, nil
}
