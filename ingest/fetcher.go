package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Some institutional sites reject requests without a browser user agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// FetchResult is the raw payload of one location.
type FetchResult struct {
	Body        []byte
	ContentType string
}

// IsPDF reports whether the payload was served as a PDF document.
func (r *FetchResult) IsPDF() bool {
	return strings.Contains(r.ContentType, "application/pdf")
}

// Fetcher retrieves the raw contents of a location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (*FetchResult, error)
}

// HTTPFetcher fetches locations over HTTP with a per-request timeout and a
// desktop user agent.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher with the given per-request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves a location. Non-2xx responses are errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d for %s", ErrBadStatus, resp.StatusCode, location)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &FetchResult{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
