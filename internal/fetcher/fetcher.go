// Package fetcher retrieves web pages and normalizes their HTML for analysis.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// userAgent is the browser-like identifying header sent with every fetch
	userAgent = "Mozilla/5.0"
	// defaultFetchTimeout bounds a single page retrieval
	defaultFetchTimeout = 30 * time.Second
	// maxBodyBytes caps how much of the response body is read; pages larger
	// than this are truncated rather than rejected
	maxBodyBytes = 2 << 20 // 2MB
)

// Fetcher retrieves target pages over HTTP
type Fetcher struct {
	httpClient *http.Client
}

// Option configures the Fetcher
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client for the fetcher
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// New creates a new page fetcher
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{Timeout: defaultFetchTimeout},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch performs a single GET against the target URL and returns the page
// body re-rendered as normalized HTML markup. Network failures, non-2xx
// statuses, and unparseable bodies are all returned as errors; the caller
// treats any of them as a fetch failure. Redirects, robots.txt, and charset
// negotiation follow the HTTP and parser library defaults.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: status %d", ErrBadStatus, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	html, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	return html, nil
}
