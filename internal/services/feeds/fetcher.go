package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultMaxBytes  = 10 << 20
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultAccept    = "application/rss+xml, application/xml, text/xml, */*"
)

// HTTPFetcher fetches feeds over HTTP and parses them with gofeed
type HTTPFetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBytes  int64
}

// Option is a functional option for configuring the fetcher
type Option func(*HTTPFetcher)

// WithTimeout bounds each fetch including body parsing
func WithTimeout(timeout time.Duration) Option {
	return func(f *HTTPFetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(userAgent string) Option {
	return func(f *HTTPFetcher) {
		if userAgent != "" {
			f.userAgent = userAgent
		}
	}
}

// WithMaxBytes caps the number of body bytes handed to the parser
func WithMaxBytes(maxBytes int64) Option {
	return func(f *HTTPFetcher) {
		if maxBytes > 0 {
			f.maxBytes = maxBytes
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(f *HTTPFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// NewFetcher creates a new HTTP feed fetcher with optional configuration
func NewFetcher(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{},
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch retrieves feedURL and parses it. Every failure is a *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) (*Document, error) {
	u, err := url.Parse(feedURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, NewFetchError(feedURL, StageRequest, ErrInvalidURL)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, NewFetchError(feedURL, StageRequest, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", DefaultAccept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, NewFetchError(feedURL, StageRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewStatusError(feedURL, resp.StatusCode)
	}

	parser := gofeed.NewParser()
	feed, err := parser.Parse(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, NewFetchError(feedURL, StageParse, err)
	}

	return documentFromFeed(feed), nil
}
