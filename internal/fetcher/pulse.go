// Package fetcher downloads JSON documents from the Pulselive football API.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	plerrors "github.com/princespaghetti/plfetch/internal/errors"
)

const (
	// DefaultOrigin is sent as the Origin header. The API rejects requests
	// that do not look like they come from the Premier League site.
	DefaultOrigin = "https://www.premierleague.com"

	// DefaultUserAgent is a browser User-Agent accepted by the API.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Fetcher issues GET requests with the browser-like headers the API expects.
type Fetcher struct {
	client    HTTPClient
	origin    string
	userAgent string
	logger    zerolog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHeaders overrides the Origin and User-Agent headers. Empty values keep the defaults.
func WithHeaders(origin, userAgent string) Option {
	return func(f *Fetcher) {
		if origin != "" {
			f.origin = origin
		}
		if userAgent != "" {
			f.userAgent = userAgent
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new Fetcher with the given HTTP client.
// If client is nil, uses http.DefaultClient, which has no timeout.
func NewFetcher(client HTTPClient, opts ...Option) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	f := &Fetcher{
		client:    client,
		origin:    DefaultOrigin,
		userAgent: DefaultUserAgent,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the raw response body from url.
// Any status outside 2xx is an error and the body is discarded.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Origin", f.origin)
	req.Header.Set("User-Agent", f.userAgent)

	f.logger.Debug().Str("url", url).Msg("sending request")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &plerrors.FetchError{Op: "fetch", Path: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // Ignore close error - body already consumed

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &plerrors.FetchError{
			Op:   "fetch",
			Path: url,
			Err:  fmt.Errorf("%w: %d %s", plerrors.ErrHTTPStatus, resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if len(data) == 0 {
		return nil, &plerrors.FetchError{Op: "fetch", Path: url, Err: plerrors.ErrEmptyBody}
	}

	f.logger.Debug().Str("url", url).Int("status", resp.StatusCode).Int("bytes", len(data)).Msg("response received")

	return data, nil
}

// FetchJSON downloads url and returns the body re-indented by FormatJSON.
func (f *Fetcher) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return FormatJSON(data)
}
