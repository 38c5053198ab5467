// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire fetches source pages and aggregates their text for the
// topic suggestion stage.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/article-engine/internal/httputil"
	"github.com/pdiddy/article-engine/pkg/types"
)

// FetchError reports a page that could not be fetched or parsed.
type FetchError struct {
	URL        string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// EnsureScheme completes a missing scheme with https:// and rejects schemes
// other than http and https.
func EnsureScheme(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", errors.New("empty URL")
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q (want http or https)", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL %q has no host", rawURL)
	}
	return u.String(), nil
}

// PageFetcher retrieves a page and reduces it to plain text.
type PageFetcher struct {
	client    *http.Client
	extractor Extractor
	maxBytes  int64
}

// NewPageFetcher returns a fetcher that uses client for requests and
// extractor to turn HTML into text.
func NewPageFetcher(client *http.Client, extractor Extractor, cfg types.HTTPConfig) *PageFetcher {
	return &PageFetcher{
		client:    client,
		extractor: extractor,
		maxBytes:  cfg.MaxBodyBytes,
	}
}

// FetchText performs one GET for rawURL and returns the extracted text.
// Failures are returned as *FetchError and are never retried.
func (f *PageFetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	target, err := EnsureScheme(rawURL)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}

	body, err := httputil.Get(ctx, f.client, target, f.maxBytes)
	if err != nil {
		fe := &FetchError{URL: target, Err: err}
		var se *httputil.StatusError
		if errors.As(err, &se) {
			fe.StatusCode = se.StatusCode
		}
		return "", fe
	}

	text, err := f.extractor.Extract(body, target)
	if err != nil {
		return "", &FetchError{URL: target, Err: fmt.Errorf("extracting text: %w", err)}
	}
	return text, nil
}
