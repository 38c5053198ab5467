// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/article-engine/pkg/types"
)

// DefaultMaxBodyBytes caps response bodies when the config leaves it unset.
const DefaultMaxBodyBytes int64 = 10 << 20

// NewClient returns an HTTP client configured from cfg. The client sets the
// configured User-Agent on every request that does not carry one.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &userAgentTransport{
			base:      http.DefaultTransport,
			userAgent: cfg.UserAgent,
		},
	}
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent == "" || req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %s", e.Status)
}

// Get issues a single GET request and returns the body, read up to maxBytes
// (DefaultMaxBodyBytes when maxBytes <= 0). A non-2xx status yields a
// *StatusError. There is no retry.
func Get(ctx context.Context, client *http.Client, url string, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
