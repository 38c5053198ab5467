// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package completion

import (
	"context"

	"golang.org/x/time/rate"
)

// Limited paces calls to the wrapped client. It waits for the limiter before
// each call and never retries.
type Limited struct {
	next    Client
	limiter *rate.Limiter
}

// NewLimited wraps next so that at most requestsPerMinute calls start per
// minute. A non-positive rate returns next unchanged.
func NewLimited(next Client, requestsPerMinute int) Client {
	if requestsPerMinute <= 0 {
		return next
	}
	return &Limited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
	}
}

// Complete waits for a token and forwards the prompt.
func (l *Limited) Complete(ctx context.Context, prompt string) (string, error) {
	if err := checkPrompt(prompt); err != nil {
		return "", err
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return "", &Error{Kind: KindTransport, Err: err}
	}
	return l.next.Complete(ctx, prompt)
}
