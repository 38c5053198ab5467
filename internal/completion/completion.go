// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package completion is the single chokepoint between the pipeline and the
// generative text service. Every stage that needs generated text goes through
// a Client.
package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Client turns a prompt into generated text with exactly one request.
// Implementations never retry.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Func adapts an ordinary function to the Client interface.
type Func func(ctx context.Context, prompt string) (string, error)

// Complete calls f(ctx, prompt).
func (f Func) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Kind classifies a completion failure.
type Kind int

const (
	KindTransport Kind = iota
	KindInvalidPrompt
	KindAuth
	KindQuota
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidPrompt:
		return "invalid prompt"
	case KindAuth:
		return "authentication"
	case KindQuota:
		return "quota"
	case KindMalformed:
		return "malformed response"
	default:
		return "transport"
	}
}

// Error is returned by every Client implementation in this package.
type Error struct {
	Kind       Kind
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion %s error (HTTP %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrEmptyPrompt is wrapped by the KindInvalidPrompt error.
var ErrEmptyPrompt = errors.New("prompt is empty")

// checkPrompt rejects prompts that are empty after trimming whitespace.
func checkPrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return &Error{Kind: KindInvalidPrompt, Err: ErrEmptyPrompt}
	}
	return nil
}

// kindForStatus maps an HTTP status code to a failure kind.
func kindForStatus(code int) Kind {
	switch code {
	case 401, 403:
		return KindAuth
	case 402, 429:
		return KindQuota
	default:
		return KindTransport
	}
}
