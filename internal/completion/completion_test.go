// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package completion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/article-engine/pkg/types"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// chatServer returns a test server that answers every request with status
// and body, counting calls and capturing the last request payload.
func chatServer(t *testing.T, status int, body string, calls *int32, last *map[string]any) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if last != nil {
			data, _ := io.ReadAll(r.Body)
			var m map[string]any
			json.Unmarshal(data, &m)
			*last = m
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestClient(t *testing.T, baseURL string) *OpenAIClient {
	t.Helper()
	c, err := NewOpenAIClient(types.LLMConfig{
		BaseURL:     baseURL + "/v1/",
		Model:       "deepseek-chat",
		APIKey:      "sk-test",
		Temperature: 0.7,
	}, quietLogger())
	require.NoError(t, err)
	return c
}

const okBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "deepseek-chat",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "1. Topic A\n2. Topic B"}}
  ]
}`

func TestOpenAIClient_Success(t *testing.T) {
	var calls int32
	var last map[string]any
	ts := chatServer(t, http.StatusOK, okBody, &calls, &last)

	got, err := newTestClient(t, ts.URL).Complete(context.Background(), "suggest topics")
	require.NoError(t, err)
	assert.Equal(t, "1. Topic A\n2. Topic B", got)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	assert.Equal(t, "deepseek-chat", last["model"])
	msgs, ok := last["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	msg := msgs[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "suggest topics", msg["content"])
}

func TestOpenAIClient_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   Kind
		wantStatus int
	}{
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"error": {"message": "invalid api key", "type": "authentication_error"}}`,
			wantKind:   KindAuth,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "forbidden",
			status:     http.StatusForbidden,
			body:       `{"error": {"message": "forbidden"}}`,
			wantKind:   KindAuth,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       `{"error": {"message": "slow down"}}`,
			wantKind:   KindQuota,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "insufficient balance",
			status:     http.StatusPaymentRequired,
			body:       `{"error": {"message": "insufficient balance"}}`,
			wantKind:   KindQuota,
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       `{"error": {"message": "boom"}}`,
			wantKind:   KindTransport,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:     "empty choices",
			status:   http.StatusOK,
			body:     `{"id": "x", "object": "chat.completion", "created": 0, "model": "deepseek-chat", "choices": []}`,
			wantKind: KindMalformed,
		},
		{
			name:     "body is not JSON",
			status:   http.StatusOK,
			body:     `this is not json`,
			wantKind: KindMalformed,
		},
		{
			name:     "choice without message content",
			status:   http.StatusOK,
			body:     `{"id": "x", "object": "chat.completion", "created": 0, "model": "deepseek-chat", "choices": [{"index": 0, "finish_reason": "stop"}]}`,
			wantKind: KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			ts := chatServer(t, tt.status, tt.body, &calls, nil)

			_, err := newTestClient(t, ts.URL).Complete(context.Background(), "prompt")
			require.Error(t, err)

			var cerr *Error
			require.True(t, errors.As(err, &cerr), "want *completion.Error, got %T", err)
			assert.Equal(t, tt.wantKind, cerr.Kind)
			assert.Equal(t, tt.wantStatus, cerr.StatusCode)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retries expected")
		})
	}
}

func TestOpenAIClient_EmptyPromptMakesNoRequest(t *testing.T) {
	var calls int32
	ts := chatServer(t, http.StatusOK, okBody, &calls, nil)

	_, err := newTestClient(t, ts.URL).Complete(context.Background(), "  \n\t ")
	require.Error(t, err)

	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, KindInvalidPrompt, cerr.Kind)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestNewOpenAIClient_RequiresKeyAndModel(t *testing.T) {
	_, err := NewOpenAIClient(types.LLMConfig{Model: "m"}, quietLogger())
	assert.Error(t, err)

	_, err = NewOpenAIClient(types.LLMConfig{APIKey: "k"}, quietLogger())
	assert.Error(t, err)
}

func TestLimited(t *testing.T) {
	var calls int32
	next := Func(func(_ context.Context, prompt string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "echo: " + prompt, nil
	})

	t.Run("zero rate returns the wrapped client", func(t *testing.T) {
		c := NewLimited(next, 0)
		_, isLimited := c.(*Limited)
		assert.False(t, isLimited)
	})

	t.Run("forwards under the limit", func(t *testing.T) {
		c := NewLimited(next, 6000)
		got, err := c.Complete(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "echo: hi", got)
	})

	t.Run("cancelled context fails without calling through", func(t *testing.T) {
		before := atomic.LoadInt32(&calls)
		c := NewLimited(next, 1)
		// Drain the single burst token.
		_, err := c.Complete(context.Background(), "first")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = c.Complete(ctx, "second")
		require.Error(t, err)
		var cerr *Error
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, KindTransport, cerr.Kind)
		assert.Equal(t, before+1, atomic.LoadInt32(&calls))
	})

	t.Run("rejects empty prompt", func(t *testing.T) {
		_, err := NewLimited(next, 60).Complete(context.Background(), "")
		assert.ErrorIs(t, err, ErrEmptyPrompt)
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "authentication", KindAuth.String())
	assert.Equal(t, "quota", KindQuota.String())
	assert.Equal(t, "transport", KindTransport.String())
}
