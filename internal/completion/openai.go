// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package completion

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/article-engine/pkg/types"
)

// OpenAIClient calls an OpenAI-compatible chat completions endpoint.
// DeepSeek is the default provider.
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
	log         logrus.FieldLogger
}

// NewOpenAIClient builds a client from cfg. The API key must be resolved by
// the caller (config, environment or secrets file) before this is called.
// The SDK's own retry loop is turned off.
func NewOpenAIClient(cfg types.LLMConfig, log logrus.FieldLogger, extra ...option.RequestOption) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm api key missing; set llm.api_key, ARTICLE_ENGINE_LLM_API_KEY or .secrets/llm-api-key")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)

	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		log:         log,
	}, nil
}

// Complete sends prompt as a single user message and returns the first
// choice's content verbatim.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := checkPrompt(prompt); err != nil {
		return "", err
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if c.temperature > 0 {
		params.Temperature = openai.Float(c.temperature)
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindMalformed, Err: errors.New("response has no choices")}
	}
	if !resp.Choices[0].Message.JSON.Content.Valid() {
		return "", &Error{Kind: KindMalformed, Err: errors.New("first choice has no message content")}
	}

	c.log.WithFields(logrus.Fields{
		"model":         c.model,
		"prompt_chars":  len(prompt),
		"elapsed":       time.Since(start).Round(time.Millisecond),
		"finish_reason": resp.Choices[0].FinishReason,
	}).Debug("completion finished")

	return resp.Choices[0].Message.Content, nil
}

// classify converts an SDK error into an *Error. A body that cannot be
// decoded is malformed, not a transport failure.
func classify(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return &Error{
			Kind:       kindForStatus(apierr.StatusCode),
			StatusCode: apierr.StatusCode,
			Err:        err,
		}
	}
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &Error{Kind: KindMalformed, Err: err}
	}
	return &Error{Kind: KindTransport, Err: err}
}
