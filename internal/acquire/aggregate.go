// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/article-engine/internal/completion"
	"github.com/pdiddy/article-engine/internal/stage"
	"github.com/pdiddy/article-engine/pkg/types"
)

// NoContentSentinel is returned by SuggestTopics when nothing was collected.
const NoContentSentinel = "No content could be collected from the selected sources."

// TextFetcher is the page retrieval contract the Aggregator depends on.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Aggregator fetches every source in order and concatenates the text.
type Aggregator struct {
	fetcher TextFetcher
	client  completion.Client
	policy  types.PartialFailurePolicy
	writing types.WritingConfig
	log     logrus.FieldLogger
}

// NewAggregator builds an Aggregator. policy decides what a failed page does
// to the whole collection; writing supplies topic count and language.
func NewAggregator(fetcher TextFetcher, client completion.Client, policy types.PartialFailurePolicy, writing types.WritingConfig, log logrus.FieldLogger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		client:  client,
		policy:  policy,
		writing: writing,
		log:     log,
	}
}

// Collect fetches urls one after another. Each non-empty page text is
// appended followed by a blank line. Under PolicyContinue failed pages are
// logged and skipped, so a run where every page fails returns "" and no
// error. Under PolicyAbort the first failure is returned.
func (a *Aggregator) Collect(ctx context.Context, urls []string) (string, error) {
	var b strings.Builder
	for _, u := range urls {
		text, err := a.fetcher.FetchText(ctx, u)
		if err != nil {
			if a.policy == types.PolicyAbort {
				return "", err
			}
			a.log.WithField("url", u).Warnf("skipping source: %v", err)
			continue
		}
		if text == "" {
			a.log.WithField("url", u).Info("source returned no text")
			continue
		}
		b.WriteString(text)
		b.WriteString("\n\n")
		a.log.WithFields(logrus.Fields{"url": u, "chars": len(text)}).Debug("source collected")
	}
	return b.String(), nil
}

// SuggestTopics asks for topic suggestions over text. Empty text returns
// NoContentSentinel without calling the completion client.
func (a *Aggregator) SuggestTopics(ctx context.Context, text string) (string, error) {
	if text == "" {
		return NoContentSentinel, nil
	}
	return stage.Topics.Generate(ctx, a.client, stage.TopicInputs{
		Text:     text,
		Count:    a.writing.TopicCount,
		Language: a.writing.Language,
	})
}
