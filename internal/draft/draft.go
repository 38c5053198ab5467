// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package draft writes an article section by section from a chosen outline.
package draft

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/article-engine/internal/completion"
	"github.com/pdiddy/article-engine/internal/stage"
	"github.com/pdiddy/article-engine/pkg/types"
)

// Writer generates one section per outline line, strictly in order.
type Writer struct {
	client   completion.Client
	policy   types.PartialFailurePolicy
	language string
	log      logrus.FieldLogger
}

// NewWriter returns a Writer. cfg supplies the language and the policy for
// failed sections (PolicyAbort when unset).
func NewWriter(client completion.Client, cfg types.WritingConfig, log logrus.FieldLogger) *Writer {
	policy := cfg.OnError
	if policy == "" {
		policy = types.PolicyAbort
	}
	return &Writer{
		client:   client,
		policy:   policy,
		language: cfg.Language,
		log:      log,
	}
}

// SplitOutline returns the trimmed non-blank lines of outline.
func SplitOutline(outline string) []string {
	var sections []string
	for _, line := range strings.Split(outline, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			sections = append(sections, s)
		}
	}
	return sections
}

// Heading strips leading Markdown heading markers from an outline line.
// A line made only of markers is returned unchanged.
func Heading(section string) string {
	h := strings.TrimSpace(strings.TrimLeft(section, "#"))
	if h == "" {
		return section
	}
	return h
}

// Write produces the draft for outline. Under PolicyAbort the first failed
// section returns an empty draft and the error. Under PolicyContinue failed
// sections are logged, listed in Draft.Skipped and left out.
func (w *Writer) Write(ctx context.Context, topic, outline string) (types.Draft, error) {
	var d types.Draft
	sections := SplitOutline(outline)
	for i, section := range sections {
		heading := Heading(section)
		body, err := stage.Section.Generate(ctx, w.client, stage.SectionInputs{
			Topic:    topic,
			Section:  heading,
			Language: w.language,
		})
		if err != nil {
			if w.policy == types.PolicyAbort {
				return types.Draft{}, fmt.Errorf("writing section %d/%d %q: %w", i+1, len(sections), heading, err)
			}
			w.log.WithField("section", heading).Warnf("skipping section: %v", err)
			d.Skipped = append(d.Skipped, heading)
			continue
		}
		d.Sections = append(d.Sections, types.DraftSection{Heading: heading, Body: body})
		w.log.WithFields(logrus.Fields{"section": heading, "index": i + 1, "total": len(sections)}).Debug("section written")
	}
	return d, nil
}
