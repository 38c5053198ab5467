// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/pdiddy/article-engine/pkg/types"
)

// Extractor turns a fetched HTML document into plain text.
type Extractor interface {
	Extract(html []byte, pageURL string) (string, error)
}

// NewExtractor returns the extractor selected by kind.
func NewExtractor(kind types.ExtractorKind) (Extractor, error) {
	switch kind {
	case types.ExtractorText, "":
		return TextExtractor{}, nil
	case types.ExtractorReadability:
		return ReadabilityExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor %q", kind)
	}
}

// noiseSelectors are removed before reading page text.
const noiseSelectors = "script, style, noscript, template"

// TextExtractor returns the whole visible text of a page, one non-blank
// line per text line with runs of whitespace collapsed.
type TextExtractor struct{}

// Extract implements Extractor.
func (TextExtractor) Extract(html []byte, _ string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}
	doc.Find(noiseSelectors).Remove()
	return normalizeText(doc.Text()), nil
}

// ReadabilityExtractor returns the main article text as detected by
// go-readability.
type ReadabilityExtractor struct{}

// Extract implements Extractor.
func (ReadabilityExtractor) Extract(html []byte, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parsing page URL: %w", err)
	}
	article, err := readability.FromReader(bytes.NewReader(html), u)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}
	return normalizeText(article.TextContent), nil
}

// normalizeText collapses whitespace within each line and drops blank lines.
func normalizeText(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if f := strings.Fields(line); len(f) > 0 {
			lines = append(lines, strings.Join(f, " "))
		}
	}
	return strings.Join(lines, "\n")
}
