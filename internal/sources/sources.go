// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources turns user input into the list of pages to collect:
// a comma-separated list, preset site indices, a file of URLs or the item
// links of an RSS/Atom feed.
package sources

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/article-engine/pkg/types"
)

const (
	MinSources = 1
	MaxSources = 10
)

// Mode is the way the user supplies sources.
type Mode int

const (
	ModeList Mode = iota + 1
	ModePreset
	ModeFile
	ModeFeed
)

// Modes lists the input modes in menu order.
var Modes = []Mode{ModeList, ModePreset, ModeFile, ModeFeed}

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "Enter URLs (comma-separated)"
	case ModePreset:
		return "Choose preset sites"
	case ModeFile:
		return "Read URLs from a file"
	case ModeFeed:
		return "Use the links of an RSS/Atom feed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps menu input ("1".."4") to a Mode.
func ParseMode(input string) (Mode, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < int(ModeList) || n > int(ModeFeed) {
		return 0, fmt.Errorf("unknown source mode %q (want 1-%d)", strings.TrimSpace(input), len(Modes))
	}
	return Mode(n), nil
}

// ValidationError reports a source list outside the accepted size.
type ValidationError struct {
	Count int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("got %d sources, need between %d and %d", e.Count, MinSources, MaxSources)
}

// Validate checks that urls holds between MinSources and MaxSources entries.
func Validate(urls []string) error {
	if len(urls) < MinSources || len(urls) > MaxSources {
		return &ValidationError{Count: len(urls)}
	}
	return nil
}

// ParseList splits comma-separated input into trimmed, non-empty URLs and
// validates the count.
func ParseList(input string) ([]string, error) {
	var urls []string
	for _, part := range strings.Split(input, ",") {
		if u := strings.TrimSpace(part); u != "" {
			urls = append(urls, u)
		}
	}
	if err := Validate(urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// SelectPresets resolves comma-separated 1-based indices into preset URLs.
func SelectPresets(presets []types.Preset, input string) ([]string, error) {
	var urls []string
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > len(presets) {
			return nil, fmt.Errorf("invalid preset %q (want 1-%d)", part, len(presets))
		}
		urls = append(urls, presets[n-1].URL)
	}
	if err := Validate(urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// ReadFile reads one URL per line from path. Blank lines and lines starting
// with # are ignored.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}
	if err := Validate(urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// FeedReader resolves a feed URL into the links of its items.
type FeedReader struct {
	parser *gofeed.Parser
}

// NewFeedReader returns a FeedReader that fetches feeds with client.
func NewFeedReader(client *http.Client, userAgent string) *FeedReader {
	p := gofeed.NewParser()
	p.Client = client
	if userAgent != "" {
		p.UserAgent = userAgent
	}
	return &FeedReader{parser: p}
}

// Links fetches feedURL and returns up to MaxSources item links in feed
// order. A feed without item links fails validation.
func (r *FeedReader) Links(ctx context.Context, feedURL string) ([]string, error) {
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("reading feed %s: %w", feedURL, err)
	}

	var urls []string
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Link) == "" {
			continue
		}
		urls = append(urls, strings.TrimSpace(item.Link))
		if len(urls) == MaxSources {
			break
		}
	}
	if err := Validate(urls); err != nil {
		return nil, err
	}
	return urls, nil
}
