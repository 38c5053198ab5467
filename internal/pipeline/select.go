// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Select resolves user input against numbered options. A number within
// 1..len(options) picks that option; any other non-empty text is returned
// verbatim. ok is false for empty input, which callers answer by asking
// again.
func Select(input string, options []string) (choice string, ok bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], true
	}
	return input, true
}

// listMarker matches a leading "1. " / "2) " / "3、" / "- " / "* " list marker.
var listMarker = regexp.MustCompile(`^\s*(?:\d+[.)]\s+|\d+、\s*|[-*•]\s+)`)

// SuggestionOptions turns a suggestion reply into selectable lines: one per
// non-blank line, with list markers removed.
func SuggestionOptions(text string) []string {
	var opts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if line != "" {
			opts = append(opts, line)
		}
	}
	return opts
}

var (
	// outlineSeparator is a line of three or more dashes.
	outlineSeparator = regexp.MustCompile(`(?m)^[ \t]*-{3,}[ \t]*$`)
	blankLine        = regexp.MustCompile(`\n[ \t\r]*\n`)
)

// OutlineOptions splits an outline reply into whole outlines. Blocks are
// separated by "---" lines; without separators, blank lines split blocks.
// Each block keeps its lines so the chosen outline drives one section per
// line.
func OutlineOptions(text string) []string {
	var blocks []string
	if outlineSeparator.MatchString(text) {
		blocks = outlineSeparator.Split(text, -1)
	} else {
		blocks = blankLine.Split(text, -1)
	}

	var opts []string
	for _, b := range blocks {
		if b = strings.TrimSpace(b); b != "" {
			opts = append(opts, b)
		}
	}
	return opts
}

// TypedOutline turns a single typed line into an outline: sections are
// separated by semicolons.
func TypedOutline(input string) string {
	parts := strings.Split(input, ";")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return strings.Join(lines, "\n")
}

// Feedback is the user's verdict on a finished article.
type Feedback int

const (
	FeedbackUnknown Feedback = iota
	FeedbackSatisfied
	FeedbackRevise
)

// ParseFeedback recognises "satisfied" and "revise" (case-insensitive, in
// English or Chinese) and the menu numbers 1 and 2.
func ParseFeedback(input string) Feedback {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "satisfied", "满意", "1":
		return FeedbackSatisfied
	case "revise", "修改", "2":
		return FeedbackRevise
	default:
		return FeedbackUnknown
	}
}
