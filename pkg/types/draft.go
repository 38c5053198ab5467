// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// DraftSection is one generated section of an article draft.
type DraftSection struct {
	// Heading is the outline line the section was written for, without
	// leading Markdown heading markers.
	Heading string `json:"heading" yaml:"heading"`

	// Body is the generated prose for the section.
	Body string `json:"body" yaml:"body"`
}

// Draft is the ordered concatenation of generated sections. Sections are
// appended in outline order and never reordered.
type Draft struct {
	// Sections lists the generated sections in outline order.
	Sections []DraftSection `json:"sections" yaml:"sections"`

	// Skipped lists headings whose generation failed and were omitted
	// under the continue-on-error policy.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Empty reports whether the draft has no sections.
func (d Draft) Empty() bool {
	return len(d.Sections) == 0
}

// Markdown renders the draft as "## heading\n\nbody\n\n" per section.
func (d Draft) Markdown() string {
	var b strings.Builder
	for _, s := range d.Sections {
		b.WriteString("## ")
		b.WriteString(s.Heading)
		b.WriteString("\n\n")
		b.WriteString(s.Body)
		b.WriteString("\n\n")
	}
	return b.String()
}
