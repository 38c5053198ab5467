// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// StoredDocument describes an article persisted by the document store.
type StoredDocument struct {
	// Title is the title as the user chose it, before sanitization.
	Title string `json:"title" yaml:"title"`

	// Path is the Markdown file the article was written to.
	Path string `json:"path" yaml:"path"`

	// HTMLPath is the HTML rendering, when one was written.
	HTMLPath string `json:"html_path,omitempty" yaml:"html_path,omitempty"`

	// Content is the article body exactly as saved, without front matter.
	Content string `json:"-" yaml:"-"`

	// CreatedAt is when the document was written.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// FrontMatter is the optional YAML header written ahead of a stored article.
type FrontMatter struct {
	Title   string    `json:"title" yaml:"title"`
	Created time.Time `json:"created" yaml:"created"`
	Topic   string    `json:"topic,omitempty" yaml:"topic,omitempty"`
	Sources []string  `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// RunRecord is one entry of the run history ledger.
type RunRecord struct {
	ID        int64     `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Topic     string    `json:"topic" yaml:"topic"`
	Path      string    `json:"path" yaml:"path"`
	Sources   []string  `json:"sources" yaml:"sources"`
	Sections  int       `json:"sections" yaml:"sections"`
	Skipped   int       `json:"skipped" yaml:"skipped"`
	Refined   bool      `json:"refined" yaml:"refined"`
	Restarts  int       `json:"restarts" yaml:"restarts"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
