// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists finished articles as Markdown files named after
// their sanitized title.
package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/article-engine/internal/convert"
	"github.com/pdiddy/article-engine/pkg/types"
)

const (
	fallbackName  = "untitled"
	maxNameRunes  = 120
	frontMatterHR = "---\n"
)

// Sanitize derives a file-system-safe base name from title. Letters,
// digits, space, underscore and hyphen are kept; every other rune becomes
// an underscore. Surrounding spaces and underscores are trimmed.
func Sanitize(title string) string {
	var b strings.Builder
	n := 0
	for _, r := range title {
		if n == maxNameRunes {
			break
		}
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == ' ', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
		n++
	}
	name := strings.Trim(b.String(), " _")
	if name == "" {
		return fallbackName
	}
	return name
}

// Store writes articles under a single output directory.
type Store struct {
	dir         string
	frontMatter bool
	html        convert.Converter
	log         logrus.FieldLogger
	now         func() time.Time
}

// NewStore returns a Store for cfg. When cfg.RenderHTML is set, html renders
// the companion page; a nil html with RenderHTML set uses goldmark.
func NewStore(cfg types.StoreConfig, html convert.Converter, log logrus.FieldLogger) *Store {
	if cfg.RenderHTML && html == nil {
		html = convert.NewGoldmarkConverter()
	}
	if !cfg.RenderHTML {
		html = nil
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		dir:         cfg.OutputDir,
		frontMatter: cfg.FrontMatter,
		html:        html,
		log:         log,
		now:         time.Now,
	}
}

// SaveOption adds metadata to a saved document's front matter.
type SaveOption func(*types.FrontMatter)

// WithTopic records the article topic in the front matter.
func WithTopic(topic string) SaveOption {
	return func(fm *types.FrontMatter) { fm.Topic = topic }
}

// WithSources records the source URLs in the front matter.
func WithSources(urls []string) SaveOption {
	return func(fm *types.FrontMatter) { fm.Sources = append([]string(nil), urls...) }
}

// Prepared is a document assembled in memory and ready to be written.
type Prepared struct {
	Title   string
	Path    string
	Content string
	Data    []byte // file bytes, front matter included
	Created time.Time
}

// Prepare assembles the Markdown file for title and content: the target
// path under the output directory and, when enabled, the front matter.
// Nothing touches the disk.
func (s *Store) Prepare(title, content string, opts ...SaveOption) (Prepared, error) {
	created := s.now().UTC().Truncate(time.Second)
	p := Prepared{
		Title:   title,
		Path:    filepath.Join(s.dir, Sanitize(title)+".md"),
		Content: content,
		Data:    []byte(content),
		Created: created,
	}
	if !s.frontMatter {
		return p, nil
	}

	fm := types.FrontMatter{Title: title, Created: created}
	for _, opt := range opts {
		opt(&fm)
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return Prepared{}, fmt.Errorf("encoding front matter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(frontMatterHR)
	buf.Write(header)
	buf.WriteString(frontMatterHR)
	buf.WriteString("\n")
	buf.WriteString(content)
	p.Data = buf.Bytes()
	return p, nil
}

// Write stores p, creating the output directory if needed and overwriting
// any existing file of the same name. The HTML companion is best-effort: a
// rendering failure is logged and the Markdown document is still returned.
func (s *Store) Write(p Prepared) (types.StoredDocument, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return types.StoredDocument{}, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(p.Path, p.Data, 0o644); err != nil {
		return types.StoredDocument{}, fmt.Errorf("writing %s: %w", filepath.Base(p.Path), err)
	}

	doc := types.StoredDocument{
		Title:     p.Title,
		Path:      p.Path,
		Content:   p.Content,
		CreatedAt: p.Created,
	}

	if s.html != nil {
		htmlPath, err := convert.WriteHTML(s.html, p.Title, p.Content, p.Path)
		if err != nil {
			s.log.WithField("path", p.Path).Warnf("skipping HTML rendering: %v", err)
		} else {
			doc.HTMLPath = htmlPath
		}
	}
	return doc, nil
}

// Save prepares and writes content to <dir>/<Sanitize(title)>.md.
func (s *Store) Save(title, content string, opts ...SaveOption) (types.StoredDocument, error) {
	p, err := s.Prepare(title, content, opts...)
	if err != nil {
		return types.StoredDocument{}, err
	}
	return s.Write(p)
}

// Load reads a document written by Save. When the store writes front
// matter, the header is parsed into the returned document and stripped from
// Content, so Content equals what was passed to Save.
func (s *Store) Load(path string) (types.StoredDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.StoredDocument{}, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	doc := types.StoredDocument{Path: path, Content: string(data)}
	if !s.frontMatter {
		return doc, nil
	}

	fm, body, ok, err := splitFrontMatter(data)
	if err != nil {
		return types.StoredDocument{}, fmt.Errorf("parsing front matter in %s: %w", filepath.Base(path), err)
	}
	if ok {
		doc.Title = fm.Title
		doc.CreatedAt = fm.Created
		doc.Content = body
	}
	return doc, nil
}

// splitFrontMatter separates a leading "---" YAML block from the body.
// ok is false when data has no front matter.
func splitFrontMatter(data []byte) (fm types.FrontMatter, body string, ok bool, err error) {
	text := string(data)
	if !strings.HasPrefix(text, frontMatterHR) {
		return fm, text, false, nil
	}
	rest := text[len(frontMatterHR):]
	end := strings.Index(rest, "\n"+frontMatterHR)
	if end < 0 {
		return fm, text, false, nil
	}
	if err := yaml.Unmarshal([]byte(rest[:end+1]), &fm); err != nil {
		return fm, "", false, err
	}
	body = rest[end+1+len(frontMatterHR):]
	body = strings.TrimPrefix(body, "\n")
	return fm, body, true, nil
}
