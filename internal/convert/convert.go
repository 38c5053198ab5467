// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert renders stored Markdown articles to HTML.
package convert

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Converter transforms Markdown text into an HTML fragment.
type Converter interface {
	Convert(markdown string) (string, error)
}

// GoldmarkConverter renders GitHub-flavoured Markdown with goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter returns a converter with the GFM extensions enabled.
func NewGoldmarkConverter() *GoldmarkConverter {
	return &GoldmarkConverter{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Convert implements Converter.
func (g *GoldmarkConverter) Convert(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

// Document wraps an HTML fragment in a minimal standalone page.
func Document(title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// WriteHTML renders markdown and writes the page next to mdPath with an
// .html extension, overwriting any previous rendering. It returns the path
// written.
func WriteHTML(c Converter, title, markdown, mdPath string) (string, error) {
	body, err := c.Convert(markdown)
	if err != nil {
		return "", err
	}
	htmlPath := strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".html"
	if err := os.WriteFile(htmlPath, []byte(Document(title, body)), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filepath.Base(htmlPath), err)
	}
	return htmlPath, nil
}
