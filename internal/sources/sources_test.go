// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/article-engine/pkg/types"
)

func urls(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("https://site%d.example", i)
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{10, false},
		{11, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d sources", tt.n), func(t *testing.T) {
			err := Validate(urls(tt.n))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.n, ve.Count)
		})
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList(" https://a.example , b.example,, ")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "b.example"}, got)

	_, err = ParseList(" , ,")
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))

	_, err = ParseList(strings.Join(urls(11), ","))
	assert.True(t, errors.As(err, &ve))
}

func TestSelectPresets(t *testing.T) {
	presets := types.DefaultPresets

	got, err := SelectPresets(presets, "1, 3")
	require.NoError(t, err)
	assert.Equal(t, []string{presets[0].URL, presets[2].URL}, got)

	_, err = SelectPresets(presets, "0")
	assert.Error(t, err)
	_, err = SelectPresets(presets, "6")
	assert.Error(t, err)
	_, err = SelectPresets(presets, "two")
	assert.Error(t, err)

	_, err = SelectPresets(presets, "")
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.txt")
	require.NoError(t, os.WriteFile(path, []byte("# tech\nhttps://a.example\n\n  https://b.example  \n"), 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, got)

	_, err = ReadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	tooMany := filepath.Join(dir, "many.txt")
	require.NoError(t, os.WriteFile(tooMany, []byte(strings.Join(urls(12), "\n")), 0o644))
	_, err = ReadFile(tooMany)
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
}

func rssFeed(n int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Tech</title>`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "<item><title>Story %d</title><link>https://news.example/%d</link></item>", i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func TestFeedReaderLinks(t *testing.T) {
	tests := []struct {
		name    string
		items   int
		want    int
		wantErr bool
	}{
		{"few items", 3, 3, false},
		{"capped at max", 15, MaxSources, false},
		{"empty feed", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/rss+xml")
				w.Write([]byte(rssFeed(tt.items)))
			}))
			defer ts.Close()

			got, err := NewFeedReader(ts.Client(), "article-engine/test").Links(context.Background(), ts.URL)
			if tt.wantErr {
				var ve *ValidationError
				assert.True(t, errors.As(err, &ve))
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.want)
			assert.Equal(t, "https://news.example/0", got[0])
		})
	}
}

func TestFeedReaderHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := NewFeedReader(ts.Client(), "").Links(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading feed")
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" 2 ")
	require.NoError(t, err)
	assert.Equal(t, ModePreset, m)

	_, err = ParseMode("5")
	assert.Error(t, err)
	_, err = ParseMode("list")
	assert.Error(t, err)
}
