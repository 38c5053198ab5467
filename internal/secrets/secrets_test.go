// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   Set
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, LLMAPIKey, "  sk-abc123  \n")
				writeFile(t, dir, "other-key", "xyz789")
				return dir
			},
			want: Set{
				LLMAPIKey:   "sk-abc123",
				"other-key": "xyz789",
			},
		},
		{
			name: "returns empty set for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Set{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, LLMAPIKey, "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: Set{LLMAPIKey: "valid-key"},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, LLMAPIKey, "sk-real")
				return dir
			},
			want: Set{LLMAPIKey: "sk-real"},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, LLMAPIKey, "sk-123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: Set{LLMAPIKey: "sk-123"},
		},
		{
			name: "returns empty set for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: Set{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir, quietLogger())
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files without permission bits")
	}
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	log, hook := test.NewNullLogger()
	got, err := Load(dir, log)
	require.NoError(t, err)
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "bad-key", hook.LastEntry().Data["secret"])
}

func TestSetGet(t *testing.T) {
	s := Set{LLMAPIKey: "from-file"}
	assert.Equal(t, "from-flag", s.Get(LLMAPIKey, "from-flag"))
	assert.Equal(t, "from-file", s.Get(LLMAPIKey, ""))
	assert.Equal(t, "", s.Get("missing", ""))
}

func TestSetNames(t *testing.T) {
	s := Set{"b": "2", "a": "1"}
	assert.Equal(t, []string{"a", "b"}, s.Names())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
