// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: llm-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultDir is the directory the CLI reads secrets from.
const DefaultDir = ".secrets/"

// LLMAPIKey is the file holding the generative text service key.
const LLMAPIKey = "llm-api-key"

// Set maps secret names to values.
type Set map[string]string

// Load reads all files in dir and returns a Set of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty Set.
// Unreadable files are logged as warnings and skipped.
func Load(dir string, log logrus.FieldLogger) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Set)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.WithField("secret", name).Warnf("could not read secret: %v", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Get returns override when it is non-empty, otherwise the secret stored
// under key, otherwise "".
func (s Set) Get(key, override string) string {
	if override != "" {
		return override
	}
	return s[key]
}

// Names returns the loaded secret names in sorted order. Values are never
// exposed through this method so it is safe to log.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
