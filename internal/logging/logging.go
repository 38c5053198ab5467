// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the logrus logger shared by every stage.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/article-engine/pkg/types"
)

// Formatter renders entries as "[time] [LEVL] [file:line] msg key=value".
type Formatter struct{}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var fileLine string
	if entry.HasCaller() {
		fileLine = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}

	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] [%s] %s", entry.Time.Format("2006-01-02 15:04:05"), level, fileLine, entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')

	return []byte(b.String()), nil
}

// New returns a logger writing to w and, when cfg.File is set, appending to
// that file as well. The returned close function releases the file.
// An unknown level falls back to info.
func New(cfg types.LogConfig, w io.Writer) (*logrus.Logger, func() error, error) {
	log := logrus.New()
	log.SetReportCaller(true)
	log.SetFormatter(&Formatter{})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	closeFn := func() error { return nil }
	writers := []io.Writer{w}
	if cfg.File != "" {
		if dir := filepath.Dir(cfg.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("creating log directory: %w", err)
			}
		}
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		writers = append(writers, file)
		closeFn = file.Close
	}
	log.SetOutput(io.MultiWriter(writers...))

	return log, closeFn, nil
}
