// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of stored articles so past runs can
// be listed and exported.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/article-engine/pkg/types"
)

const (
	defaultLimit = 20

	// timeLayout is fixed-width so created_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database at path, creating its directory
// and schema when missing.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			topic TEXT,
			path TEXT NOT NULL,
			sources TEXT,
			sections INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			refined INTEGER NOT NULL DEFAULT 1,
			restarts INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends rec to the ledger and returns its row ID. A zero CreatedAt
// is replaced with the current time.
func (s *Store) Record(ctx context.Context, rec types.RunRecord) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	sources, err := json.Marshal(rec.Sources)
	if err != nil {
		return 0, fmt.Errorf("encoding sources: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (title, topic, path, sources, sections, skipped, refined, restarts, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Title, rec.Topic, rec.Path, string(sources), rec.Sections, rec.Skipped,
		rec.Refined, rec.Restarts, rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return res.LastInsertId()
}

// QueryOptions filters List.
type QueryOptions struct {
	// Query matches titles or topics containing the text. Empty matches all.
	Query string

	// Limit caps the number of records (default 20). Negative means no cap.
	Limit int
}

// List returns recorded runs, newest first.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]types.RunRecord, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	query := `SELECT id, title, topic, path, sources, sections, skipped, refined, restarts, created_at FROM runs`
	var args []any
	if opts.Query != "" {
		query += ` WHERE title LIKE ? OR topic LIKE ?`
		pattern := "%" + opts.Query + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []types.RunRecord
	for rows.Next() {
		var (
			rec       types.RunRecord
			topic     sql.NullString
			sources   sql.NullString
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.Title, &topic, &rec.Path, &sources,
			&rec.Sections, &rec.Skipped, &rec.Refined, &rec.Restarts, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.Topic = topic.String
		if sources.Valid && sources.String != "" {
			if err := json.Unmarshal([]byte(sources.String), &rec.Sources); err != nil {
				return nil, fmt.Errorf("decoding sources for run %d: %w", rec.ID, err)
			}
		}
		rec.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at for run %d: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
