// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an append-only SQLite ledger of build runs. The
// pipeline only writes to it; nothing read back influences a run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/hymnal/pkg/types"
)

// Entry is one recorded run.
type Entry struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Sources    int
	Artifacts  int
	Attachment string
	Delivered  bool
	ExitCode   int
	Error      string
}

// Store wraps the ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger at path, creating parent directories.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		sources INTEGER NOT NULL,
		artifacts INTEGER NOT NULL,
		attachment TEXT,
		delivered INTEGER NOT NULL,
		exit_code INTEGER NOT NULL,
		error TEXT
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends a run. runErr may be nil.
func (s *Store) Record(ctx context.Context, r *types.RunReport, exitCode int, runErr error) error {
	var errText string
	if runErr != nil {
		errText = runErr.Error()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, sources, artifacts, attachment, delivered, exit_code, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.StartedAt.UTC().Format(time.RFC3339Nano),
		r.FinishedAt.UTC().Format(time.RFC3339Nano),
		len(r.Sources),
		len(r.Artifacts),
		r.Attachment,
		r.Delivered,
		exitCode,
		errText,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns up to n runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, sources, artifacts, attachment, delivered, exit_code, error
		 FROM runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                  Entry
			started, finished  string
			attachment, errTxt sql.NullString
		)
		if err := rows.Scan(&e.ID, &started, &finished, &e.Sources, &e.Artifacts,
			&attachment, &e.Delivered, &e.ExitCode, &errTxt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if e.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("scanning run %d: started_at: %w", e.ID, err)
		}
		if e.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("scanning run %d: finished_at: %w", e.ID, err)
		}
		e.Attachment = attachment.String
		e.Error = errTxt.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
