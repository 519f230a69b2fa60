// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records completed runs in a local SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubmed-sweep/pkg/types"
)

const dbFile = "history.db"

// Run is one stored run. Only completed runs are recorded; a run that
// aborts writes nothing.
type Run struct {
	ID         string
	Query      string
	Chunks     int
	Fetched    int
	Kept       int
	Removed    int
	OutputBase string
	Timestamp  time.Time
}

// Store manages the run history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at dir/history.db, creating
// the schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = ".pubmed-sweep"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
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
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		chunks INTEGER NOT NULL,
		fetched INTEGER NOT NULL,
		kept INTEGER NOT NULL,
		removed INTEGER NOT NULL,
		output_base TEXT NOT NULL,
		timestamp TEXT NOT NULL
	)`)
	return err
}

// Record stores one completed run and returns its generated ID.
func (s *Store) Record(summary types.RunSummary) (string, error) {
	id := uuid.NewString()
	ts := summary.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, query, chunks, fetched, kept, removed, output_base, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, summary.Query, len(summary.Chunks), summary.Fetched,
		summary.Kept, summary.Removed, summary.OutputBase, ts.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, query, chunks, fetched, kept, removed, output_base, timestamp
		 FROM runs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ts string
		if err := rows.Scan(&r.ID, &r.Query, &r.Chunks, &r.Fetched, &r.Kept, &r.Removed, &r.OutputBase, &ts); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
			r.Timestamp = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
