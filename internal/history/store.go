// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists finished conversion batches to a SQLite database
// so past runs can be inspected from the CLI.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/tx-convert/pkg/types"
)

const dbFile = "history.db"

// Store manages the conversion history SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the history database location under the user's config
// directory, next to the preference file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tx-convert", dbFile), nil
}

// Open opens or creates the history database at path, creating the schema if
// it does not exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
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
		`CREATE TABLE IF NOT EXISTS batches (
			id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			succeeded INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			skipped INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id TEXT NOT NULL REFERENCES batches(id),
			source_path TEXT NOT NULL,
			target_path TEXT NOT NULL,
			outcome TEXT NOT NULL,
			message TEXT,
			duration_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_batch_id ON tasks(batch_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Batch is one recorded conversion run.
type Batch struct {
	ID         string
	Root       string
	StartedAt  time.Time
	FinishedAt time.Time
	Summary    types.Summary
}

// RecordBatch stores one finished batch and its per-task results in a single
// transaction. It returns the generated batch ID.
func (s *Store) RecordBatch(ctx context.Context, root string, startedAt, finishedAt time.Time, results []types.Result, summary types.Summary) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO batches (id, root, started_at, finished_at, succeeded, failed, skipped)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, root,
		startedAt.UTC().Format(time.RFC3339Nano),
		finishedAt.UTC().Format(time.RFC3339Nano),
		summary.Succeeded, summary.Failed, summary.Skipped,
	)
	if err != nil {
		return "", fmt.Errorf("inserting batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tasks (batch_id, source_path, target_path, outcome, message, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing task insert: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		_, err := stmt.ExecContext(ctx,
			id, res.Task.SourcePath, res.Task.TargetPath,
			string(res.Outcome), res.Message, res.Duration.Milliseconds(),
		)
		if err != nil {
			return "", fmt.Errorf("inserting task %s: %w", res.Task.SourcePath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing batch: %w", err)
	}
	return id, nil
}

// Recent returns the most recent batches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Batch, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root, started_at, finished_at, succeeded, failed, skipped
		 FROM batches ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var (
			b                     Batch
			startedAt, finishedAt string
		)
		if err := rows.Scan(&b.ID, &b.Root, &startedAt, &finishedAt,
			&b.Summary.Succeeded, &b.Summary.Failed, &b.Summary.Skipped); err != nil {
			return nil, fmt.Errorf("scanning batch: %w", err)
		}
		if b.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parsing batch start time: %w", err)
		}
		if b.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, fmt.Errorf("parsing batch finish time: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// Results returns the per-task results recorded for a batch, in insertion
// order.
func (s *Store) Results(ctx context.Context, batchID string) ([]types.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_path, target_path, outcome, message, duration_ms
		 FROM tasks WHERE batch_id = ? ORDER BY rowid`, batchID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks for batch %s: %w", batchID, err)
	}
	defer rows.Close()

	var results []types.Result
	for rows.Next() {
		var (
			res        types.Result
			outcome    string
			durationMS int64
		)
		if err := rows.Scan(&res.Task.SourcePath, &res.Task.TargetPath,
			&outcome, &res.Message, &durationMS); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		res.Outcome = types.Outcome(outcome)
		res.Duration = time.Duration(durationMS) * time.Millisecond
		results = append(results, res)
	}
	return results, rows.Err()
}
