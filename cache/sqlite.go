// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS artifacts (
	id         TEXT PRIMARY KEY,
	checkpoint TEXT NOT NULL,
	artifact   TEXT NOT NULL,
	params     TEXT NOT NULL,
	length     INTEGER NOT NULL,
	value      BLOB,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_artifacts_checkpoint ON artifacts(checkpoint);
`

// SQLite is a durable Store backed by one sqlite database file.
type SQLite struct {
	db     *sql.DB
	path   string
	mu     sync.RWMutex
	closed bool
}

// NewSQLite opens (creating if needed) the database at path and applies
// the schema. MemoryPath gives a throwaway database.
func NewSQLite(path string) (*SQLite, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection serializes writers and keeps ":memory:" a single
	// database.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	if s.path != MemoryPath {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			return fmt.Errorf("failed to enable WAL: %w", err)
		}
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Path returns the database location.
func (s *SQLite) Path() string { return s.path }

// Get loads the vector stored under k.
func (s *SQLite) Get(ctx context.Context, k Key) ([]float64, bool, error) {
	if err := s.check(k); err != nil {
		return nil, false, cacheErrorf("SQLite.Get", err)
	}
	var (
		n    int
		blob []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT length, value FROM artifacts WHERE id = ?`, k.ID()).Scan(&n, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, cacheErrorf("SQLite.Get", err)
	}
	vals, err := DecodeFloats(blob)
	if err != nil || len(vals) != n {
		return nil, false, cacheErrorf("SQLite.Get", ErrCorrupt)
	}

	return vals, true, nil
}

// Put stores v under k, replacing any previous value.
func (s *SQLite) Put(ctx context.Context, k Key, v []float64) error {
	if err := s.check(k); err != nil {
		return cacheErrorf("SQLite.Put", err)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO artifacts (id, checkpoint, artifact, params, length, value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		k.ID(), k.Checkpoint, k.Artifact, k.Params, len(v), EncodeFloats(v), time.Now().UTC(),
	)
	if err != nil {
		return cacheErrorf("SQLite.Put", err)
	}
	return nil
}

// Delete removes k.
func (s *SQLite) Delete(ctx context.Context, k Key) error {
	if err := s.check(k); err != nil {
		return cacheErrorf("SQLite.Delete", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM artifacts WHERE id = ?`, k.ID()); err != nil {
		return cacheErrorf("SQLite.Delete", err)
	}
	return nil
}

// Checkpoints lists the distinct checkpoints with stored artifacts in
// ascending order.
func (s *SQLite) Checkpoints(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, cacheErrorf("SQLite.Checkpoints", ErrClosed)
	}
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT checkpoint FROM artifacts ORDER BY checkpoint`)
	if err != nil {
		return nil, cacheErrorf("SQLite.Checkpoints", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, cacheErrorf("SQLite.Checkpoints", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Close closes the database. Further calls return ErrClosed.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *SQLite) check(k Key) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	return k.Validate()
}
