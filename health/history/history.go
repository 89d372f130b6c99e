// Package history persists per-minute step counts to SQLite so daily
// averages survive restarts.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Retention is how long samples are kept.
const Retention = 35 * 24 * time.Hour

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: ensure dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open: %w", err)
	}
	// Keep operations serialized.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS steps (
    minute INTEGER PRIMARY KEY,
    count INTEGER NOT NULL
);`
	_, err := db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Add(t time.Time, n uint32) error {
	const q = `
INSERT INTO steps (minute, count) VALUES (?, ?)
ON CONFLICT(minute) DO UPDATE SET count = count + excluded.count`
	if _, err := s.db.Exec(q, t.Unix()/60, int64(n)); err != nil {
		return fmt.Errorf("history: add: %w", err)
	}
	return nil
}

func (s *Store) Sum(start, end time.Time) (uint64, bool, error) {
	const q = `SELECT COUNT(*), COALESCE(SUM(count), 0) FROM steps WHERE minute >= ? AND minute * 60 < ?`
	var rows, total int64
	if err := s.db.QueryRow(q, start.Unix()/60, end.Unix()).Scan(&rows, &total); err != nil {
		return 0, false, fmt.Errorf("history: sum: %w", err)
	}
	return uint64(total), rows > 0, nil
}

// Prune deletes samples older than Retention before now.
func (s *Store) Prune(now time.Time) (int64, error) {
	cutoff := now.Add(-Retention).Unix() / 60
	res, err := s.db.Exec(`DELETE FROM steps WHERE minute < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("history: prune: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("history: prune: %w", err)
	}
	return n, nil
}
