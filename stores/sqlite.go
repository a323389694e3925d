package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// SQLite persists entries in a single-file database so cached responses
// survive restarts and can be shared across processes. The driver is pure
// Go; no cgo toolchain is needed.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and prepares the schema.
// The returned store must be Closed when no longer needed.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache: %w", err)
	}
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS entries (key TEXT PRIMARY KEY, stored_at INTEGER NOT NULL, value BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool, error) {
	var storedAt int64
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT stored_at, value FROM entries WHERE key = ?", key).Scan(&storedAt, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	// stored_at holds nanoseconds; second granularity would misjudge
	// entries written moments ago against sub-second age bounds.
	if maxAge > 0 && time.Since(time.Unix(0, storedAt)) > maxAge {
		return nil, false, nil
	}
	return value, true, nil
}

func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, "INSERT OR REPLACE INTO entries (key, stored_at, value) VALUES (?, ?, ?)", key, time.Now().UnixNano(), value)
	return err
}

func (s *SQLite) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE key = ?", key)
	return err
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }
