package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// schema is applied in full on startup; every statement is idempotent.
//
// Timestamps are stored as RFC 3339 UTC strings, so lexicographic comparison
// in SQL matches chronological order. The CHECK on reservations backs the
// validator's inverted-range rule at the storage layer.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS reservations (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT,
	start_time  TEXT NOT NULL,
	end_time    TEXT NOT NULL,
	owner_id    TEXT NOT NULL REFERENCES users(id),
	created_at  TEXT NOT NULL,
	CHECK (start_time < end_time)
);

CREATE INDEX IF NOT EXISTS idx_reservations_start ON reservations(start_time);

CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id),
	token      TEXT NOT NULL UNIQUE,
	expires_at TEXT NOT NULL,
	created_at TEXT NOT NULL,
	revoked_at TEXT
);
`

// Storage implements the persistence repositories over a shared connection
// pool.
type Storage struct {
	pool *ConnectionPool
}

// Open creates a connection pool for the DSN and returns a Storage over it.
func Open(dsn string) (*Storage, error) {
	pool, err := NewConnectionPool(dsn)
	if err != nil {
		return nil, err
	}
	return &Storage{pool: pool}, nil
}

// NewStorage returns a Storage over an existing pool.
func NewStorage(pool *ConnectionPool) *Storage {
	return &Storage{pool: pool}
}

// Close releases the underlying pool.
func (s *Storage) Close() error {
	if s == nil {
		return nil
	}
	return s.pool.Close()
}

// Migrate creates the schema.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.pool.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func decodeTime(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
	}
	return ts, nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func fromNullString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	out := value.String
	return &out
}
