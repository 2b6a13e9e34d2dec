// Package sqlite provides a core.Store backed by SQLite. Each context entry
// is one row keyed by (session_id, key), so a Set is a single transactional
// upsert and concurrent turns can never discard each other's writes.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/matchday/core"
)

// Store manages session context persistence in SQLite.
type Store struct {
	db *sql.DB
}

var _ core.Store = (*Store)(nil)

// NewStore creates a session store using the given database path.
// Use ":memory:" for an ephemeral store.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewStoreWithDB creates a session store using an existing database connection.
func NewStoreWithDB(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS session_context (
			session_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now')),
			PRIMARY KEY (session_id, key)
		);
	`)
	return err
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// Get returns the value for a key, or "" when session or key is absent.
func (s *Store) Get(sessionID, key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM session_context WHERE session_id = ? AND key = ?`,
		sessionID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get context: %w", err)
	}
	return value, nil
}

// Set upserts a key/value pair for the session.
func (s *Store) Set(sessionID, key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO session_context (session_id, key, value, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(session_id, key)
		DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, sessionID, key, value)
	if err != nil {
		return fmt.Errorf("set context: %w", err)
	}
	return nil
}

// GetAll returns the session's full context mapping.
func (s *Store) GetAll(sessionID string) (map[string]string, error) {
	rows, err := s.db.Query(
		`SELECT key, value FROM session_context WHERE session_id = ?`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get all context: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan context row: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Clear removes all context rows for the session.
func (s *Store) Clear(sessionID string) error {
	_, err := s.db.Exec(`DELETE FROM session_context WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
