// Package localstore persists device-scoped records that never belong in
// the hosted document store: the review-prompt heuristic counters and the
// onboarding flag. Backed by a local sqlite file.
package localstore

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS review_data (
	device_id       TEXT PRIMARY KEY,
	goals_created   INTEGER NOT NULL DEFAULT 0,
	has_reviewed    INTEGER NOT NULL DEFAULT 0,
	prompt_shown_at INTEGER
);

CREATE TABLE IF NOT EXISTS onboarding (
	device_id    TEXT PRIMARY KEY,
	completed_at INTEGER NOT NULL
);
`

// Store wraps the local sqlite database.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if necessary) the local store at path and ensures
// the schema exists. Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %v", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init local store schema: %v", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
