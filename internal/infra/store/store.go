// Package store provides sqlite-backed persistence for the lounge.
package store

import (
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	nickname TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL DEFAULT '',
	is_admin INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	last_seen_at TIMESTAMP
);`

const schemaSessions = `
CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL,
	expires_at TIMESTAMP NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);
CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);`

const schemaMessages = `
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	body TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_messages_id_asc ON messages(id);`

const schemaMedia = `
CREATE TABLE IF NOT EXISTS media_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	kind TEXT NOT NULL,
	url TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_media_items_kind ON media_items(kind);`

// The playback state table is constrained to a single row: every client
// observes, and blindly overwrites, the same record.
const schemaPlayback = `
CREATE TABLE IF NOT EXISTS playback_state (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	current_track_id INTEGER,
	position_seconds REAL NOT NULL DEFAULT 0,
	is_playing INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMP NOT NULL
);`

// Store wraps the sqlite database handle.
type Store struct {
	db *sqlx.DB
}

// Open opens (or creates) the sqlite database at path and ensures the
// schema exists. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.EnsureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates all tables and indexes if missing.
func (s *Store) EnsureSchema() error {
	for _, stmt := range []string{
		schemaUsers,
		schemaSessions,
		schemaMessages,
		schemaMedia,
		schemaPlayback,
	} {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "failed to ensure schema")
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
