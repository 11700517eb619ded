// Package sqlite implements the repository interfaces on an embedded SQLite
// database (modernc.org/sqlite — pure Go, no CGo, cross-compiles cleanly).
//
// The at-most-one-profile-per-user invariant lives here: profiles.user_id
// carries a UNIQUE constraint, and the profile upsert is a single
// INSERT ... ON CONFLICT statement, so concurrent upserts for the same user
// serialize inside SQLite rather than in application code.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql at init time.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository
// interfaces. Owned by the server; Close on shutdown.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for an in-memory database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// PRAGMAs are per-connection and ":memory:" is per-connection too, so
	// pin the pool to a single connection. SQLite serializes writers anyway.
	conn.SetMaxOpenConns(1)

	// sql.Open only creates the pool; Ping forces a real connection so a
	// bad path or permissions problem surfaces now, not on first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Referential integrity for profiles.user_id → users.id.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool (flushes the WAL, releases the file lock).
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE ... IF NOT EXISTS keeps it safe to run
// on every start.
func (db *DB) migrate() error {
	// Email is only unique among password accounts — GitHub accounts may
	// hide their email, which we store as ''. Same for github_id: NULL for
	// password accounts, unique where present.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL DEFAULT '',
			github_id     INTEGER,
			password_hash TEXT NOT NULL DEFAULT '',
			avatar_url    TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email
			ON users(email) WHERE email <> '';
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_github_id
			ON users(github_id) WHERE github_id IS NOT NULL;
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// Profile fields are nullable on purpose: NULL means "never supplied",
	// which is what lets the upsert's COALESCE merge keep prior values.
	// UNIQUE(user_id) is the one-profile-per-user invariant.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL UNIQUE REFERENCES users(id),
			status           TEXT,
			company          TEXT,
			website          TEXT,
			location         TEXT,
			bio              TEXT,
			github_username  TEXT,
			skills           TEXT,
			social_youtube   TEXT,
			social_twitter   TEXT,
			social_facebook  TEXT,
			social_linkedin  TEXT,
			social_instagram TEXT,
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating profiles table: %w", err)
	}

	return nil
}
