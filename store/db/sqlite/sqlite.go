package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// Import the SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/hrygo/mindsense/internal/profile"
	"github.com/hrygo/mindsense/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens the SQLite database named by the profile DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile.DSN == "" {
		return nil, errors.New("dsn required")
	}

	// Connect with some sane settings:
	// - No foreign key constraints: disabled by default anyway, being
	//   explicit prevents surprises on SQLite upgrades.
	// - Journal mode set to WAL: prevents locking issues.
	//
	// Note: with the `modernc.org/sqlite` driver each pragma must be
	// prefixed with `_pragma=`.
	sqliteDB, err := sql.Open("sqlite", profile.DSN+"?_pragma=foreign_keys(0)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}

	// Single connection is optimal for SQLite with WAL.
	sqliteDB.SetMaxOpenConns(1)
	sqliteDB.SetMaxIdleConns(1)
	sqliteDB.SetConnMaxLifetime(0)
	sqliteDB.SetConnMaxIdleTime(0)

	driver := DB{db: sqliteDB, profile: profile}

	return &driver, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS conversation_turn (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		session_id TEXT NOT NULL DEFAULT '',
		user_input TEXT NOT NULL,
		ai_response TEXT NOT NULL,
		emotion TEXT NOT NULL DEFAULT 'neutral',
		topics TEXT NOT NULL DEFAULT '',
		created_ts BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_conversation_turn_user ON conversation_turn (user_id, created_ts)`,
	`CREATE TABLE IF NOT EXISTS emotional_sample (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		state TEXT NOT NULL,
		topics TEXT NOT NULL DEFAULT '',
		created_ts BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_emotional_sample_user ON emotional_sample (user_id, created_ts)`,
	`CREATE TABLE IF NOT EXISTS imported_document (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		uid TEXT NOT NULL UNIQUE,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		type TEXT NOT NULL,
		class TEXT NOT NULL DEFAULT 'general_document',
		tone TEXT NOT NULL DEFAULT 'neutral',
		word_count INTEGER NOT NULL DEFAULT 0,
		size_bytes BIGINT NOT NULL DEFAULT 0,
		created_ts BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS document_chunk (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document_uid TEXT NOT NULL,
		user_id TEXT NOT NULL,
		content TEXT NOT NULL,
		emotion TEXT NOT NULL DEFAULT 'neutral',
		topics TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		created_ts BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_document_chunk_doc ON document_chunk (document_uid, position)`,
}

// Migrate creates the schema when absent. Statements are idempotent, so
// rerunning on every start is safe.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to apply schema")
		}
	}
	return nil
}
