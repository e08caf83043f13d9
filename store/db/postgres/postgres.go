package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// Import the Postgres driver.
	_ "github.com/lib/pq"

	"github.com/hrygo/mindsense/internal/profile"
	"github.com/hrygo/mindsense/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a Postgres connection pool for the profile DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile.DSN == "" {
		return nil, errors.New("dsn required")
	}

	postgresDB, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}

	postgresDB.SetMaxOpenConns(10)
	postgresDB.SetMaxIdleConns(5)

	driver := DB{db: postgresDB, profile: profile}

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
		id SERIAL PRIMARY KEY,
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
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		state TEXT NOT NULL,
		topics TEXT NOT NULL DEFAULT '',
		created_ts BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_emotional_sample_user ON emotional_sample (user_id, created_ts)`,
	`CREATE TABLE IF NOT EXISTS imported_document (
		id SERIAL PRIMARY KEY,
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
		id SERIAL PRIMARY KEY,
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

// Migrate creates the schema when absent.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to apply schema")
		}
	}
	return nil
}
