// Package db provides PostgreSQL storage for analysis history.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS analyses (
	id               UUID PRIMARY KEY,
	label            TEXT NOT NULL DEFAULT '',
	job_description  TEXT NOT NULL,
	fingerprint      TEXT NOT NULL,
	score            INTEGER NOT NULL,
	content_score    INTEGER NOT NULL,
	structure_score  INTEGER NOT NULL,
	impact_score     INTEGER NOT NULL,
	band             TEXT NOT NULL,
	baseline         BOOLEAN NOT NULL DEFAULT FALSE,
	found_keywords   JSONB NOT NULL DEFAULT '[]',
	missing_keywords JSONB NOT NULL DEFAULT '[]',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS analyses_fingerprint_idx ON analyses (fingerprint);
CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC);
`

// EnsureSchema creates the analyses table and its indexes if they are missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
