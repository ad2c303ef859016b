package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Beginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		firebase_uid  TEXT PRIMARY KEY,
		email         TEXT NOT NULL,
		display_name  TEXT,
		photo_url     TEXT,
		preferences   JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_login_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_history (
		id           UUID PRIMARY KEY,
		firebase_uid TEXT NOT NULL,
		preferences  TEXT NOT NULL DEFAULT '',
		recipe       JSONB NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS recipe_history_uid_created_idx
		ON recipe_history (firebase_uid, created_at DESC)`,
}

// EnsureSchema creates the tables used by the service in one transaction.
func EnsureSchema(ctx context.Context, db Beginner) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range schemaStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
