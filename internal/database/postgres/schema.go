package postgres

import (
	"context"
	"fmt"

	"jobpath/internal/database"
)

// Idempotent DDL executed at startup. Column order mirrors the API payloads.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		google_id     TEXT,
		avatar        TEXT NOT NULL DEFAULT '',
		provider      TEXT NOT NULL DEFAULT 'local',
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		last_login    TIMESTAMPTZ,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_google_id ON users (google_id) WHERE google_id IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id               UUID PRIMARY KEY,
		user_id          UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		company          TEXT NOT NULL,
		position         TEXT NOT NULL,
		status           TEXT NOT NULL,
		application_date DATE NOT NULL,
		location         TEXT NOT NULL DEFAULT '',
		salary           TEXT NOT NULL DEFAULT '',
		description      TEXT NOT NULL DEFAULT '',
		notes            TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_user_created_at ON jobs (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_user_status ON jobs (user_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_user_company ON jobs (user_id, company)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_user_application_date ON jobs (user_id, application_date DESC)`,
}

// EnsureSchema creates the tables and indexes when they do not exist yet.
func EnsureSchema(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
