package postgres

import (
	"log"

	"ikigai/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the sessions table and its indexes if they do not exist
func Migrate(db *sqlx.DB) error {
	log.Println("[Postgres] Running migrations...")

	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY,
		hash VARCHAR(16) NOT NULL UNIQUE,
		context JSONB NOT NULL,
		answers JSONB NOT NULL,
		status TEXT NOT NULL,
		ai_analysis JSONB,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions (created_at);
	CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions (status);
	`

	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}

	log.Println("[Postgres] Migrations complete")
	return nil
}
