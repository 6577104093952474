package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/phuslu/log"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is checked before running; its presence means the schema is in place.
const sentinelTable = "public.conversation_turns"

var steps = []migrationStep{
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id              UUID        PRIMARY KEY,
  title           TEXT        NOT NULL,
  category        TEXT        NOT NULL CHECK (category IN ('Financial', 'Auction', 'Compliance', 'HR', 'Other')),
  doc_type        TEXT        NOT NULL,
  department      TEXT        NOT NULL,
  doc_date        TEXT        NOT NULL,
  language        TEXT        NOT NULL,
  urgency         TEXT        NOT NULL CHECK (urgency IN ('Critical', 'Review', 'Info')),
  summary         TEXT        NOT NULL,
  tags            JSONB       NOT NULL DEFAULT '[]'::jsonb,
  key_points      JSONB       NOT NULL DEFAULT '[]'::jsonb,
  entities        JSONB       NOT NULL DEFAULT '{}'::jsonb,
  analytics_ready BOOLEAN     NOT NULL DEFAULT false,
  uploaded_by     TEXT        NOT NULL,
  source_key      TEXT        NOT NULL,
  file_type       TEXT        NOT NULL,
  file_size       TEXT        NOT NULL,
  pages           INTEGER     NOT NULL DEFAULT 0 CHECK (pages >= 0),
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at);`,
	},
	{
		Name: "create_index_documents_category",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_category ON documents (category);`,
	},
	{
		Name: "create_index_documents_tags",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_tags ON documents USING GIN (tags);`,
	},
	{
		Name: "create_table_conversation_turns",
		SQL: `CREATE TABLE IF NOT EXISTS conversation_turns (
  seq        BIGSERIAL   PRIMARY KEY,
  id         UUID        NOT NULL UNIQUE,
  session_id TEXT        NOT NULL,
  author     TEXT        NOT NULL CHECK (author IN ('user', 'assistant')),
  text       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_conversation_turns_session",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_conversation_turns_session ON conversation_turns (session_id, created_at);`,
	},
}

// EnsureMigrated runs every step unless the sentinel table already exists.
// Steps are idempotent, so a partially applied schema is completed on the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *log.Logger, dbHost string) error {
	start := time.Now()

	logger.Info().Str("component", "database").Str("event", "db_migration_check").
		Str("status", "starting").Str("db_host", dbHost).Msg("")

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists)
	if err != nil {
		logger.Error().Str("component", "database").Str("event", "db_migration_failed").
			Str("status", "error").Str("db_host", dbHost).Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds()).Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logger.Info().Str("component", "database").Str("event", "db_migration_skip").
			Str("status", "success").Str("db_host", dbHost).
			Int64("duration_ms", time.Since(start).Milliseconds()).Msg("schema already exists, skipping migration")
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logger.Error().Str("component", "database").Str("event", "db_migration_failed").
				Str("status", "error").Str("migration_step", step.Name).Str("db_host", dbHost).Err(err).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).Msg("")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logger.Info().Str("component", "database").Str("event", "db_migration_step").
			Str("status", "success").Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).Msg("")
	}

	logger.Info().Str("component", "database").Str("event", "db_migration_success").
		Str("status", "success").Str("db_host", dbHost).
		Int64("duration_ms", time.Since(start).Milliseconds()).Msg("")
	return nil
}
