package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  email         TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_job_applications",
		SQL: `CREATE TABLE IF NOT EXISTS job_applications (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id    UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  company    TEXT        NOT NULL,
  role_title TEXT        NOT NULL,
  status     TEXT        NOT NULL DEFAULT 'Draft'
    CHECK (status IN ('Draft', 'Applied', 'Interviewing', 'Offer', 'Rejected', 'Accepted')),
  notes      TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK (updated_at >= created_at)
);`,
	},
	{
		// Matches the list ordering (updated_at DESC, id DESC) within an owner scope.
		Name: "create_index_job_applications_owner_recency",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_job_applications_owner_recency ON job_applications (user_id, updated_at DESC, id DESC);`,
	},
	{
		Name: "create_table_attachments",
		SQL: `CREATE TABLE IF NOT EXISTS attachments (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  application_id UUID        NOT NULL REFERENCES job_applications (id) ON DELETE CASCADE,
  file_name      TEXT        NOT NULL,
  content_type   TEXT        NOT NULL,
  size_bytes     BIGINT      NOT NULL CHECK (size_bytes > 0),
  storage_key    TEXT        NOT NULL UNIQUE,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  deleted_at     TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_attachments_application_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_attachments_application_id ON attachments (application_id);`,
	},
}

// EnsureMigrated checks if the 'users' table exists and runs the schema
// steps if it doesn't. Steps are idempotent, so a partially applied schema
// is completed on the next startup.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	start := time.Now()

	var exists bool
	query := "SELECT to_regclass('public.users') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("migration sentinel check failed", zap.Error(err))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration",
			zap.Int64("duration_ms", time.Since(start).Milliseconds()))
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("migration step failed",
				zap.String("migration_step", step.Name),
				zap.Error(err))
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("migration step applied",
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()))
	}

	log.Info("migration complete",
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))

	return nil
}
