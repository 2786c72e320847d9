package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are applied in order on every open. Statements must be
// idempotent; ALTER TABLE duplicates are tolerated below.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS session (
		id          TEXT PRIMARY KEY CHECK (id = 'current'),
		token       TEXT NOT NULL,
		account_id  TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL DEFAULT '',
		role        TEXT NOT NULL DEFAULT '',
		expires_at  TEXT NOT NULL DEFAULT '',
		saved_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS recent_projects (
		project_id  TEXT PRIMARY KEY,
		title       TEXT NOT NULL DEFAULT '',
		role        TEXT NOT NULL DEFAULT '',
		opened_at   TEXT NOT NULL
	)`,
	`ALTER TABLE session ADD COLUMN api_base TEXT NOT NULL DEFAULT ''`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
