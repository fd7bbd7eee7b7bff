package storage

import (
	"database/sql"
	"fmt"
)

// Migration represents a database schema migration.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order.
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "create_import_runs",
		Up:      migration001CreateImportRuns,
	},
	{
		Version: 2,
		Name:    "add_amount_sums",
		Up:      migration002AddAmountSums,
	},
}

// runMigrations executes all pending migrations, each in its own
// transaction.
func (s *Storage) runMigrations() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	applied, err := s.appliedMigrations()
	if err != nil {
		return fmt.Errorf("reading applied migrations: %w", err)
	}

	for _, migration := range allMigrations {
		if applied[migration.Version] {
			continue
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec(`
			INSERT INTO schema_migrations (version, name) VALUES (?, ?)
		`, migration.Version, migration.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// ensureMigrationsTable creates the schema_migrations table.
func (s *Storage) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

// appliedMigrations returns the set of applied migration versions.
func (s *Storage) appliedMigrations() (map[int]bool, error) {
	applied := make(map[int]bool)

	rows, err := s.db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func migration001CreateImportRuns(tx *sql.Tx) error {
	if _, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS import_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		from_date TEXT NOT NULL,
		to_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'running',
		transaction_count INTEGER NOT NULL DEFAULT 0,
		error_message TEXT,
		started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		completed_at TIMESTAMP
	)`); err != nil {
		return err
	}

	_, err := tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_import_runs_started_at
		ON import_runs(started_at DESC)
	`)
	return err
}

// Amount sums arrived after the initial schema; decimals are stored as TEXT
// to avoid float drift.
func migration002AddAmountSums(tx *sql.Tx) error {
	for _, stmt := range []string{
		`ALTER TABLE import_runs ADD COLUMN gross TEXT NOT NULL DEFAULT '0'`,
		`ALTER TABLE import_runs ADD COLUMN fees TEXT NOT NULL DEFAULT '0'`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
