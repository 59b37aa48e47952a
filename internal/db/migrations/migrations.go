package migrations

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed 001_initial_schema.sql
var initialSchemaSQL string

//go:embed 002_layer_extent_index.sql
var layerExtentIndexSQL string

// All contains all migrations in order. Each migration's index+1 is its version number.
var All = []string{
	initialSchemaSQL,    // version 1
	layerExtentIndexSQL, // version 2
}

// Latest is the schema version after every migration has run
func Latest() int {
	return len(All)
}

// Version reads PRAGMA user_version
func Version(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Migrate runs every migration above the current user_version, each in its
// own transaction. A failing migration is rolled back and stops the run.
// Returns the number of migrations applied.
func Migrate(db *sql.DB) (int, error) {
	version, err := Version(db)
	if err != nil {
		return 0, err
	}

	applied := 0
	for i := version; i < len(All); i++ {
		tx, err := db.Begin()
		if err != nil {
			return applied, fmt.Errorf("failed to begin transaction for migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec(All[i]); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("migration %d failed: %w", i+1, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("failed to set schema version to %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("failed to commit migration %d: %w", i+1, err)
		}
		applied++
	}

	return applied, nil
}
