package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Migration represents a database schema migration
type Migration struct {
	Version     int
	Description string
	Up          func(*sql.Tx) error
}

// migrations is the ordered list of all database migrations
var migrations = []Migration{
	{
		Version:     1,
		Description: "Create schema_version table",
		Up:          migration001Up,
	},
	{
		Version:     2,
		Description: "Create catalogs table",
		Up:          migration002Up,
	},
}

// LatestVersion is the schema version after all migrations ran
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// RunMigrations runs all pending database migrations
func (db *DB) RunMigrations() error {
	currentVersion, err := db.GetVersion()
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		db.logger.InfoWithContext("Running migration", map[string]interface{}{
			"version":     migration.Version,
			"description": migration.Description,
		})

		err := db.ExecTx(func(tx *sql.Tx) error {
			if err := migration.Up(tx); err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			_, err := tx.Exec(`
				INSERT INTO schema_version (version, description, applied_at)
				VALUES (?, ?, ?)
			`, migration.Version, migration.Description, time.Now())

			return err
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// GetVersion returns the current schema version, 0 before any migration
func (db *DB) GetVersion() (int, error) {
	var tableExists bool
	err := db.conn.QueryRow(`
		SELECT COUNT(*) > 0
		FROM sqlite_master
		WHERE type='table' AND name='schema_version'
	`).Scan(&tableExists)
	if err != nil {
		return 0, err
	}

	if !tableExists {
		return 0, nil
	}

	var version int
	err = db.conn.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_version
	`).Scan(&version)
	if err != nil {
		return 0, err
	}

	return version, nil
}

// Migration 001: Schema version tracking table
func migration001Up(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			version INTEGER NOT NULL UNIQUE,
			description TEXT NOT NULL,
			applied_at DATETIME NOT NULL
		)
	`)
	return err
}

// Migration 002: One serialized catalog per storage key
func migration002Up(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE catalogs (
			key TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`)
	return err
}
