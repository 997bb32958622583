package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jordanella.com/language-gates/internal/storage"
)

// CatalogTable stores serialized catalogs keyed by storage key. It satisfies
// storage.Storage and storage.Inventory.
type CatalogTable struct {
	db *DB
}

// Catalogs returns the catalog table. RunMigrations must have been called.
func (db *DB) Catalogs() *CatalogTable {
	return &CatalogTable{db: db}
}

// Exists reports whether a row exists for key
func (ct *CatalogTable) Exists(key string) (bool, error) {
	if err := storage.ValidateKey(key); err != nil {
		return false, err
	}

	var exists bool
	err := ct.db.conn.QueryRow(`SELECT COUNT(*) > 0 FROM catalogs WHERE key = ?`, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query catalog %s: %w", key, err)
	}
	return exists, nil
}

// Read returns the stored bytes for key
func (ct *CatalogTable) Read(key string) ([]byte, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}

	var data []byte
	err := ct.db.conn.QueryRow(`SELECT data FROM catalogs WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", key, err)
	}
	return data, nil
}

// Write inserts or replaces the row for key in a single transaction
func (ct *CatalogTable) Write(key string, data []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	return ct.db.ExecTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO catalogs (key, data, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				data = excluded.data,
				updated_at = excluded.updated_at
		`, key, data, time.Now())
		if err != nil {
			return fmt.Errorf("failed to write catalog %s: %w", key, err)
		}
		return nil
	})
}

// UpdatedAt returns when key was last written
func (ct *CatalogTable) UpdatedAt(key string) (time.Time, error) {
	if err := storage.ValidateKey(key); err != nil {
		return time.Time{}, err
	}

	var updated time.Time
	err := ct.db.conn.QueryRow(`SELECT updated_at FROM catalogs WHERE key = ?`, key).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read catalog %s: %w", key, err)
	}
	return updated, nil
}

// Keys lists every stored key in order
func (ct *CatalogTable) Keys() ([]string, error) {
	rows, err := ct.db.conn.Query(`SELECT key FROM catalogs ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
