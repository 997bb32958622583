package database

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"jordanella.com/language-gates/internal/logging"
	"jordanella.com/language-gates/internal/storage"
)

var (
	_ storage.Storage   = (*CatalogTable)(nil)
	_ storage.Inventory = (*CatalogTable)(nil)
)

func TestMain(m *testing.M) {
	logging.Configure(logging.LogLevelFatal, io.Discard)
	os.Exit(m.Run())
}

func openTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestDatabaseInitialization(t *testing.T) {
	db := openTestDB(t)

	version, err := db.GetVersion()
	if err != nil {
		t.Fatalf("Failed to get version: %v", err)
	}
	if version != LatestVersion() {
		t.Errorf("Expected version %d, got %d", LatestVersion(), version)
	}

	if _, err := os.Stat(db.Path()); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	// Running again is a no-op
	if err := db.RunMigrations(); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
}

func TestCatalogTable(t *testing.T) {
	db := openTestDB(t)
	table := db.Catalogs()

	exists, err := table.Exists("lessons_fr")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Fatal("Expected no catalog before first write")
	}

	if _, err := table.Read("lessons_fr"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := table.Write("lessons_fr", []byte(`{"beginner":[]}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := table.Write("lessons_fr", []byte(`{"advanced":[]}`)); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}
	if err := table.Write("lessons_de", []byte(`{}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := table.Read("lessons_fr")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != `{"advanced":[]}` {
		t.Errorf("Unexpected data: %s", data)
	}

	keys, err := table.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "lessons_de" || keys[1] != "lessons_fr" {
		t.Errorf("Unexpected keys: %v", keys)
	}

	updated, err := table.UpdatedAt("lessons_fr")
	if err != nil {
		t.Fatalf("UpdatedAt failed: %v", err)
	}
	if updated.IsZero() {
		t.Error("Expected updated_at to be set")
	}
}

func TestCatalogTableRejectsBadKeys(t *testing.T) {
	db := openTestDB(t)

	if err := db.Catalogs().Write("../x", []byte("x")); err == nil {
		t.Error("Expected invalid key to be rejected")
	}
}
