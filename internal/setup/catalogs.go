package setup

import (
	"fmt"

	"jordanella.com/language-gates/internal/catalog"
	"jordanella.com/language-gates/internal/config"
	"jordanella.com/language-gates/internal/database"
	"jordanella.com/language-gates/internal/logging"
	"jordanella.com/language-gates/internal/storage"
)

// Catalogs is the catalog store opened from config, plus the resources
// behind it
type Catalogs struct {
	Store *catalog.Store

	// Files is set for the file backend, which is the only one that can be
	// watched
	Files *storage.FileStore

	db *database.DB
}

// OpenCatalogs opens the storage backend named in cfg
func OpenCatalogs(cfg *config.Config) (*Catalogs, error) {
	logger := logging.NewLogger("CatalogStore")
	codec := cfg.Codec()

	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := database.Open(cfg.DatabasePath())
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return &Catalogs{
			Store: catalog.NewStore(db.Catalogs(), catalog.WithCodec(codec), catalog.WithLogger(logger)),
			db:    db,
		}, nil

	case config.StorageFile, "":
		files := storage.NewFileStore(cfg.CatalogDir(), codec.Extension())
		return &Catalogs{
			Store: catalog.NewStore(files, catalog.WithCodec(codec), catalog.WithLogger(logger)),
			Files: files,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

// NewWatcher creates a watcher for file-backed catalogs. It returns nil
// for backends that cannot be watched.
func (c *Catalogs) NewWatcher(onChange catalog.ChangeFunc) (*catalog.Watcher, error) {
	if c.Files == nil {
		return nil, nil
	}
	return catalog.NewWatcher(c.Store, c.Files, onChange)
}

// Close releases the storage backend
func (c *Catalogs) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
