package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"jordanella.com/language-gates/internal/lessons"
	"jordanella.com/language-gates/internal/logging"
	"jordanella.com/language-gates/internal/storage"
)

// Store loads per-language lesson catalogs, writing the built-in default
// the first time a language is seen
type Store struct {
	storage storage.Storage
	codec   lessons.Codec
	logger  *logging.Logger

	// Serializes the exists/read/write sequence for callers sharing this
	// Store. Separate processes are not coordinated.
	mu sync.Mutex
}

// Option configures a Store
type Option func(*Store)

// WithCodec sets the serialization format. The default is JSON.
func WithCodec(codec lessons.Codec) Option {
	return func(s *Store) {
		s.codec = codec
	}
}

// WithLogger sets the store logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a catalog store on top of a storage backend
func NewStore(backend storage.Storage, opts ...Option) *Store {
	s := &Store{
		storage: backend,
		codec:   lessons.JSONCodec{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewLogger("CatalogStore")
	}
	return s
}

// Codec returns the codec catalogs are stored with
func (s *Store) Codec() lessons.Codec {
	return s.codec
}

// Load returns the catalog for a language. A stored catalog is returned as
// is; otherwise the default catalog is persisted and returned.
func (s *Store) Load(code string) (*lessons.Catalog, error) {
	key, err := StorageKey(code)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.storage.Exists(key)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w: %w", key, ErrIOFailure, err)
	}

	if exists {
		return s.read(key)
	}

	cat := lessons.DefaultCatalog()
	if err := s.write(key, cat); err != nil {
		return nil, err
	}

	s.logger.InfoWithContext("Created default catalog", map[string]interface{}{
		"key":     key,
		"lessons": cat.Count(),
	})
	return cat, nil
}

// Inspect reads and validates a stored catalog without creating one. It
// returns storage.ErrNotFound when nothing is stored for the language.
func (s *Store) Inspect(code string) (*lessons.Catalog, error) {
	key, err := StorageKey(code)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.storage.Exists(key)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w: %w", key, ErrIOFailure, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", key, storage.ErrNotFound)
	}
	return s.read(key)
}

// Entry describes one stored catalog
type Entry struct {
	Code      string
	UpdatedAt time.Time
}

// List returns the stored catalogs ordered by language code. The backend
// must implement storage.Inventory.
func (s *Store) List() ([]Entry, error) {
	inv, ok := s.storage.(storage.Inventory)
	if !ok {
		return nil, fmt.Errorf("list catalogs: %w", errors.ErrUnsupported)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := inv.Keys()
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w: %w", ErrIOFailure, err)
	}

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		code, ok := CodeFromKey(key)
		if !ok {
			continue
		}
		updated, err := inv.UpdatedAt(key)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w: %w", key, ErrIOFailure, err)
		}
		entries = append(entries, Entry{Code: code, UpdatedAt: updated})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})
	return entries, nil
}

// Reset overwrites a language's catalog with the built-in default
func (s *Store) Reset(code string) (*lessons.Catalog, error) {
	key, err := StorageKey(code)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat := lessons.DefaultCatalog()
	if err := s.write(key, cat); err != nil {
		return nil, err
	}

	s.logger.InfoWithContext("Reset catalog to defaults", map[string]interface{}{"key": key})
	return cat, nil
}

// Save validates and persists a catalog for a language
func (s *Store) Save(code string, cat *lessons.Catalog) error {
	key, err := StorageKey(code)
	if err != nil {
		return err
	}
	if err := cat.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(key, cat)
}

func (s *Store) read(key string) (*lessons.Catalog, error) {
	data, err := s.storage.Read(key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", key, ErrIOFailure, err)
	}

	cat, err := s.codec.Decode(data)
	if err != nil {
		s.logger.ErrorWithContext("Stored catalog is malformed", err, map[string]interface{}{"key": key})
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}

	s.logger.DebugWithContext("Loaded catalog", map[string]interface{}{
		"key":     key,
		"lessons": cat.Count(),
	})
	return cat, nil
}

func (s *Store) write(key string, cat *lessons.Catalog) error {
	data, err := s.codec.Encode(cat)
	if err != nil {
		return err
	}

	if err := s.storage.Write(key, data); err != nil {
		s.logger.ErrorWithContext("Failed to write catalog", err, map[string]interface{}{"key": key})
		return fmt.Errorf("write %s: %w: %w", key, ErrIOFailure, err)
	}
	return nil
}
