package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// FileStore keeps one file per key inside a directory
type FileStore struct {
	dir string
	ext string
}

// NewFileStore creates a store rooted at dir. ext is appended to every key
// to form the file name (e.g. ".json").
func NewFileStore(dir, ext string) *FileStore {
	return &FileStore{dir: dir, ext: ext}
}

// Dir returns the directory the store writes to
func (fs *FileStore) Dir() string {
	return fs.dir
}

// Ext returns the file extension appended to keys
func (fs *FileStore) Ext() string {
	return fs.ext
}

// Path returns the file path backing a key
func (fs *FileStore) Path(key string) string {
	return filepath.Join(fs.dir, key+fs.ext)
}

// KeyForPath maps a file path back to its key. ok is false for files that
// do not belong to the store.
func (fs *FileStore) KeyForPath(path string) (key string, ok bool) {
	if filepath.Clean(filepath.Dir(path)) != filepath.Clean(fs.dir) {
		return "", false
	}
	base := filepath.Base(path)
	if len(base) <= len(fs.ext) || base[len(base)-len(fs.ext):] != fs.ext {
		return "", false
	}
	key = base[:len(base)-len(fs.ext)]
	if ValidateKey(key) != nil {
		return "", false
	}
	return key, true
}

// Exists reports whether a file exists for key
func (fs *FileStore) Exists(key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}

	info, err := os.Stat(fs.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", fs.Path(key), err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", fs.Path(key))
	}
	return true, nil
}

// Keys lists the keys of every file in the directory with the store's
// extension
func (fs *FileStore) Keys() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", fs.dir, err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if key, ok := fs.KeyForPath(filepath.Join(fs.dir, entry.Name())); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// UpdatedAt returns the modification time of the file for key
func (fs *FileStore) UpdatedAt(key string) (time.Time, error) {
	if err := ValidateKey(key); err != nil {
		return time.Time{}, err
	}

	info, err := os.Stat(fs.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to stat %s: %w", fs.Path(key), err)
	}
	return info.ModTime(), nil
}

// Read returns the file contents for key
func (fs *FileStore) Read(key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fs.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fs.Path(key), err)
	}
	return data, nil
}

// Write replaces the file for key atomically. The data goes to a temp file
// in the same directory first and is renamed into place once synced, so
// readers never observe a partial file.
func (fs *FileStore) Write(key string, data []byte) (err error) {
	if err := ValidateKey(key); err != nil {
		return err
	}

	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	tmp, err := os.CreateTemp(fs.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, fs.Path(key)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", fs.Path(key), err)
	}
	return nil
}
