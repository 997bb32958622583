package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by Read when no resource exists for the key
var ErrNotFound = errors.New("resource not found")

// Storage is the durable key-value capability catalogs are persisted through
type Storage interface {
	Exists(key string) (bool, error)
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// Inventory is implemented by backends that can enumerate what they hold
type Inventory interface {
	// Keys lists every stored key in order
	Keys() ([]string, error)
	// UpdatedAt reports when key was last written. It returns ErrNotFound
	// for absent keys.
	UpdatedAt(key string) (time.Time, error)
}

// ValidateKey rejects keys that cannot be mapped safely onto a backend
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("storage key is empty")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}
