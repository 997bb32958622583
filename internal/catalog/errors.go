package catalog

import (
	"errors"

	"jordanella.com/language-gates/internal/lessons"
)

var (
	// ErrIOFailure wraps any failure of the underlying storage medium
	ErrIOFailure = errors.New("catalog storage failure")

	// ErrInvalidLanguage is returned for language codes that cannot form a
	// safe storage key
	ErrInvalidLanguage = errors.New("invalid language code")

	// ErrMalformedCatalog is returned when a stored catalog cannot be used.
	// The stored resource is left untouched.
	ErrMalformedCatalog = lessons.ErrMalformedCatalog
)
