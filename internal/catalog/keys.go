package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

const (
	keyPrefix     = "lessons_"
	maxCodeLength = 64
)

var codePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// NormalizeCode trims and lower-cases a language code. Any code made of
// letters, digits, '-' and '_' is accepted. Codes that parse as BCP 47 tags
// are canonicalised, so "en_US" and "en-us" name the same catalog; codes
// that are unknown or not well-formed tags are kept as written.
func NormalizeCode(code string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return "", fmt.Errorf("%w: empty code", ErrInvalidLanguage)
	}
	if len(normalized) > maxCodeLength || !codePattern.MatchString(normalized) {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}

	if tag, err := language.Parse(normalized); err == nil {
		return strings.ToLower(tag.String()), nil
	}
	return normalized, nil
}

// StorageKey derives the storage key for a language's catalog,
// e.g. "fr" -> "lessons_fr"
func StorageKey(code string) (string, error) {
	normalized, err := NormalizeCode(code)
	if err != nil {
		return "", err
	}
	return keyPrefix + normalized, nil
}

// CodeFromKey reverses StorageKey. ok is false for keys that do not name a
// catalog, including non-canonical ones such as "lessons_en_us" that
// StorageKey never produces.
func CodeFromKey(key string) (code string, ok bool) {
	if !strings.HasPrefix(key, keyPrefix) {
		return "", false
	}
	code = strings.TrimPrefix(key, keyPrefix)
	canonical, err := StorageKey(code)
	if err != nil || canonical != key {
		return "", false
	}
	return code, true
}
