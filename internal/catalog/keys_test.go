package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageKey(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"fr", "lessons_fr"},
		{"FR", "lessons_fr"},
		{" es ", "lessons_es"},
		{"pt-BR", "lessons_pt-br"},
		{"zh-Hant", "lessons_zh-hant"},
		{"en_US", "lessons_en-us"},
		{"EN-us", "lessons_en-us"},
		{"xx", "lessons_xx"},
		{"klingon", "lessons_klingon"},
		{"toolonglanguagecode", "lessons_toolonglanguagecode"},
	}

	for _, tt := range tests {
		got, err := StorageKey(tt.code)
		require.NoError(t, err, tt.code)
		assert.Equal(t, tt.want, got)
	}
}

func TestStorageKeyDeterministic(t *testing.T) {
	a, err := StorageKey("de")
	require.NoError(t, err)
	b, err := StorageKey("de")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStorageKeyRejectsInvalidCodes(t *testing.T) {
	for _, code := range []string{"", "   ", "../fr", "fr/x", "fr.json", "not a code", strings.Repeat("a", 65)} {
		_, err := StorageKey(code)
		assert.ErrorIs(t, err, ErrInvalidLanguage, "code %q", code)
	}
}

func TestCodeFromKey(t *testing.T) {
	code, ok := CodeFromKey("lessons_fr")
	assert.True(t, ok)
	assert.Equal(t, "fr", code)

	_, ok = CodeFromKey("settings")
	assert.False(t, ok)

	_, ok = CodeFromKey("lessons_")
	assert.False(t, ok)

	code, ok = CodeFromKey("lessons_xx")
	assert.True(t, ok)
	assert.Equal(t, "xx", code)

	// StorageKey("en_us") is lessons_en-us, so this file is not a catalog
	_, ok = CodeFromKey("lessons_en_us")
	assert.False(t, ok)
}
