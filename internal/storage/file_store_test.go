package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Inventory = (*FileStore)(nil)

func TestFileStoreReadWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalogs")
	fs := NewFileStore(dir, ".json")

	exists, err := fs.Exists("lessons_fr")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = fs.Read("lessons_fr")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, fs.Write("lessons_fr", []byte(`{"a":1}`)))

	exists, err = fs.Exists("lessons_fr")
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := fs.Read("lessons_fr")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	// Overwrite replaces the whole file
	require.NoError(t, fs.Write("lessons_fr", []byte(`{}`)))
	data, err = os.ReadFile(filepath.Join(dir, "lessons_fr.json"))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestFileStoreWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir, ".json")

	require.NoError(t, fs.Write("lessons_de", []byte("data")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "lessons_de.json", entries[0].Name())
}

func TestFileStoreWriteFailure(t *testing.T) {
	// A regular file where the directory should be makes every write fail,
	// even when the tests run as root.
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	fs := NewFileStore(filepath.Join(blocker, "catalogs"), ".json")
	err := fs.Write("lessons_fr", []byte("data"))
	require.Error(t, err)

	_, statErr := os.Stat(fs.Path("lessons_fr"))
	assert.Error(t, statErr)
}

func TestFileStoreRejectsBadKeys(t *testing.T) {
	fs := NewFileStore(t.TempDir(), ".json")

	for _, key := range []string{"", "../escape", "a/b", `a\b`} {
		assert.Error(t, fs.Write(key, []byte("x")), "key %q", key)
		_, err := fs.Exists(key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestFileStoreKeyForPath(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir, ".json")

	key, ok := fs.KeyForPath(filepath.Join(dir, "lessons_es.json"))
	assert.True(t, ok)
	assert.Equal(t, "lessons_es", key)

	_, ok = fs.KeyForPath(filepath.Join(dir, "lessons_es.yaml"))
	assert.False(t, ok)

	_, ok = fs.KeyForPath(filepath.Join(dir, "nested", "lessons_es.json"))
	assert.False(t, ok)

	_, ok = fs.KeyForPath(filepath.Join(dir, ".json"))
	assert.False(t, ok)
}

func TestFileStoreInventory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalogs")
	fs := NewFileStore(dir, ".json")

	keys, err := fs.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, fs.Write("lessons_fr", []byte("{}")))
	require.NoError(t, fs.Write("lessons_de", []byte("{}")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "backup.json"), 0755))

	keys, err = fs.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"lessons_de", "lessons_fr"}, keys)

	updated, err := fs.UpdatedAt("lessons_fr")
	require.NoError(t, err)
	assert.False(t, updated.IsZero())

	_, err = fs.UpdatedAt("lessons_es")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()

	exists, err := m.Exists("k")
	require.NoError(t, err)
	assert.False(t, exists)

	buf := []byte("hello")
	require.NoError(t, m.Write("k", buf))
	buf[0] = 'j'

	data, err := m.Read("k")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, 1, m.Writes())
	assert.Equal(t, 1, m.Len())

	_, err = m.Read("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
