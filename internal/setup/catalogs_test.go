package setup

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jordanella.com/language-gates/internal/config"
	"jordanella.com/language-gates/internal/logging"
)

func TestMain(m *testing.M) {
	logging.Configure(logging.LogLevelFatal, io.Discard)
	os.Exit(m.Run())
}

func TestOpenFileCatalogs(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Format = "yaml"

	cats, err := OpenCatalogs(cfg)
	require.NoError(t, err)
	defer cats.Close()

	_, err = cats.Store.Load("fr")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(cfg.DataDir, "lessons_fr.yaml"))
	assert.NoError(t, err)

	w, err := cats.NewWatcher(nil)
	require.NoError(t, err)
	require.NotNil(t, w)
	w.Stop()
}

func TestOpenSQLiteCatalogs(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Storage = config.StorageSQLite

	cats, err := OpenCatalogs(cfg)
	require.NoError(t, err)

	first, err := cats.Store.Load("de")
	require.NoError(t, err)
	require.NoError(t, cats.Close())

	reopened, err := OpenCatalogs(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	second, err := reopened.Store.Load("de")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	w, err := reopened.NewWatcher(nil)
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestOpenUnknownBackend(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Storage = "cloud"

	_, err := OpenCatalogs(cfg)
	assert.Error(t, err)
}
