package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("YTX_DB_PATH", "")
	t.Setenv("YTX_LEDGER_ROOT", "")
	t.Setenv("YTX_LOG_LEVEL", "")
	t.Setenv("YTX_DEBUG", "")
	t.Setenv("YTX_SECTION", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Database.Path)
	assert.Equal(t, "./ledger", cfg.Database.Root)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Debug)
	assert.Equal(t, "finance", cfg.Section)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("YTX_DB_PATH", "/tmp/books.db")
	t.Setenv("YTX_LEDGER_ROOT", "/tmp/books")
	t.Setenv("YTX_LOG_LEVEL", "debug")
	t.Setenv("YTX_DEBUG", "true")
	t.Setenv("YTX_SECTION", "product")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/books.db", cfg.Database.Path)
	assert.Equal(t, "/tmp/books", cfg.Database.Root)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, "product", cfg.Section)
}

func TestLoadEnvFile(t *testing.T) {
	// godotenv never overrides a variable that is already present, even
	// when empty, so the keys must be absent for the file values to win.
	// Setenv first so the originals are restored after the test.
	t.Setenv("YTX_SECTION", "")
	t.Setenv("YTX_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("YTX_SECTION"))
	require.NoError(t, os.Unsetenv("YTX_LOG_LEVEL"))

	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath,
		[]byte("YTX_SECTION=task\nYTX_LOG_LEVEL=warn\n"), 0644))

	cfg, err := Load(envPath)
	require.NoError(t, err)
	assert.Equal(t, "task", cfg.Section)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadFileOverlaysBase(t *testing.T) {
	base := &Config{
		Database: DatabaseConfig{Root: "./ledger"},
		Log:      LogConfig{Level: "info"},
		Section:  "finance",
	}

	path := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("section: sales\nlog:\n  level: debug\n"), 0644))

	cfg, err := LoadFile(path, base)
	require.NoError(t, err)

	assert.Equal(t, "sales", cfg.Section)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched fields keep the base values.
	assert.Equal(t, "./ledger", cfg.Database.Root)

	// The base itself is never mutated.
	assert.Equal(t, "finance", base.Section)
}
