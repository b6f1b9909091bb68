package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CARDS_BASE_URL", "http://env.example/webhook")
	t.Setenv("CARDS_TIMEOUT", "7s")
	t.Setenv("CARDS_PAGE_SIZE", "4")
	t.Setenv("CARDS_DEBUG", "true")
	t.Setenv("CARDS_DARK_MODE", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://env.example/webhook", cfg.API.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.GetTimeout())
	assert.Equal(t, 4, cfg.GetPageSize())
	assert.True(t, cfg.Logging.DebugMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestEnvOverrides_BadPageSizeIgnored(t *testing.T) {
	t.Setenv("CARDS_PAGE_SIZE", "lots")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.GetPageSize())
}

func TestEnvOverrides_WinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://file.example\n"), 0644))
	t.Setenv("CARDS_BASE_URL", "http://env.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example", cfg.API.BaseURL)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CARDS_TEST_DOTENV=from-file\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("CARDS_TEST_DOTENV")
	})

	require.NoError(t, LoadDotEnv())
	assert.Equal(t, "from-file", os.Getenv("CARDS_TEST_DOTENV"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.NoError(t, LoadDotEnv())
}
