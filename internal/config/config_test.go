package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "shoplist:", cfg.Storage.Redis.KeyPrefix)
	assert.Equal(t, 10*time.Second, cfg.Storage.SaveTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SHOPLIST_STORAGE_DRIVER", "redis")
	t.Setenv("SHOPLIST_STORAGE_REDIS_ADDR", "cache:6380")
	t.Setenv("SHOPLIST_STORAGE_REDIS_DB", "2")
	t.Setenv("SHOPLIST_STORAGE_S3_PATH_STYLE", "true")
	t.Setenv("SHOPLIST_STORAGE_REDIS_KEY_PREFIX", "family:")
	t.Setenv("SHOPLIST_STORAGE_SAVE_TIMEOUT", "3s")
	t.Setenv("SHOPLIST_HTTP_ADDR", ":9090")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "cache:6380", cfg.Storage.Redis.Addr)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
	assert.Equal(t, "family:", cfg.Storage.Redis.KeyPrefix)
	assert.Equal(t, 3*time.Second, cfg.Storage.SaveTimeout)
	assert.True(t, cfg.Storage.S3.PathStyle)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "shopping-list", cfg.Storage.Key)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoplist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: fs
  fs_root: /var/lib/shoplist
  key: weekly
log:
  level: debug
recipes:
  file: /etc/shoplist/recipes.toml
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fs", cfg.Storage.Driver)
	assert.Equal(t, "/var/lib/shoplist", cfg.Storage.FSRoot)
	assert.Equal(t, "weekly", cfg.Storage.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/etc/shoplist/recipes.toml", cfg.Recipes.File)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
