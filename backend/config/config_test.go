package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 30*24*60, cfg.JWT.ExpMin)
	assert.Equal(t, 6, cfg.Auth.MinPasswordLength)
	assert.Equal(t, 10, cfg.Search.HistoryLimit)
	assert.Equal(t, 30*time.Second, cfg.Wallpaper.Timeout)
	assert.Empty(t, cfg.JWT.Secret)
	assert.False(t, cfg.WebDAV.Configured())
	assert.Empty(t, cfg.RateLimit.TrustedProxies)
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
backend:
  port: 9100
  db:
    driver: MySQL
    host: db.internal
    pass: hunter2
  jwt:
    secret: s3cret
    exp_min: 60
  webdav:
    url: https://dav.example.com/remote.php/
    avatar_dir: /img/avatars/
  ratelimit:
    trusted_proxies: ["127.0.0.1", "10.0.0.0/8"]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9100", cfg.Addr())
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "hunter2", cfg.DB.Pass)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 60, cfg.JWT.ExpMin)
	assert.Equal(t, "https://dav.example.com/remote.php", cfg.WebDAV.URL)
	assert.Equal(t, "img/avatars", cfg.WebDAV.AvatarDir)
	assert.True(t, cfg.WebDAV.Configured())
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.0/8"}, cfg.RateLimit.TrustedProxies)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("JIANSOU_BACKEND_JWT_SECRET", "from-env")
	t.Setenv("JIANSOU_BACKEND_SEARCH_HISTORY_LIMIT", "25")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 25, cfg.Search.HistoryLimit)
}

func TestLoadZeroAvatarLimitUsesDefault(t *testing.T) {
	t.Setenv("JIANSOU_BACKEND_WEBDAV_MAX_FILE_SIZE", "0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.EqualValues(t, 5<<20, cfg.WebDAV.MaxFileSize)
}

func TestLoadTrustedProxiesFromEnv(t *testing.T) {
	t.Setenv("JIANSOU_BACKEND_RATELIMIT_TRUSTED_PROXIES", "127.0.0.1 10.0.0.0/8")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.0/8"}, cfg.RateLimit.TrustedProxies)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JIANSOU_BACKEND_DB_DRIVER", "oracle")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
