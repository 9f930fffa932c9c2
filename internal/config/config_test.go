package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, 24*time.Hour, cfg.QR.CacheTTL)
	assert.Equal(t, 500, cfg.QR.Size)
	assert.Equal(t, "flavorqueste.com", cfg.QR.AllowedDomain)
	assert.Equal(t, "en", cfg.I18n.DefaultLang)
	assert.Len(t, cfg.I18n.Files, 2)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  addr: ":9090"
  base_url: "https://sho.rt"
db:
  driver: sqlite
  dsn: "file::memory:"
redis:
  idle_timeout: 30s
qr:
  allowed_domain: example.com
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	t.Setenv("SHORTLINK_LOG_LEVEL", "debug")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "https://sho.rt", cfg.Server.BaseURL)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 30*time.Second, cfg.Redis.IdleTimeout)
	assert.Equal(t, "example.com", cfg.QR.AllowedDomain)
	assert.Equal(t, "debug", cfg.Log.Level)
}
