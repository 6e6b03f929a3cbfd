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
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "memory", c.Storage.Driver)
	assert.Equal(t, "memory", c.Cache.Kind)
	assert.Equal(t, 15*time.Minute, c.AccessTTL())
	assert.Equal(t, 720*time.Hour, c.RefreshTTL())
	assert.Equal(t, 300, c.Rate.MaxRequests)
	assert.Equal(t, 1, c.Commerce.MileageAccrualPercent)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: prod
server:
  addr: ":9000"
storage:
  driver: postgres
  postgres:
    dsn: "postgres://x"
jwt:
  access_ttl: 5m
rate:
  enabled: true
  window: 30s
  max_requests: 50
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", c.App.Env)
	assert.Equal(t, ":9000", c.Server.Addr)
	assert.Equal(t, "postgres", c.Storage.Driver)
	assert.Equal(t, 5*time.Minute, c.AccessTTL())
	assert.True(t, c.Rate.Enabled)
	assert.Equal(t, 50, c.Rate.MaxRequests)
}

func TestLoadInvalidDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jwt:\n  access_ttl: banana\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7777")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("POSTGRES_DSN", "postgres://env")
	t.Setenv("COMMERCE_MILEAGE_ACCRUAL_PERCENT", "3")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7777", c.Server.Addr)
	assert.Equal(t, "postgres", c.Storage.Driver)
	assert.Equal(t, "postgres://env", c.Storage.Postgres.DSN)
	assert.Equal(t, 3, c.Commerce.MileageAccrualPercent)
}

func TestTestTTLPrecedence(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "10m")
	t.Setenv("TEST_ACCESS_TTL", "2s")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, c.AccessTTL())
}
