package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "pgx", cfg.Postgres.Driver)
	assert.Equal(t, 10, cfg.CheckoutConcurrency)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	err := os.WriteFile(path, []byte(`
app_env: staging
http_port: 9000
postgres:
  driver: postgres
  host: db.internal
`), 0o600)
	require.NoError(t, err)

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("POSTGRES_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.AppEnv)
	assert.Equal(t, 9100, cfg.HTTPPort, "env wins over file")
	assert.Equal(t, "postgres", cfg.Postgres.Driver)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port, "unset keys keep defaults")
}

func TestLoadBadFile(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("http_port: [oops"), 0o600))
		t.Setenv("CONFIG_FILE", path)
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SOME_PORT", "abc")
	assert.Equal(t, 7, getEnvInt("SOME_PORT", 7))

	t.Setenv("SOME_PORT", "42")
	assert.Equal(t, 42, getEnvInt("SOME_PORT", 7))
}
