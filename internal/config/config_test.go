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
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "data/multiplication.db", cfg.DB.SQLitePath)
	assert.Equal(t, 20, cfg.DB.MaxConnections)
	assert.Equal(t, 30*time.Second, cfg.DB.MaxConnLifetime)
	assert.Equal(t, 30, cfg.Facts.MaxOperand)
	assert.Equal(t, 3, cfg.Mastery.DefaultThreshold)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
env: production
http:
  addr: ":9090"
database:
  driver: memory
  max_connections: 5
mastery:
  default_threshold: 4
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("DATABASE_DRIVER", "")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ":7070", cfg.HTTP.Addr, "environment wins over file")
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 5, cfg.DB.MaxConnections)
	assert.Equal(t, 4, cfg.Mastery.DefaultThreshold)
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", DriverPostgres)
	t.Setenv("DATABASE_URL", "")

	_, err := Load(t.TempDir())
	require.ErrorIs(t, err, ErrMissingEnvironmentVariables)

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/facts")
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost:5432/facts", dsn)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")

	_, err := Load(t.TempDir())
	require.ErrorIs(t, err, ErrUnknownDriver)
}
