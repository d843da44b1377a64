package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_NAME", "APP_ENV", "PORT", "PUBLIC_DIR", "VIEWS_DIR", "DATABASE_URL", "MONGO_URI",
		"DB_MAX_CONNS", "DB_MIN_CONNS", "MIGRATIONS_DIR", "REDIS_ADDR", "REDIS_PASSWORD",
		"REDIS_TTL", "FEED_PORT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/tracker?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "exercise-tracker", cfg.App.AppName)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "3000", cfg.App.HTTPPort)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Feed.Enabled())

	drv, err := cfg.Database.Driver()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, drv)
}

func TestLoad_MongoURIAlias(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/tracker")
	t.Setenv("PORT", "8080")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_TTL", "30")
	t.Setenv("FEED_PORT", "3001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017/tracker", cfg.Database.URL)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.True(t, cfg.Feed.Enabled())

	drv, err := cfg.Database.Driver()
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, drv)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "memory://")
	t.Setenv("PORT", "http")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, errInvalidEnv)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoad_UnsupportedScheme(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "mysql://localhost/tracker")

	_, err := Load()
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
