package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"livestock/internal/adapters/out/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"DB_SSLMODE", "SQLITE_PATH", "GORM_LOG", "REDIS_ADDR", "REDIS_PASSWORD",
	"EVENTS_CHANNEL", "STALE_TRANSFER_AFTER", "STALE_TRANSFER_SCHEDULE", "LOG_LEVEL",
}

// clearEnv unsets every configuration variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, persistence.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 48*time.Hour, cfg.StaleTransferAfter)
	assert.Equal(t, "@every 10m", cfg.StaleTransferSchedule)
	assert.Equal(t, "livestock.events", cfg.EventsChannel)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.GormLog)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadConfig_DotenvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"HTTP_PORT=7000\nDB_DRIVER=sqlite\nSQLITE_PATH=/var/lib/livestock.db\nSTALE_TRANSFER_AFTER=36h\nLOG_LEVEL=debug\nGORM_LOG=true\n",
	), 0o600))
	t.Setenv("HTTP_PORT", "9000")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, persistence.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 36*time.Hour, cfg.StaleTransferAfter)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.GormLog)
	assert.Equal(t, persistence.Config{
		Driver: persistence.DriverSQLite,
		DSN:    "/var/lib/livestock.db",
		LogSQL: true,
	}, cfg.Database())
}

func TestLoadConfig_MissingDotenvIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))

	require.NoError(t, err)
}

func TestLoadConfig_ReportsEveryInvalidValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "http")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("STALE_TRANSFER_AFTER", "soon")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("GORM_LOG", "sometimes")

	_, err := LoadConfig("")

	require.Error(t, err)
	for _, key := range []string{"HTTP_PORT", "DB_DRIVER", "STALE_TRANSFER_AFTER", "LOG_LEVEL", "GORM_LOG"} {
		assert.ErrorContains(t, err, key)
	}
}

func TestLoadConfig_RejectsNonPositiveStaleWindow(t *testing.T) {
	clearEnv(t)
	t.Setenv("STALE_TRANSFER_AFTER", "-1h")

	_, err := LoadConfig("")

	require.ErrorContains(t, err, "must be positive")
}

func TestConfig_PostgresDatabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "s3cret")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	db := cfg.Database()
	assert.Equal(t, persistence.DriverPostgres, db.Driver)
	assert.Equal(t, "host=db.internal port=5432 user=postgres password=s3cret dbname=livestock sslmode=disable", db.DSN)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
}
