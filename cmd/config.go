package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"livestock/internal/adapters/out/notify"
	"livestock/internal/adapters/out/persistence"
	"livestock/internal/jobs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string
	GormLog    bool

	RedisAddr     string
	RedisPassword string
	EventsChannel string

	StaleTransferAfter    time.Duration
	StaleTransferSchedule string

	LogLevel slog.Level
}

// LoadConfig reads the environment after loading envFile into it. A missing
// envFile is not an error; variables already set in the environment win.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		HTTPPort:              env("HTTP_PORT", "8080"),
		DBDriver:              strings.ToLower(env("DB_DRIVER", persistence.DriverPostgres)),
		DBHost:                env("DB_HOST", "localhost"),
		DBPort:                env("DB_PORT", "5432"),
		DBUser:                env("DB_USER", "postgres"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                env("DB_NAME", "livestock"),
		DBSslMode:             env("DB_SSLMODE", "disable"),
		SQLitePath:            env("SQLITE_PATH", "livestock.db"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		EventsChannel:         env("EVENTS_CHANNEL", notify.DefaultChannel),
		StaleTransferSchedule: env("STALE_TRANSFER_SCHEDULE", jobs.DefaultStaleTransferSchedule),
	}

	var errList []error
	var err error
	if cfg.GormLog, err = strconv.ParseBool(env("GORM_LOG", "false")); err != nil {
		errList = append(errList, fmt.Errorf("GORM_LOG: %w", err))
	}
	if cfg.StaleTransferAfter, err = time.ParseDuration(env("STALE_TRANSFER_AFTER", "48h")); err != nil {
		errList = append(errList, fmt.Errorf("STALE_TRANSFER_AFTER: %w", err))
	} else if cfg.StaleTransferAfter <= 0 {
		errList = append(errList, fmt.Errorf("STALE_TRANSFER_AFTER must be positive, got %s", cfg.StaleTransferAfter))
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		errList = append(errList, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if cfg.DBDriver != persistence.DriverPostgres && cfg.DBDriver != persistence.DriverSQLite {
		errList = append(errList, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DBDriver))
	}
	if port, portErr := strconv.Atoi(cfg.HTTPPort); portErr != nil || port <= 0 || port > 65535 {
		errList = append(errList, fmt.Errorf("HTTP_PORT: invalid port %q", cfg.HTTPPort))
	}

	if err = errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Database returns the connection settings for the configured driver.
func (c Config) Database() persistence.Config {
	dsn := c.SQLitePath
	if c.DBDriver == persistence.DriverPostgres {
		dsn = persistence.PostgresDSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
	}
	return persistence.Config{
		Driver: c.DBDriver,
		DSN:    dsn,
		LogSQL: c.GormLog,
	}
}

func (c Config) HTTPAddr() string {
	return "0.0.0.0:" + c.HTTPPort
}

// NewLogger writes JSON records to stdout at the configured level.
func NewLogger(c Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: c.LogLevel}))
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
