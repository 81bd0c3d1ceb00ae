package persistence

import (
	"fmt"
	"log"
	"os"
	"time"

	"livestock/internal/adapters/out/persistence/animalrepo"
	"livestock/internal/adapters/out/persistence/holdingrepo"
	"livestock/internal/adapters/out/persistence/orderrepo"
	"livestock/internal/adapters/out/persistence/siterepo"
	"livestock/internal/adapters/out/persistence/transferrepo"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver string
	DSN    string

	// LogSQL logs every statement; otherwise only slow ones and errors.
	LogSQL        bool
	SlowThreshold time.Duration
}

// PostgresDSN builds a key/value connection string for the pgx driver.
func PostgresDSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode,
	)
}

// Open connects to the configured store. Driver errors for unique violations
// are translated to gorm.ErrDuplicatedKey.
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	level := gormlogger.Warn
	if cfg.LogSQL {
		level = gormlogger.Info
	}
	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             slow,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// One connection makes SQLite transactions queue instead of failing with SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Models lists every table owned by the engine, in creation order.
func Models() []any {
	return []any{
		&siterepo.SiteDTO{},
		&animalrepo.AnimalDTO{},
		&holdingrepo.SessionDTO{},
		&holdingrepo.MemberDTO{},
		&transferrepo.TransferDTO{},
		&transferrepo.MemberDTO{},
		&transferrepo.ReceptionDTO{},
		&orderrepo.OrderDTO{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
