// Package persistencetest opens throwaway stores for tests.
package persistencetest

import (
	"testing"

	"livestock/internal/adapters/out/persistence"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLite returns a migrated in-memory SQLite database closed at the end of t.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := persistence.Open(persistence.Config{
		Driver: persistence.DriverSQLite,
		DSN:    ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, persistence.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
