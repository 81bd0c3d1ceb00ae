// Package gormutil holds helpers shared by the gorm repositories.
package gormutil

import (
	"errors"
	"strings"

	"livestock/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate adds SELECT ... FOR UPDATE on dialects that support row locks.
// SQLite serializes writers on its own and has no such clause.
func ForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// NotFound maps gorm.ErrRecordNotFound to an ObjectNotFoundError for name/id.
func NotFound(err error, name string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(name, id)
	}
	return err
}

// UniqueConflict maps unique index violations to a UniqueConflictError.
func UniqueConflict(err error, field, value string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return errs.NewUniqueConflictErrorWithCause(field, value, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
