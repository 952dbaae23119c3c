package controllers

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds a FOR UPDATE row lock on dialects that support it.
// SQLite has a single writer per database, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
