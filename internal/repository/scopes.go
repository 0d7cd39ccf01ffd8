package repository

import "gorm.io/gorm"

// notDeleted is the shared predicate excluding soft-deleted rows. Every
// default read path applies it; only the explicit *Any lookups skip it.
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted = ?", false)
}
