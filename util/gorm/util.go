// Package gorm contains gorm helpers shared by SQL storages.
package gorm

import "gorm.io/gorm"

// Close closes the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
