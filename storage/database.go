// Package storage persists player records and battle history in SQLite
package storage

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the database file and brings the schema up to date
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		// the terminal front end owns stdout
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dataSourceName, err)
	}
	if err := db.AutoMigrate(&PlayerRecord{}, &BattleRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate %s: %w", dataSourceName, err)
	}
	return db, nil
}
