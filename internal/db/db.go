package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"venuedesk/internal/config"
	"venuedesk/internal/repository/dao"
)

// Open opens (or creates) the embedded store, applies the additive schema
// bootstrap and seeds default rows. A failure here is fatal to the caller.
func Open(conf config.DatabaseConfig) (*gorm.DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(conf.Path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	// SQLite leaves declared foreign keys inert unless asked.
	if err = gormDB.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys -> %w", err)
	}

	if err = dao.InitTables(gormDB); err != nil {
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}

	if err = dao.SeedDefaults(gormDB); err != nil {
		return nil, fmt.Errorf("dao.SeedDefaults -> %w", err)
	}

	return gormDB, nil
}

// OpenInMemory is used by tests. The name keeps per-test databases isolated.
func OpenInMemory(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	return Open(config.DatabaseConfig{Path: dsn})
}
