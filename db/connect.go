package db

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"draw2photo-server/entities"
)

// Connect opens the file-backed SQLite store at path and creates the
// schema if it is missing. TranslateError is enabled so a uniqueness
// violation surfaces as gorm.ErrDuplicatedKey instead of a raw driver
// error string.
func Connect(path string) (Database, error) {
	if path == "" {
		return nil, fmt.Errorf("missing required database path")
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	log.Printf("Database opened at %s", path)

	if err := gdb.AutoMigrate(&entities.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &GormDatabase{DB: gdb}, nil
}
