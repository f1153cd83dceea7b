package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"flight-footprint/atlas/internal/logging"
	gormModels "flight-footprint/atlas/internal/models/gorm"
)

const sqlitePrefix = "sqlite:"

// Open connects to the SQL mirror. A DSN starting with "sqlite:" opens the
// named SQLite file (or ":memory:"); anything else is handed to Postgres.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	var (
		db     *gorm.DB
		err    error
		driver string
	)
	if strings.HasPrefix(dsn, sqlitePrefix) {
		driver = "sqlite"
		db, err = gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix)), cfg)
	} else {
		driver = "postgres"
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	logging.Info("Connected to SQL mirror via GORM", "driver", driver)
	return db, nil
}

// Migrate creates or updates the mirror tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&gormModels.Airport{}); err != nil {
		return fmt.Errorf("failed to migrate airports table: %w", err)
	}
	return nil
}

// Ping checks the underlying connection.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
