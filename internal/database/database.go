// Package database opens the GORM connection for the configured driver.
package database

import (
	"context"
	"fmt"
	"time"

	"customerapi/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	// DriverMemory selects the in-process repository; no connection is opened.
	DriverMemory = "memory"
)

// Open connects to dsn with the named driver. TranslateError is enabled so
// duplicate-key failures surface as gorm.ErrDuplicatedKey on every dialect.
// Query logging goes to log, or nowhere when log is nil.
func Open(driver, dsn string, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return db, nil
}

// Migrate creates or updates the customers table and its unique email index.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Customer{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// Ping checks the underlying connection pool.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
