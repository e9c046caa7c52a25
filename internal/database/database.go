package database

import (
	"fmt"
	"log"

	"github.com/Food-order-lu/CRM-Task-manager/internal/config"
	"github.com/Food-order-lu/CRM-Task-manager/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to the configured backend and runs migrations. The two
// backends (local SQLite file, hosted Postgres such as a Supabase database)
// expose the same schema and are interchangeable from here up.
func Open(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBBackend {
	case "sqlite":
		// glebarez/sqlite is a pure Go implementation (no CGO required)
		dialector = sqlite.Open(cfg.DBPath)
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown DB_BACKEND %q", cfg.DBBackend)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBBackend, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	DB = db
	log.Printf("[Database] %s backend connected and migrated", cfg.DBBackend)
	return db, nil
}

// Migrate creates or updates the four tables plus the calendar-event mapping.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Commerce{},
		&models.Project{},
		&models.Task{},
		&models.TaskCalendarEvent{},
		&models.ConfigEntry{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
