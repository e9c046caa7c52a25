// Command migrate copies every table from a local SQLite file into the
// hosted Postgres backend, upserting by primary key. One-shot; rerunning is
// safe.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/Food-order-lu/CRM-Task-manager/internal/database"
	"github.com/Food-order-lu/CRM-Task-manager/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func main() {
	dbPath := flag.String("db", "data.db", "path to the local SQLite file")
	flag.Parse()

	targetURL := os.Getenv("DATABASE_URL")
	if targetURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	source, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatal("open source: ", err)
	}

	target, err := gorm.Open(postgres.Open(targetURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatal("open target: ", err)
	}
	if err := database.Migrate(target); err != nil {
		log.Fatal(err)
	}

	log.Println("--- Starting migration ---")
	copyTable[models.Commerce](source, target, "commerces")
	copyTable[models.Project](source, target, "projects")
	copyTable[models.Task](source, target, "tasks")
	copyTable[models.TaskCalendarEvent](source, target, "task_calendar_events")
	copyTable[models.ConfigEntry](source, target, "config")
	log.Println("--- Migration finished ---")
}

func copyTable[T any](source, target *gorm.DB, name string) {
	var rows []T
	if err := source.Find(&rows).Error; err != nil {
		log.Fatalf("read %s: %v", name, err)
	}
	log.Printf("Migrating %d %s...", len(rows), name)
	for i := range rows {
		err := target.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows[i]).Error
		if err != nil {
			log.Printf("Error migrating %s row: %v", name, err)
		}
	}
}
