package database

import (
	"log"

	"organizely/organizer/models"

	"gorm.io/gorm"
)

// RunMigrations runs database migrations to ensure tables are up to date
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Subtask{},
		&models.Event{},
	)

	if err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	return nil
}
