package testutils

import (
	"path/filepath"
	"testing"

	"organizely/organizer/database"
	"organizely/organizer/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a throwaway sqlite database with the full schema
// migrated, for tests that exercise real transactions instead of mocks.
func SetupTestDB(t *testing.T) *database.Database {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &database.Database{DB: db}
}

// CreateTestUser inserts a user row so foreign-key checks in the services
// have something to resolve against.
func CreateTestUser(t *testing.T, db *database.Database) models.User {
	t.Helper()

	user := models.User{
		ID:           uuid.New(),
		Email:        uuid.New().String() + "@example.com",
		DisplayName:  "Test User",
		PasswordHash: "not-a-real-hash",
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}
