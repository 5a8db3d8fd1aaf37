package services

import (
	"testing"

	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.Report{}, &models.Job{}, &models.Contact{})
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
