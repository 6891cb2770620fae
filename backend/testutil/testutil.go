// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"techguide/backend/models"
	"techguide/backend/utils"
)

// PrepareDB returns a migrated in-memory SQLite database that lives until
// the test ends.
func PrepareDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("PrepareDB() open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("PrepareDB() pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := utils.Migrate(db); err != nil {
		t.Fatalf("PrepareDB() migrate: %v", err)
	}
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, first, email, pwd string, role models.Role) models.User {
	t.Helper()
	usr := models.User{FirstName: first, LastName: "Tester", Email: email, Role: role, EmailVerified: true}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	if err := db.WithContext(context.Background()).Create(&usr).Error; err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func IntPtr(v int) *int { return &v }

func StrPtr(s string) *string { return &s }

// SeedCatalog inserts two ordered categories and one without an order:
//
//	"Computer Basics" (order 1): 2 tutorials
//	"Internet Skills" (order 2): 4 tutorials, one without a duration
//	"Extras" (no order): 1 tutorial
func SeedCatalog(t *testing.T, db *gorm.DB) []models.Category {
	t.Helper()
	categories := []models.Category{
		{Name: "Computer Basics", DisplayOrder: IntPtr(1), Description: StrPtr("Start here"), Tutorials: []models.Tutorial{
			{Title: "Turning on a computer", Difficulty: models.Beginner, EstimatedDuration: IntPtr(5)},
			{Title: "Using a mouse", Difficulty: models.Beginner, EstimatedDuration: IntPtr(10)},
		}},
		{Name: "Internet Skills", DisplayOrder: IntPtr(2), Tutorials: []models.Tutorial{
			{Title: "Opening a web browser", Difficulty: models.Beginner, EstimatedDuration: IntPtr(10)},
			{Title: "Searching the web", Difficulty: models.Intermediate, EstimatedDuration: IntPtr(15)},
			{Title: "Sending an email", Difficulty: models.Intermediate},
			{Title: "Spotting phishing", Description: "Recognise fake email", Difficulty: models.Advanced, EstimatedDuration: IntPtr(20)},
		}},
		{Name: "Extras", Tutorials: []models.Tutorial{
			{Title: "Video calls", Difficulty: models.Advanced, EstimatedDuration: IntPtr(25)},
		}},
	}
	for i := range categories {
		if err := db.Create(&categories[i]).Error; err != nil {
			t.Fatalf("SeedCatalog() failed: %v", err)
		}
	}
	return categories
}

// AddProgress inserts a raw progress row, bypassing the repository rules so
// tests can create duplicates.
func AddProgress(t *testing.T, db *gorm.DB, rec models.ProgressRecord) models.ProgressRecord {
	t.Helper()
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("AddProgress() failed: %v", err)
	}
	return rec
}

func TimePtr(t time.Time) *time.Time { return &t }
