package model

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing with the specified models.
// The database name is uniquified using the current Unix nanosecond timestamp to prevent
// cross-test contamination when tests run in the same process.
func setupTestDB(t *testing.T, name string, models ...interface{}) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("failed to auto-migrate models: %v", err)
		}
	}

	return db
}

func newProfile(username string) UserProfile {
	return UserProfile{
		Username:   username,
		Email:      username + "@example.com",
		Password:   "argon2id$salt$hash",
		Phone:      "9876543210",
		Address:    "Guntur",
		Age:        30,
		Gender:     "male",
		BloodGroup: "B+",
		Height:     170,
		Weight:     65,
	}
}

func createProfile(t *testing.T, db *gorm.DB, username string) UserProfile {
	t.Helper()
	user := newProfile(username)
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create profile %s: %v", username, err)
	}
	return user
}
