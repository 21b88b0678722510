// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"livepoll/internal/config"
	"livepoll/internal/db"
	"livepoll/internal/models"
	"livepoll/internal/utils"

	"gorm.io/gorm"
)

// TestPassword is the password of every user created by CreateTestUser.
const TestPassword = "password123"

// SetupTestDB opens a fresh SQLite database in a temp dir with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.Config{
		DatabaseType: config.DatabaseSQLite,
		DatabaseURL:  filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
	}
	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}

// CreateTestUser inserts a user whose password is TestPassword.
func CreateTestUser(t *testing.T, conn *gorm.DB, name string, admin bool) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: hash,
		IsAdmin:      admin,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestPoll inserts a published poll owned by owner with the given
// option texts, in order.
func CreateTestPoll(t *testing.T, conn *gorm.DB, owner *models.User, question string, allowMultiple bool, options ...string) (*models.Poll, []models.Option) {
	t.Helper()

	poll := &models.Poll{
		Question:      question,
		UserID:        owner.ID,
		IsPublished:   true,
		AllowMultiple: allowMultiple,
		ShowResults:   true,
	}
	if err := conn.Create(poll).Error; err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	opts := make([]models.Option, len(options))
	for i, text := range options {
		opts[i] = models.Option{Text: text, PollID: poll.ID, Position: i}
	}
	if len(opts) > 0 {
		if err := conn.Create(&opts).Error; err != nil {
			t.Fatalf("Failed to create test options: %v", err)
		}
	}
	return poll, opts
}

// CountVotes returns the number of committed votes on a poll.
func CountVotes(t *testing.T, conn *gorm.DB, pollID string) int64 {
	t.Helper()

	var n int64
	if err := conn.Model(&models.Vote{}).Where("poll_id = ?", pollID).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}
