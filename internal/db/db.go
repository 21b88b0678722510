package db

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"livepoll/internal/config"
	"livepoll/internal/models"
	"livepoll/internal/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and migrates the schema.
func Open(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseType {
	case config.DatabaseSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.DatabaseURL))
	default:
		dialector = postgres.Open(cfg.DatabaseURL)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.DatabaseType == config.DatabaseSQLite {
		// SQLite allows a single writer; serialise through one connection so
		// concurrent transactions queue instead of failing with SQLITE_BUSY.
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	slog.Info("Database connection established", "type", cfg.DatabaseType)

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// sqliteDSN turns on foreign keys for every connection the pool opens.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Migrate creates or updates all tables.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Poll{},
		&models.Option{},
		&models.Vote{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	slog.Info("Database migration completed")
	return nil
}

// SeedAdmin makes sure an admin account exists for the configured email.
// An existing account with that email is promoted rather than overwritten.
func SeedAdmin(conn *gorm.DB, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := conn.Where("email = ?", email).First(&user).Error
	if err == nil {
		if user.IsAdmin {
			slog.Info("Admin already seeded, skipping", "email", email)
			return nil
		}
		return conn.Model(&user).Update("is_admin", true).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := conn.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	slog.Info("Admin user created", "email", email)
	return nil
}
