package config

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"

	defaultPort          = 8080
	defaultChannelBuffer = 16
	defaultSessionSecret = "secret_key_change_me"
	defaultPostgresDSN   = "host=localhost user=postgres password=postgres dbname=livepoll port=5432 sslmode=disable"
	defaultSQLiteDSN     = "livepoll.db"
)

type Config struct {
	Port          int
	DatabaseType  string
	DatabaseURL   string
	SessionSecret string
	SecureCookies bool
	ChannelBuffer int

	// Admin account seeded on startup when both email and password are set.
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load reads an optional .env file and then parses args with environment
// variables as fallback. Flags win over env.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, reading config from environment")
	}
	return ParseFlags(args)
}

func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("livepoll", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.IntVar(&cfg.ChannelBuffer, "channel-buffer", 0, "Outbound messages buffered per live channel")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		port, err := envInt("PORT", defaultPort)
		if err != nil {
			return Config{}, errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = strings.ToLower(os.Getenv("DATABASE_TYPE"))
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = DatabasePostgres
	}
	if cfg.DatabaseType != DatabasePostgres && cfg.DatabaseType != DatabaseSQLite {
		return Config{}, errors.New("database type must be postgres or sqlite")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		// Fallback for local dev if not set
		if cfg.DatabaseType == DatabaseSQLite {
			cfg.DatabaseURL = defaultSQLiteDSN
		} else {
			cfg.DatabaseURL = defaultPostgresDSN
		}
	}

	if cfg.ChannelBuffer == 0 {
		n, err := envInt("CHANNEL_BUFFER", defaultChannelBuffer)
		if err != nil || n <= 0 {
			return Config{}, errors.New("invalid CHANNEL_BUFFER env variable")
		}
		cfg.ChannelBuffer = n
	}
	if cfg.ChannelBuffer < 0 {
		return Config{}, errors.New("channel buffer must be positive")
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET not set, using insecure default")
		cfg.SessionSecret = defaultSessionSecret
	}
	cfg.SecureCookies = os.Getenv("SECURE_COOKIES") == "true"

	cfg.AdminName = os.Getenv("ADMIN_NAME")
	if cfg.AdminName == "" {
		cfg.AdminName = "Admin"
	}
	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	return cfg, nil
}

// SeedAdmin reports whether an admin account should be ensured on startup.
func (c Config) SeedAdmin() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
