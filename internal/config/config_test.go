package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CHANNEL_BUFFER", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")

	cfg, err := ParseFlags(nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DatabasePostgres, cfg.DatabaseType)
	assert.Equal(t, defaultPostgresDSN, cfg.DatabaseURL)
	assert.Equal(t, 16, cfg.ChannelBuffer)
	assert.Equal(t, defaultSessionSecret, cfg.SessionSecret)
	assert.False(t, cfg.SeedAdmin())
}

func TestParseFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADMIN_EMAIL", "root@example.com")
	t.Setenv("ADMIN_PASSWORD", "hunter22")

	cfg, err := ParseFlags([]string{"-p", "7000", "-d", "/tmp/x.db"})
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, DatabaseSQLite, cfg.DatabaseType)
	assert.Equal(t, "/tmp/x.db", cfg.DatabaseURL)
	assert.True(t, cfg.SeedAdmin())
}

func TestParseFlagsRejectsBadValues(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "")

	t.Run("port", func(t *testing.T) {
		t.Setenv("PORT", "abc")
		_, err := ParseFlags(nil)
		assert.Error(t, err)
	})

	t.Run("database type", func(t *testing.T) {
		t.Setenv("PORT", "")
		_, err := ParseFlags([]string{"-t", "mysql"})
		assert.Error(t, err)
	})

	t.Run("channel buffer", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("CHANNEL_BUFFER", "-3")
		_, err := ParseFlags(nil)
		assert.Error(t, err)
	})
}
