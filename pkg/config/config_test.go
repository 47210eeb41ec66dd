package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_SessionConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("SESSION_TTL", "30m")
	defer os.Unsetenv("SESSION_TTL")

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("SESSION_TTL")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("SERVER_PORT")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "surgiplan", cfg.Database.Database)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "pw",
		Database: "agenda", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=agenda sslmode=disable", cfg.DatabaseDSN())
}

func TestLoad_InvalidSessionTTLFallsBack(t *testing.T) {
	os.Setenv("SESSION_TTL", "not-a-duration")
	defer os.Unsetenv("SESSION_TTL")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
}
