package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("RAILCARE_AUTH_JWT_SECRET", "")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("RAILCARE_AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.Equal(t, 30, cfg.Portal.NotificationRetentionDays)
	assert.Equal(t, 24, cfg.Portal.CleanupIntervalHours)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RAILCARE_AUTH_JWT_SECRET", "test-secret")
	t.Setenv("RAILCARE_DATABASE_HOST", "db.internal")
	t.Setenv("RAILCARE_PORTAL_NOTIFICATION_RETENTION_DAYS", "45")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 45, cfg.Portal.NotificationRetentionDays)
}

func TestDSN_IncludesParseTimeAndUTC(t *testing.T) {
	d := DatabaseConfig{Host: "localhost", Port: "3306", User: "u", Password: "p", DBName: "railcare"}

	dsn := d.DSN()

	assert.Equal(t, "u:p@tcp(localhost:3306)/railcare?parseTime=true&charset=utf8mb4&loc=UTC&clientFoundRows=true", dsn)
}
