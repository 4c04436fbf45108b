// Package config loads application configuration from config files and
// environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Portal   PortalConfig   `mapstructure:"portal"`
}

// DatabaseConfig holds MySQL connection settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// AuthConfig holds JWT settings
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PortalConfig holds portal-wide settings used in template rendering and
// background maintenance.
type PortalConfig struct {
	BaseURL                   string `mapstructure:"base_url"`
	NotificationRetentionDays int    `mapstructure:"notification_retention_days"`
	CleanupIntervalHours      int    `mapstructure:"cleanup_interval_hours"`
}

// DSN builds the MySQL DSN. Timestamps are stored and compared in UTC.
func (d DatabaseConfig) DSN() string {
	// clientFoundRows makes RowsAffected report matched rows, so
	// ownership-scoped updates stay idempotent.
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC&clientFoundRows=true",
		d.User, d.Password, d.Host, d.Port, d.DBName)
}

// Load reads config.yaml (if present) and environment overrides such as
// RAILCARE_DATABASE_HOST or RAILCARE_AUTH_JWT_SECRET.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RAILCARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret (RAILCARE_AUTH_JWT_SECRET) is required")
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "railcare")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "railcare")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	// AutomaticEnv only surfaces keys viper already knows about, so even
	// env-only settings need a registered default.
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("portal.base_url", "http://localhost:8080")
	v.SetDefault("portal.notification_retention_days", 30)
	v.SetDefault("portal.cleanup_interval_hours", 24)
}
