// Package config handles application configuration management.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/avdwerf/userbase/internal/apperrors"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	// LogLevel controls logging verbosity ("info" or "debug")
	LogLevel    string
	Environment string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address string
}

// DatabaseConfig holds MySQL database connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	// RunMigrations applies embedded schema migrations at startup
	RunMigrations bool
}

// AuthConfig holds authentication and session configuration.
type AuthConfig struct {
	// Method specifies authentication type: "local", "oidc", or "both"
	Method string

	// SessionSecret must be changed from default in production
	SessionSecret string

	// Cookie configuration
	CookieName     string
	CookieDomain   string
	CookieSameSite string

	// OIDC configuration
	OIDCProviderURL  string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
}

// Load reads configuration from environment variables. Every failure is
// surfaced as a configuration error carrying the loader's message.
func Load() (*Config, error) {
	port, err := getEnvInt("USERBASE_DB_PORT", 3306)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Address: getEnv("USERBASE_SERVER_ADDRESS", "0.0.0.0:3000"),
		},
		Database: DatabaseConfig{
			Host:          getEnv("USERBASE_DB_HOST", "localhost"),
			Port:          port,
			User:          getEnv("USERBASE_DB_USER", "userbase"),
			Password:      getEnv("USERBASE_DB_PASSWORD", "userbase"),
			Database:      getEnv("USERBASE_DB_NAME", "userbase"),
			RunMigrations: getEnv("USERBASE_DB_MIGRATE", "true") == "true",
		},
		Auth: AuthConfig{
			Method:           getEnv("USERBASE_AUTH_METHOD", "local"),
			SessionSecret:    getEnv("USERBASE_SESSION_SECRET", "your-secret-key-change-in-production"),
			CookieName:       getEnv("USERBASE_COOKIE_NAME", "userbase_session"),
			CookieDomain:     getEnv("USERBASE_COOKIE_DOMAIN", ""),
			CookieSameSite:   getEnv("USERBASE_COOKIE_SAMESITE", "lax"),
			OIDCProviderURL:  getEnv("USERBASE_OIDC_PROVIDER_URL", ""),
			OIDCClientID:     getEnv("USERBASE_OIDC_CLIENT_ID", ""),
			OIDCClientSecret: getEnv("USERBASE_OIDC_CLIENT_SECRET", ""),
			OIDCRedirectURL:  getEnv("USERBASE_OIDC_REDIRECT_URL", "http://localhost:3000/api/v1/session/oauth/callback"),
		},
		LogLevel:    getEnv("USERBASE_LOG_LEVEL", "info"),
		Environment: getEnv("USERBASE_ENV", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.Method {
	case "local", "oidc", "both":
	default:
		return apperrors.Config(fmt.Sprintf("invalid auth method %q (must be local, oidc, or both)", c.Auth.Method))
	}

	if c.Auth.Method != "local" && c.Auth.OIDCProviderURL == "" {
		return apperrors.Config("USERBASE_OIDC_PROVIDER_URL is required when OIDC is enabled")
	}

	if c.Auth.SessionSecret == "" {
		return apperrors.Config("USERBASE_SESSION_SECRET must not be empty")
	}

	switch c.LogLevel {
	case "info", "debug":
	default:
		return apperrors.Config(fmt.Sprintf("invalid log level %q (must be info or debug)", c.LogLevel))
	}

	return nil
}

// getEnv returns the value of the environment variable key, or defaultValue if unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of the environment variable key,
// or defaultValue if unset. A non-numeric value is a configuration error.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperrors.Config(fmt.Sprintf("%s is not a number: %q", key, value)).Wrap(err)
	}
	return n, nil
}
