package config

import (
	"testing"

	"github.com/avdwerf/userbase/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Address)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "local", cfg.Auth.Method)
	assert.True(t, cfg.Database.RunMigrations)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("USERBASE_SERVER_ADDRESS", "127.0.0.1:9000")
	t.Setenv("USERBASE_DB_PORT", "3307")
	t.Setenv("USERBASE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("USERBASE_DB_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConfig, appErr.Code)
	assert.Contains(t, appErr.Message, "not-a-port")
}

func TestLoadInvalidAuthMethod(t *testing.T) {
	t.Setenv("USERBASE_AUTH_METHOD", "saml")

	_, err := Load()
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConfig, appErr.Code)
	assert.Contains(t, appErr.Message, "saml")
}

func TestLoadOIDCRequiresProvider(t *testing.T) {
	t.Setenv("USERBASE_AUTH_METHOD", "oidc")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.Config(""))
}
