// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_USER_ID":       "user-42",
		"APP_DEVICE_SECRET": "device-secret",
		"APP_LOG_PATH":      "/tmp/pinguard.log",

		"STORAGE_DB_DSN": "/var/lib/pinguard/secure.db",

		"ADAPTER_ADDRESS":         "localhost:8080",
		"ADAPTER_REQUEST_TIMEOUT": "30s",
		"ADAPTER_TOKEN":           "bearer-token",

		"SECURITY_BIOMETRIC_PROMPT_DELAY": "250ms",

		"BIOMETRIC_HARDWARE": "true",
		"BIOMETRIC_ENROLLED": "true",
		"BIOMETRIC_TYPE":     "Fingerprint",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "user-42", cfg.App.UserID)
	assert.Equal(t, "device-secret", cfg.App.DeviceSecret)
	assert.Equal(t, "/tmp/pinguard.log", cfg.App.LogPath)
	assert.Equal(t, "/var/lib/pinguard/secure.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "bearer-token", cfg.Adapter.Token)
	assert.Equal(t, 250*time.Millisecond, cfg.Security.BiometricPromptDelay)
	assert.True(t, cfg.Biometric.HasHardware)
	assert.True(t, cfg.Biometric.Enrolled)
	assert.Equal(t, "Fingerprint", cfg.Biometric.Type)
}

func TestParseEnv_Defaults(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "pinguard.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Security.BiometricPromptDelay)
	assert.Equal(t, "Face ID", cfg.Biometric.Type)
	assert.False(t, cfg.Biometric.HasHardware)
	assert.Empty(t, cfg.App.UserID)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("SECURITY_BIOMETRIC_PROMPT_DELAY", "soon")

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_InvalidBool(t *testing.T) {
	t.Setenv("BIOMETRIC_HARDWARE", "maybe")

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	err := loadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_USER_ID=from-file\nADAPTER_TOKEN=file-token\n"), 0o600))

	t.Setenv("APP_USER_ID", "from-env")
	// registers cleanup for a variable the file is about to set
	t.Setenv("ADAPTER_TOKEN", "")
	require.NoError(t, os.Unsetenv("ADAPTER_TOKEN"))

	require.NoError(t, loadDotEnv(path))

	assert.Equal(t, "from-env", os.Getenv("APP_USER_ID"))
	assert.Equal(t, "file-token", os.Getenv("ADAPTER_TOKEN"))
}

func TestLoadDotEnv_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOT A VALID LINE 'unterminated\n"), 0o600))

	err := loadDotEnv(path)
	assert.Error(t, err)
}
