// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container of the client.
// It aggregates all sub-configurations and is populated by merging values
// from a .env file, environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//   - envDefault: value used when the variable is unset.
type StructuredConfig struct {
	// App holds the identity of the device user and the device secret.
	App App `envPrefix:"APP_"`

	// Storage holds the credential store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote API client settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Security holds authentication flow tuning.
	Security Security `envPrefix:"SECURITY_"`

	// Biometric describes the biometric hardware exposed to the core.
	Biometric Biometric `envPrefix:"BIOMETRIC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// UserID is the account currently signed in on this device. The host
	// receives it from the remote sign-in flow.
	// Env: APP_USER_ID
	UserID string `env:"USER_ID"`

	// DeviceSecret seeds the key that seals values in the credential store.
	// Must be kept confidential.
	// Env: APP_DEVICE_SECRET
	DeviceSecret string `env:"DEVICE_SECRET"`

	// LogPath is the log file location. Empty means next to the executable.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`
}

// Storage groups the configuration of the credential store.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite settings of the credential store.
type DB struct {
	// DSN is the SQLite file path, or ":memory:" for a volatile store.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN" envDefault:"pinguard.db"`
}

// Adapter holds the settings of the remote API client.
type Adapter struct {
	// HTTPAddress is the base address of the remote API
	// (e.g. "https://api.example.com" or "localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	// Token is the bearer token issued by the remote sign-in.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Security holds authentication flow tuning.
type Security struct {
	// BiometricPromptDelay is the settle delay before the automatic biometric
	// challenge, leaving room for the entrance animation of the host.
	// Env: SECURITY_BIOMETRIC_PROMPT_DELAY
	BiometricPromptDelay time.Duration `env:"BIOMETRIC_PROMPT_DELAY" envDefault:"500ms"`
}

// Biometric describes the biometric hardware of the device.
type Biometric struct {
	// Env: BIOMETRIC_HARDWARE
	HasHardware bool `env:"HARDWARE"`
	// Env: BIOMETRIC_ENROLLED
	Enrolled bool `env:"ENROLLED"`
	// Env: BIOMETRIC_TYPE
	Type string `env:"TYPE" envDefault:"Face ID"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. .env file in the working directory (only fills unset variables)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(".env").
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
