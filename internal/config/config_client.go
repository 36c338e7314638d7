// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	UserID       string `validate:"required"`
	DeviceSecret string
	LogPath      string
}

// ClientAdapter holds network settings used by the remote API client.
type ClientAdapter struct {
	// HTTPAddress is optional: without it, offers relying on remote data are
	// never eligible.
	HTTPAddress    string        `validate:"omitempty,hostname_port|url"`
	RequestTimeout time.Duration `validate:"gte=0"`
	Token          string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	DSN string `validate:"required"`
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientSecurity holds authentication flow settings.
type ClientSecurity struct {
	BiometricPromptDelay time.Duration `validate:"gte=0,lte=10s"`
}

// ClientBiometric describes the biometric hardware.
type ClientBiometric struct {
	HasHardware bool
	Enrolled    bool
	Type        string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App       ClientApp
	Adapter   ClientAdapter
	Storage   ClientStorage
	Security  ClientSecurity
	Biometric ClientBiometric
}

// GetClientConfig builds and validates a client config view from the merged
// structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			UserID:       cfg.App.UserID,
			DeviceSecret: cfg.App.DeviceSecret,
			LogPath:      cfg.App.LogPath,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Token:          cfg.Adapter.Token,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Security: ClientSecurity{
			BiometricPromptDelay: cfg.Security.BiometricPromptDelay,
		},
		Biometric: ClientBiometric{
			HasHardware: cfg.Biometric.HasHardware,
			Enrolled:    cfg.Biometric.Enrolled,
			Type:        cfg.Biometric.Type,
		},
	}
}
