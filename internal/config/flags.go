// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"time"
)

// ParseFlags parses configuration flags from args.
//
// Flags:
//
//	-u user id of the signed-in account
//	-d credential store DSN (SQLite path or ":memory:")
//	-device-secret secret sealing the credential store
//	-a remote API address
//	-request-timeout remote API request timeout (e.g., "10s")
//	-token remote API bearer token
//	-prompt-delay biometric auto-prompt settle delay (e.g., "500ms")
//	-bio-type biometric type name
//	-log log file path
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("pinguard", flag.ContinueOnError)

	var userID, dsn, deviceSecret, address, token, bioType, logPath, jsonConfigPath string
	var requestTimeout, promptDelay time.Duration

	fs.StringVar(&userID, "u", "", "Signed-in user id")
	fs.StringVar(&dsn, "d", "", "Credential store DSN")
	fs.StringVar(&deviceSecret, "device-secret", "", "Device secret")
	fs.StringVar(&address, "a", "", "Remote API address")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	fs.StringVar(&token, "token", "", "Remote API bearer token")
	fs.DurationVar(&promptDelay, "prompt-delay", 0, "Biometric prompt delay (e.g., 500ms)")
	fs.StringVar(&bioType, "bio-type", "", "Biometric type name")
	fs.StringVar(&logPath, "log", "", "Log file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			UserID:       userID,
			DeviceSecret: deviceSecret,
			LogPath:      logPath,
		},
		Storage: Storage{
			DB: DB{DSN: dsn},
		},
		Adapter: Adapter{
			HTTPAddress:    address,
			RequestTimeout: requestTimeout,
			Token:          token,
		},
		Security: Security{
			BiometricPromptDelay: promptDelay,
		},
		Biometric: Biometric{
			Type: bioType,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
