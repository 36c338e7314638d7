// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// memoryDSN selects the volatile credential store.
const memoryDSN = ":memory:"

var validate = validator.New(validator.WithRequiredStructEnabled())

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Only source-independent rules live here; presence checks belong to
// [ClientConfig.validate] so that partial configs can still be merged.
func (cfg *StructuredConfig) validate() error {
	if cfg.Security.BiometricPromptDelay < 0 {
		return ErrInvalidSecurityConfigs
	}
	if cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if err := validate.Struct(cfg); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) || len(vErrs) == 0 {
			return fmt.Errorf("error validating client config: %w", err)
		}

		field := vErrs[0]
		return fmt.Errorf("%w: %s failed on %q", groupError(field.StructNamespace()), field.StructNamespace(), field.Tag())
	}

	if cfg.Storage.DB.DSN != memoryDSN && cfg.App.DeviceSecret == "" {
		return fmt.Errorf("%w: device secret is required for a file-backed store", ErrInvalidAppConfigs)
	}

	return nil
}

// groupError maps a validator namespace like "ClientConfig.Adapter.HTTPAddress"
// onto the sentinel of its configuration group.
func groupError(namespace string) error {
	parts := strings.Split(namespace, ".")
	if len(parts) < 2 {
		return ErrInvalidAppConfigs
	}

	switch parts[1] {
	case "Adapter":
		return ErrInvalidAdapterConfigs
	case "Storage":
		return ErrInvalidStorageConfigs
	case "Security":
		return ErrInvalidSecurityConfigs
	default:
		return ErrInvalidAppConfigs
	}
}
