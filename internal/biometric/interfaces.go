// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"context"

	"github.com/MKhiriev/go-pin-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/biometric_device_mock.go -package=mock

// Device is the operating system biometric layer.
type Device interface {
	// Capability reports the current hardware and enrollment state. It must
	// not be cached by implementations.
	Capability(ctx context.Context) (models.BiometricCapability, error)

	// Challenge runs a single biometric prompt with the given reason and
	// blocks until the user answers it or ctx is done.
	Challenge(ctx context.Context, reason string) (models.BiometricOutcome, error)
}
