// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-pin-guard/models"
)

// StaticDevice reports a fixed capability and answers challenges from a
// script. When the script is exhausted the fallback outcome is returned.
type StaticDevice struct {
	mu         sync.Mutex
	capability models.BiometricCapability
	script     []models.BiometricOutcome
	fallback   models.BiometricOutcome
	challenges int
}

// NewStaticDevice creates a device whose challenges succeed by default.
func NewStaticDevice(hasHardware, isEnrolled bool, typeName string) *StaticDevice {
	return &StaticDevice{
		capability: models.NewBiometricCapability(hasHardware, isEnrolled, typeName),
		fallback:   models.BiometricOutcome{Kind: models.BiometricSuccess},
	}
}

func (d *StaticDevice) Capability(ctx context.Context) (models.BiometricCapability, error) {
	if err := ctx.Err(); err != nil {
		return models.BiometricCapability{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.capability, nil
}

func (d *StaticDevice) Challenge(ctx context.Context, _ string) (models.BiometricOutcome, error) {
	if ctx.Err() != nil {
		return models.BiometricOutcome{Kind: models.BiometricCancelled, Reason: ctx.Err().Error()}, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.challenges++
	if !d.capability.HasHardware {
		return models.BiometricOutcome{}, ErrNoHardware
	}
	if len(d.script) > 0 {
		next := d.script[0]
		d.script = d.script[1:]
		return next, nil
	}
	return d.fallback, nil
}

// SetCapability replaces the reported capability, e.g. to simulate the user
// removing the enrollment in OS settings.
func (d *StaticDevice) SetCapability(hasHardware, isEnrolled bool, typeName string) {
	d.mu.Lock()
	d.capability = models.NewBiometricCapability(hasHardware, isEnrolled, typeName)
	d.mu.Unlock()
}

// Script queues outcomes returned by the next challenges in order.
func (d *StaticDevice) Script(outcomes ...models.BiometricOutcome) {
	d.mu.Lock()
	d.script = append(d.script, outcomes...)
	d.mu.Unlock()
}

// SetFallback sets the outcome used once the script is empty.
func (d *StaticDevice) SetFallback(outcome models.BiometricOutcome) {
	d.mu.Lock()
	d.fallback = outcome
	d.mu.Unlock()
}

// Challenges returns the number of challenges started so far.
func (d *StaticDevice) Challenges() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.challenges
}
