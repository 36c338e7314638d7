// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-pin-guard/models"
)

// InteractiveDevice hands every challenge to the host, which answers it with
// Respond. It stands in for the OS prompt in the terminal client.
type InteractiveDevice struct {
	mu         sync.Mutex
	capability models.BiometricCapability
	pending    chan models.BiometricOutcome
	reason     string
}

func NewInteractiveDevice(hasHardware, isEnrolled bool, typeName string) *InteractiveDevice {
	return &InteractiveDevice{
		capability: models.NewBiometricCapability(hasHardware, isEnrolled, typeName),
	}
}

func (d *InteractiveDevice) Capability(ctx context.Context) (models.BiometricCapability, error) {
	if err := ctx.Err(); err != nil {
		return models.BiometricCapability{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.capability, nil
}

// Challenge blocks until Respond is called or ctx is done. A done context is
// reported as a cancelled prompt, the same as the user dismissing it.
func (d *InteractiveDevice) Challenge(ctx context.Context, reason string) (models.BiometricOutcome, error) {
	d.mu.Lock()
	if !d.capability.HasHardware {
		d.mu.Unlock()
		return models.BiometricOutcome{}, ErrNoHardware
	}
	if d.pending != nil {
		d.mu.Unlock()
		return models.BiometricOutcome{}, ErrChallengeInProgress
	}
	answer := make(chan models.BiometricOutcome, 1)
	d.pending = answer
	d.reason = reason
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.pending = nil
		d.reason = ""
		d.mu.Unlock()
	}()

	select {
	case outcome := <-answer:
		return outcome, nil
	case <-ctx.Done():
		return models.BiometricOutcome{Kind: models.BiometricCancelled, Reason: ctx.Err().Error()}, nil
	}
}

// Respond answers the pending challenge. It reports false when no challenge
// is waiting.
func (d *InteractiveDevice) Respond(outcome models.BiometricOutcome) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		return false
	}
	select {
	case d.pending <- outcome:
		return true
	default:
		return false
	}
}

// Pending returns the reason of the waiting challenge, if any.
func (d *InteractiveDevice) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reason, d.pending != nil
}

// SetCapability replaces the reported capability.
func (d *InteractiveDevice) SetCapability(hasHardware, isEnrolled bool, typeName string) {
	d.mu.Lock()
	d.capability = models.NewBiometricCapability(hasHardware, isEnrolled, typeName)
	d.mu.Unlock()
}
