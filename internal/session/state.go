// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"time"

	"github.com/MKhiriev/go-pin-guard/models"
)

// State is the position of a session in the unlock flow.
type State int

const (
	StateUninitialized State = iota
	StateCheckingStatus
	StateBiometricPrompt
	StatePinEntry
	StateLockedOut
	StateBiometricEnrollmentOffer
	StateAuthenticated
	StateCancelled
	StateError
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCheckingStatus:
		return "checking_status"
	case StateBiometricPrompt:
		return "biometric_prompt"
	case StatePinEntry:
		return "pin_entry"
	case StateLockedOut:
		return "locked_out"
	case StateBiometricEnrollmentOffer:
		return "biometric_enrollment_offer"
	case StateAuthenticated:
		return "authenticated"
	case StateCancelled:
		return "cancelled"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session is over.
func (s State) Terminal() bool {
	return s == StateAuthenticated || s == StateCancelled || s == StateError
}

// Dialog is a choice the host must present on top of the current state.
type Dialog int

const (
	DialogNone Dialog = iota
	// DialogBiometricFallback offers RetryBiometric or ChoosePin after a
	// challenge that did not succeed.
	DialogBiometricFallback
)

// Reasons reported in [Snapshot.Reason] by the orchestrator itself. Device
// supplied reasons and collaborator errors are passed through as is.
const (
	ReasonIncorrectPin         = "incorrect pin"
	ReasonBiometricUnavailable = "biometric authentication is unavailable"
	ReasonBiometricDismissed   = "biometric prompt dismissed"
	ReasonBiometricLocked      = "biometrics temporarily locked by the system"
	ReasonBiometricFailed      = "biometric authentication failed"
)

// Snapshot is a read-only copy of the session published to observers after
// every transition.
type Snapshot struct {
	SessionID string
	UserID    string
	State     State
	Dialog    Dialog

	// Digits is the number of PIN digits entered so far. The digits
	// themselves never leave the orchestrator.
	Digits            int
	RemainingAttempts int
	LockoutRemaining  time.Duration

	BiometricType       string
	CanUseBiometric     bool
	OfferBiometricSetup bool
	PinSetupRecommended bool
	LastOutcome         models.BiometricOutcomeKind

	// Busy is set while a verification or challenge is in flight.
	Busy bool
	// ErrorCue increases on every rejected PIN so the host can shake or
	// flash without diffing other fields.
	ErrorCue int
	Reason   string
}

// Observer receives snapshots. It is called outside the orchestrator lock
// and may call back into the orchestrator.
type Observer func(Snapshot)
