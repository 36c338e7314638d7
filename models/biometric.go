// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Biometric type names reported by devices.
const (
	BiometricTypeFaceID      = "Face ID"
	BiometricTypeFingerprint = "Fingerprint"
	BiometricTypeIris        = "Iris"
	BiometricTypeGeneric     = "Biometrics"
)

// BiometricCapability describes what the device can do right now.
// It is never cached: hardware and OS enrollment may change between sessions.
type BiometricCapability struct {
	HasHardware bool
	IsEnrolled  bool
	// Available is HasHardware && IsEnrolled.
	Available bool
	TypeName  string
}

// NewBiometricCapability builds a capability with Available derived from the
// hardware and enrollment flags.
func NewBiometricCapability(hasHardware, isEnrolled bool, typeName string) BiometricCapability {
	if typeName == "" {
		typeName = BiometricTypeGeneric
	}
	return BiometricCapability{
		HasHardware: hasHardware,
		IsEnrolled:  isEnrolled,
		Available:   hasHardware && isEnrolled,
		TypeName:    typeName,
	}
}

// BiometricOutcomeKind is the result class of a biometric challenge.
type BiometricOutcomeKind int

const (
	// BiometricSuccess means the user was recognised.
	BiometricSuccess BiometricOutcomeKind = iota + 1
	// BiometricCancelled means the user dismissed the prompt. Not an error.
	BiometricCancelled
	// BiometricFailed means recognition failed or the challenge errored.
	BiometricFailed
	// BiometricLocked means the OS temporarily disabled biometric attempts.
	// It is unrelated to the application's own PIN lockout.
	BiometricLocked
)

// String returns a stable lowercase name used in logs.
func (k BiometricOutcomeKind) String() string {
	switch k {
	case BiometricSuccess:
		return "success"
	case BiometricCancelled:
		return "cancelled"
	case BiometricFailed:
		return "failed"
	case BiometricLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// BiometricOutcome is what a challenge returned.
type BiometricOutcome struct {
	Kind   BiometricOutcomeKind
	Reason string
}

// OK reports a successful challenge.
func (o BiometricOutcome) OK() bool {
	return o.Kind == BiometricSuccess
}

// BiometricRecord is the device-level application opt-in. It is bound to the
// user who completed the setup.
type BiometricRecord struct {
	Token  string
	UserID string
}

// IsSetupFor reports whether the opt-in exists and belongs to userID.
func (r BiometricRecord) IsSetupFor(userID string) bool {
	return r.Token != "" && r.UserID != "" && r.UserID == userID
}
