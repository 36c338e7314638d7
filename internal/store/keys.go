// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// Base keys of the values kept in the credential store.
const (
	KeyPinHash           = "pin_hash"
	KeyPinSalt           = "pin_salt"
	KeyPinSetup          = "pin_setup"
	KeyPinFailedAttempts = "pin_failed_attempts"
	KeyPinLockoutUntil   = "pin_lockout_until"

	// Device level, not namespaced.
	KeyBiometricToken  = "biometric_token"
	KeyBiometricUserID = "biometric_user_id"

	KeyOfferPreferences = "offer_preferences"
)

// UserKey namespaces base by userID: "base:userID".
func UserKey(base, userID string) string {
	return base + ":" + userID
}

// PinKeys returns every per-user PIN key of userID.
func PinKeys(userID string) []string {
	return []string{
		UserKey(KeyPinHash, userID),
		UserKey(KeyPinSalt, userID),
		UserKey(KeyPinSetup, userID),
		UserKey(KeyPinFailedAttempts, userID),
		UserKey(KeyPinLockoutUntil, userID),
	}
}
