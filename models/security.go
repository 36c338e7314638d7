// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SecurityRecord is the persisted PIN state of a single user.
//
// PinHash and PinSalt are present if and only if PinSetupComplete is true.
// FailedAttempts stays within [0, MaxAttempts] and is reset to zero whenever a
// verification succeeds or a lockout expires.
type SecurityRecord struct {
	// UserID is the owner of the record. Every store key is namespaced by it.
	UserID string

	// PinHash is hex(SHA-256(pin || salt)). The raw PIN is never stored.
	PinHash string

	// PinSalt is the random per-user salt mixed into the hash.
	PinSalt string

	// PinSetupComplete reports that a PIN was successfully established.
	PinSetupComplete bool

	// FailedAttempts counts consecutive failed verifications.
	FailedAttempts int

	// LockoutUntil is the absolute time until which verification is refused.
	// Nil when no lockout was ever triggered or after it was cleared.
	LockoutUntil *time.Time
}

// LockedAt reports whether the lockout window is still active at now.
func (r SecurityRecord) LockedAt(now time.Time) bool {
	return r.LockoutUntil != nil && now.Before(*r.LockoutUntil)
}

// LockoutExpiredAt reports whether a lockout was set and has already passed.
func (r SecurityRecord) LockoutExpiredAt(now time.Time) bool {
	return r.LockoutUntil != nil && !now.Before(*r.LockoutUntil)
}

// SecurityStatus is a read-only view of [SecurityRecord] exposed to callers.
type SecurityStatus struct {
	PinSetup         bool
	FailedAttempts   int
	IsLockedOut      bool
	LockoutRemaining time.Duration
}

// LockoutRemainingMs returns the remaining lockout in whole milliseconds.
func (s SecurityStatus) LockoutRemainingMs() int64 {
	return s.LockoutRemaining.Milliseconds()
}
