// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the client-side primitives of the device security
// core: PIN salting and hashing, and sealing of values kept in the local
// credential store.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService produces and checks PIN digests.
//
// Scheme:
//
//	salt = GenerateSalt()                 16 random bytes, hex encoded
//	hash = HashPIN(pin, salt)             hex(SHA-256(pin || salt))
//	ok   = EqualHashes(hash, stored)      constant time
type KeyChainService interface {
	// GenerateSalt returns a fresh random salt (128 bits) as a hex string.
	GenerateSalt() (string, error)

	// HashPIN returns hex(SHA-256(pin || salt)).
	HashPIN(pin, salt string) string

	// EqualHashes compares two digests without early exit.
	EqualHashes(a, b string) bool
}

// Sealer protects values at rest in the credential store.
type Sealer interface {
	// Seal encrypts plaintext and returns a base64 blob (nonce || ciphertext).
	Seal(plaintext string) (string, error)

	// Open reverses Seal. It fails when the blob was produced with another key
	// or was tampered with.
	Open(sealed string) (string, error)
}
