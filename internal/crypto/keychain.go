// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
)

// SaltSize is the salt length in bytes.
const SaltSize = 16

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	random io.Reader
}

// NewKeyChainService constructs a [KeyChainService] backed by the OS CSPRNG.
func NewKeyChainService() KeyChainService {
	return &keyChainService{random: rand.Reader}
}

// GenerateSalt implements [KeyChainService]. Returns an error if the random
// read fails.
func (k *keyChainService) GenerateSalt() (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(k.random, salt); err != nil {
		return "", fmt.Errorf("read random salt: %w", err)
	}
	return hex.EncodeToString(salt), nil
}

// HashPIN implements [KeyChainService].
func (k *keyChainService) HashPIN(pin, salt string) string {
	h := sha256.New()
	h.Write([]byte(pin))
	h.Write([]byte(salt))
	return hex.EncodeToString(h.Sum(nil))
}

// EqualHashes implements [KeyChainService]. Lengths are compared first, which
// only leaks the digest length; both digests are always 64 hex chars.
func (k *keyChainService) EqualHashes(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
