// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// ErrEmptyDeviceSecret is returned when no device secret is configured.
var ErrEmptyDeviceSecret = errors.New("device secret is empty")

// deviceKeySalt domain-separates the sealing key from any other use of the
// device secret.
var deviceKeySalt = []byte("pinguard/secure-values/v1")

type aesSealer struct {
	gcm cipher.AEAD
}

// NewSealer derives a 256-bit key from deviceSecret with Argon2id and returns
// an AES-256-GCM [Sealer]. Argon2id parameters follow the OWASP baseline
// (1 pass, 64 MiB, 4 lanes).
func NewSealer(deviceSecret string) (Sealer, error) {
	if deviceSecret == "" {
		return nil, ErrEmptyDeviceSecret
	}

	key := argon2.IDKey([]byte(deviceSecret), deviceKeySalt, 1, 64*1024, 4, 32)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &aesSealer{gcm: gcm}, nil
}

// Seal implements [Sealer].
func (s *aesSealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := s.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [Sealer].
func (s *aesSealer) Open(sealed string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	nonceSize := s.gcm.NonceSize()
	if len(blob) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := s.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt value: %w", err)
	}
	return string(plaintext), nil
}

// plainSealer stores values as-is. Used for in-memory stores that never
// touch the disk.
type plainSealer struct{}

// NewPlainSealer returns a [Sealer] that does not transform values.
func NewPlainSealer() Sealer {
	return plainSealer{}
}

func (plainSealer) Seal(plaintext string) (string, error) { return plaintext, nil }

func (plainSealer) Open(sealed string) (string, error) { return sealed, nil }
