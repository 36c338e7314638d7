// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "context"

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// CredentialStore is the durable secure key-value store of the device.
//
// Keys are plain strings; per-user data is namespaced with [UserKey]. Every
// single call is atomic: readers never observe a partially applied SetMany or
// Delete.
type CredentialStore interface {
	// Get returns the value stored under key, or [ErrKeyNotFound].
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// SetMany stores all values in one transaction.
	SetMany(ctx context.Context, values map[string]string) error

	// Delete removes keys in one transaction. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
