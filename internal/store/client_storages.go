// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pin-guard/internal/config"
	"github.com/MKhiriev/go-pin-guard/internal/crypto"
	"github.com/MKhiriev/go-pin-guard/internal/logger"
)

// MemoryDSN selects the in-memory credential store.
const MemoryDSN = ":memory:"

// ClientStorages groups the device-side stores handed to the service layer.
type ClientStorages struct {
	// Credentials is the secure key-value store holding PIN material,
	// biometric opt-in and offer preferences.
	Credentials CredentialStore

	db *DB
}

// NewClientStorages initialises the client storage layer:
//  1. for the ":memory:" DSN it returns an in-memory store;
//  2. otherwise it opens the SQLite file at cfg.DB.DSN, runs the embedded
//     migrations and wraps the connection in a sealing credential store.
func NewClientStorages(cfg config.ClientStorage, sealer crypto.Sealer, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	if cfg.DB.DSN == MemoryDSN {
		logger.Warn().Msg("using in-memory credential store, nothing will survive restart")
		return &ClientStorages{Credentials: NewMemoryCredentialStore()}, nil
	}

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Credentials: NewSQLiteCredentialStore(db, sealer, logger),
		db:          db,
	}, nil
}

// Close releases the database connection, if any.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
