// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pin-guard/internal/crypto"
	"github.com/MKhiriev/go-pin-guard/internal/logger"
)

const secureValuesTable = "secure_values"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type sqliteCredentialStore struct {
	*DB
	sealer crypto.Sealer
	now    func() time.Time
	logger *logger.Logger
}

// NewSQLiteCredentialStore returns a [CredentialStore] persisting sealed
// values in the secure_values table of db.
func NewSQLiteCredentialStore(db *DB, sealer crypto.Sealer, logger *logger.Logger) CredentialStore {
	return &sqliteCredentialStore{
		DB:     db,
		sealer: sealer,
		now:    time.Now,
		logger: logger,
	}
}

func (s *sqliteCredentialStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	query, args, err := psql.Select("value").
		From(secureValuesTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var sealed string
	if err = s.DB.QueryRowContext(ctx, query, args...).Scan(&sealed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		s.logger.Err(err).
			Str("func", "sqliteCredentialStore.Get").
			Str("key", key).
			Msg("failed to query secure value")
		return "", fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	value, err := s.sealer.Open(sealed)
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteCredentialStore.Get").
			Str("key", key).
			Msg("failed to open sealed value")
		return "", fmt.Errorf("%w: %v", ErrOpeningSealedValue, err)
	}

	return value, nil
}

func (s *sqliteCredentialStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *sqliteCredentialStore) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "" {
			return ErrEmptyKey
		}
		keys = append(keys, k)
	}
	// stable statement order inside the transaction
	slices.Sort(keys)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	now := s.now().UTC()
	for _, k := range keys {
		sealed, err := s.sealer.Seal(values[k])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSealingValue, err)
		}

		query, args, err := psql.Insert(secureValuesTable).
			Columns("key", "value", "updated_at").
			Values(k, sealed, now).
			Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			s.logger.Err(err).
				Str("func", "sqliteCredentialStore.SetMany").
				Str("key", k).
				Msg("failed to upsert secure value")
			return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *sqliteCredentialStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := psql.Delete(secureValuesTable).
		Where(sq.Eq{"key": keys}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "sqliteCredentialStore.Delete").
			Strs("keys", keys).
			Msg("failed to delete secure values")
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitingTransaction, err)
	}

	return nil
}
