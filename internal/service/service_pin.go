// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-pin-guard/internal/crypto"
	"github.com/MKhiriev/go-pin-guard/internal/logger"
	"github.com/MKhiriev/go-pin-guard/internal/store"
	"github.com/MKhiriev/go-pin-guard/models"
)

const (
	// PinLength is the exact number of digits of a PIN.
	PinLength = 6
	// MaxAttempts is the number of consecutive failures that triggers a lockout.
	MaxAttempts = 5
	// LockoutDuration is how long verification is refused after MaxAttempts.
	LockoutDuration = 30 * time.Minute
)

// commonPins are frequently chosen PINs that are not caught by the pattern
// checks.
var commonPins = map[string]struct{}{
	"000001": {},
	"100000": {},
	"101010": {},
	"111222": {},
	"112233": {},
	"121212": {},
	"123123": {},
	"123321": {},
	"131313": {},
	"159753": {},
	"202020": {},
	"212121": {},
	"520520": {},
	"654321": {},
	"666777": {},
	"696969": {},
	"777888": {},
	"789456": {},
	"987654": {},
}

type pinService struct {
	credentials store.CredentialStore
	keyChain    crypto.KeyChainService
	now         func() time.Time

	logger *logger.Logger
}

// PinServiceOption customises the PIN service.
type PinServiceOption func(*pinService)

// WithPinClock replaces time.Now, e.g. to drive lockout expiry in tests.
func WithPinClock(now func() time.Time) PinServiceOption {
	return func(s *pinService) {
		s.now = now
	}
}

func NewPinService(credentials store.CredentialStore, keyChain crypto.KeyChainService, logger *logger.Logger, opts ...PinServiceOption) PinService {
	s := &pinService{
		credentials: credentials,
		keyChain:    keyChain,
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *pinService) ValidateFormat(pin string) error {
	if !isPinShaped(pin) {
		return ErrInvalidPinFormat
	}
	if isWeakPin(pin) {
		return ErrWeakPin
	}
	return nil
}

func (s *pinService) SetupPin(ctx context.Context, userID, pin string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	if err := s.ValidateFormat(pin); err != nil {
		return err
	}

	salt, err := s.keyChain.GenerateSalt()
	if err != nil {
		return fmt.Errorf("error generating salt: %w", err)
	}

	err = s.credentials.SetMany(ctx, map[string]string{
		store.UserKey(store.KeyPinHash, userID):           s.keyChain.HashPIN(pin, salt),
		store.UserKey(store.KeyPinSalt, userID):           salt,
		store.UserKey(store.KeyPinSetup, userID):          strconv.FormatBool(true),
		store.UserKey(store.KeyPinFailedAttempts, userID): "0",
		store.UserKey(store.KeyPinLockoutUntil, userID):   "",
	})
	if err != nil {
		return fmt.Errorf("error saving pin: %w", err)
	}

	s.logger.Info().Str("func", "pinService.SetupPin").Str("user_id", userID).Msg("pin set up")
	return nil
}

func (s *pinService) VerifyPin(ctx context.Context, userID, candidate string) error {
	if userID == "" {
		return ErrMissingUserID
	}

	record, err := s.loadRecord(ctx, userID)
	if err != nil {
		return err
	}

	now := s.now()
	if record.LockedAt(now) {
		return &LockedOutError{Remaining: record.LockoutUntil.Sub(now)}
	}
	if record.LockoutExpiredAt(now) {
		if err = s.saveAttempts(ctx, userID, 0, nil); err != nil {
			return err
		}
		record.FailedAttempts, record.LockoutUntil = 0, nil
	}

	if !record.PinSetupComplete {
		return ErrPinNotSetup
	}

	if !isPinShaped(candidate) {
		if err = s.registerFailure(ctx, record, now); err != nil && !errors.Is(err, ErrIncorrectPin) {
			return err
		}
		return ErrInvalidPinFormat
	}

	if !s.keyChain.EqualHashes(s.keyChain.HashPIN(candidate, record.PinSalt), record.PinHash) {
		return s.registerFailure(ctx, record, now)
	}

	if record.FailedAttempts > 0 || record.LockoutUntil != nil {
		if err = s.saveAttempts(ctx, userID, 0, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *pinService) ChangePin(ctx context.Context, userID, oldPin, newPin string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	if err := s.ValidateFormat(newPin); err != nil {
		return err
	}
	if err := s.VerifyPin(ctx, userID, oldPin); err != nil {
		return err
	}

	return s.SetupPin(ctx, userID, newPin)
}

func (s *pinService) RemovePin(ctx context.Context, userID, pin string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	if err := s.VerifyPin(ctx, userID, pin); err != nil {
		return err
	}

	if err := s.credentials.Delete(ctx, store.PinKeys(userID)...); err != nil {
		return fmt.Errorf("error removing pin: %w", err)
	}

	s.logger.Info().Str("func", "pinService.RemovePin").Str("user_id", userID).Msg("pin removed")
	return nil
}

func (s *pinService) ResetSecurity(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}

	if err := s.credentials.Delete(ctx, store.PinKeys(userID)...); err != nil {
		return fmt.Errorf("error resetting pin state: %w", err)
	}

	s.logger.Warn().Str("func", "pinService.ResetSecurity").Str("user_id", userID).Msg("pin state reset without verification")
	return nil
}

func (s *pinService) GetSecurityStatus(ctx context.Context, userID string) (models.SecurityStatus, error) {
	if userID == "" {
		return models.SecurityStatus{}, ErrMissingUserID
	}

	record, err := s.loadRecord(ctx, userID)
	if err != nil {
		return models.SecurityStatus{}, err
	}

	now := s.now()
	if record.LockoutExpiredAt(now) {
		if err = s.saveAttempts(ctx, userID, 0, nil); err != nil {
			return models.SecurityStatus{}, err
		}
		record.FailedAttempts, record.LockoutUntil = 0, nil
	}

	status := models.SecurityStatus{
		PinSetup:       record.PinSetupComplete,
		FailedAttempts: record.FailedAttempts,
	}
	if record.LockedAt(now) {
		status.IsLockedOut = true
		status.LockoutRemaining = record.LockoutUntil.Sub(now)
	}

	return status, nil
}

// registerFailure bumps the attempt counter and starts the lockout once the
// ceiling is reached.
func (s *pinService) registerFailure(ctx context.Context, record models.SecurityRecord, now time.Time) error {
	attempts := record.FailedAttempts + 1
	if attempts >= MaxAttempts {
		until := now.Add(LockoutDuration)
		if err := s.saveAttempts(ctx, record.UserID, MaxAttempts, &until); err != nil {
			return err
		}

		s.logger.Warn().Str("func", "pinService.registerFailure").
			Str("user_id", record.UserID).
			Time("lockout_until", until).
			Msg("too many failed pin attempts, locking out")
		return &LockedOutError{Remaining: LockoutDuration}
	}

	if err := s.saveAttempts(ctx, record.UserID, attempts, nil); err != nil {
		return err
	}
	return &IncorrectPinError{Remaining: MaxAttempts - attempts}
}

func (s *pinService) saveAttempts(ctx context.Context, userID string, attempts int, lockoutUntil *time.Time) error {
	var until string
	if lockoutUntil != nil {
		until = lockoutUntil.UTC().Format(time.RFC3339Nano)
	}

	err := s.credentials.SetMany(ctx, map[string]string{
		store.UserKey(store.KeyPinFailedAttempts, userID): strconv.Itoa(attempts),
		store.UserKey(store.KeyPinLockoutUntil, userID):   until,
	})
	if err != nil {
		return fmt.Errorf("error saving pin attempts: %w", err)
	}
	return nil
}

func (s *pinService) loadRecord(ctx context.Context, userID string) (models.SecurityRecord, error) {
	record := models.SecurityRecord{UserID: userID}

	values := make(map[string]string, 5)
	for _, key := range store.PinKeys(userID) {
		value, err := s.credentials.Get(ctx, key)
		if errors.Is(err, store.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return record, fmt.Errorf("error reading pin state: %w", err)
		}
		values[key] = value
	}

	record.PinHash = values[store.UserKey(store.KeyPinHash, userID)]
	record.PinSalt = values[store.UserKey(store.KeyPinSalt, userID)]
	setup, _ := strconv.ParseBool(values[store.UserKey(store.KeyPinSetup, userID)])
	record.PinSetupComplete = setup && record.PinHash != "" && record.PinSalt != ""

	if raw := values[store.UserKey(store.KeyPinFailedAttempts, userID)]; raw != "" {
		attempts, err := strconv.Atoi(raw)
		if err != nil {
			s.logger.Warn().Str("func", "pinService.loadRecord").Str("user_id", userID).Err(err).Msg("corrupt attempt counter, treating as zero")
		}
		record.FailedAttempts = min(max(attempts, 0), MaxAttempts)
	}

	if raw := values[store.UserKey(store.KeyPinLockoutUntil, userID)]; raw != "" {
		until, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			s.logger.Warn().Str("func", "pinService.loadRecord").Str("user_id", userID).Err(err).Msg("corrupt lockout timestamp")
		} else {
			record.LockoutUntil = &until
		}
	}

	// A full counter without a readable lockout end starts a fresh lockout.
	// It is persisted so that it expires like any other one.
	if record.FailedAttempts >= MaxAttempts && record.LockoutUntil == nil {
		until := s.now().Add(LockoutDuration)
		if err := s.saveAttempts(ctx, userID, MaxAttempts, &until); err != nil {
			return record, err
		}
		s.logger.Warn().Str("func", "pinService.loadRecord").Str("user_id", userID).
			Time("lockout_until", until).Msg("attempt ceiling without lockout end, locking out")
		record.LockoutUntil = &until
	}

	return record, nil
}

func isPinShaped(pin string) bool {
	if len(pin) != PinLength {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

// isWeakPin expects a PIN-shaped string.
func isWeakPin(pin string) bool {
	if _, ok := commonPins[pin]; ok {
		return true
	}

	identical, ascending, descending := true, true, true
	for i := 1; i < len(pin); i++ {
		prev, cur := pin[i-1]-'0', pin[i]-'0'
		identical = identical && cur == prev
		ascending = ascending && cur == (prev+1)%10
		descending = descending && cur == (prev+9)%10
	}
	return identical || ascending || descending
}
