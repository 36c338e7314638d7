// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pin-guard/internal/biometric"
	"github.com/MKhiriev/go-pin-guard/internal/logger"
	"github.com/MKhiriev/go-pin-guard/internal/store"
	"github.com/MKhiriev/go-pin-guard/internal/utils"
	"github.com/MKhiriev/go-pin-guard/models"
)

const setupReason = "Confirm to enable biometric unlock"

type biometricService struct {
	device      biometric.Device
	credentials store.CredentialStore
	ids         *utils.UUIDGenerator

	logger *logger.Logger
}

func NewBiometricService(device biometric.Device, credentials store.CredentialStore, logger *logger.Logger) BiometricService {
	return &biometricService{
		device:      device,
		credentials: credentials,
		ids:         utils.NewUUIDGenerator(),
		logger:      logger,
	}
}

func (s *biometricService) GetCapability(ctx context.Context) (models.BiometricCapability, error) {
	capability, err := s.device.Capability(ctx)
	if err != nil {
		return models.BiometricCapability{}, fmt.Errorf("error querying biometric capability: %w", err)
	}

	return models.NewBiometricCapability(capability.HasHardware, capability.IsEnrolled, capability.TypeName), nil
}

func (s *biometricService) IsSetup(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, ErrMissingUserID
	}

	record, err := s.loadRecord(ctx)
	if err != nil {
		return false, err
	}
	return record.IsSetupFor(userID), nil
}

func (s *biometricService) SetupBiometric(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}

	capability, err := s.GetCapability(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBiometricUnavailable, err)
	}
	if !capability.Available {
		return ErrBiometricUnavailable
	}

	outcome := s.Authenticate(ctx, setupReason)
	if !outcome.OK() {
		return fmt.Errorf("%w: challenge %s", ErrBiometricSetupFailed, outcome.Kind)
	}

	err = s.credentials.SetMany(ctx, map[string]string{
		store.KeyBiometricToken:  s.ids.Token(),
		store.KeyBiometricUserID: userID,
	})
	if err != nil {
		return fmt.Errorf("error saving biometric opt-in: %w", err)
	}

	s.logger.Info().Str("func", "biometricService.SetupBiometric").
		Str("user_id", userID).Str("type", capability.TypeName).Msg("biometric unlock enabled")
	return nil
}

func (s *biometricService) Authenticate(ctx context.Context, reason string) models.BiometricOutcome {
	outcome, err := s.device.Challenge(ctx, reason)
	switch {
	case ctx.Err() != nil:
		return models.BiometricOutcome{Kind: models.BiometricCancelled, Reason: ctx.Err().Error()}
	case err != nil:
		s.logger.Warn().Str("func", "biometricService.Authenticate").Err(err).Msg("biometric challenge error")
		return models.BiometricOutcome{Kind: models.BiometricFailed, Reason: err.Error()}
	case outcome.Kind < models.BiometricSuccess || outcome.Kind > models.BiometricLocked:
		return models.BiometricOutcome{Kind: models.BiometricFailed, Reason: "unknown challenge outcome"}
	}

	s.logger.Debug().Str("func", "biometricService.Authenticate").Str("outcome", outcome.Kind.String()).Msg("biometric challenge finished")
	return outcome
}

func (s *biometricService) Disable(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}

	record, err := s.loadRecord(ctx)
	if err != nil {
		return err
	}
	if !record.IsSetupFor(userID) {
		return nil
	}

	if err = s.credentials.Delete(ctx, store.KeyBiometricToken, store.KeyBiometricUserID); err != nil {
		return fmt.Errorf("error removing biometric opt-in: %w", err)
	}

	s.logger.Info().Str("func", "biometricService.Disable").Str("user_id", userID).Msg("biometric unlock disabled")
	return nil
}

func (s *biometricService) loadRecord(ctx context.Context) (models.BiometricRecord, error) {
	var record models.BiometricRecord

	token, err := s.credentials.Get(ctx, store.KeyBiometricToken)
	if errors.Is(err, store.ErrKeyNotFound) {
		return record, nil
	}
	if err != nil {
		return record, fmt.Errorf("error reading biometric opt-in: %w", err)
	}

	userID, err := s.credentials.Get(ctx, store.KeyBiometricUserID)
	if errors.Is(err, store.ErrKeyNotFound) {
		return record, nil
	}
	if err != nil {
		return record, fmt.Errorf("error reading biometric opt-in: %w", err)
	}

	record.Token, record.UserID = token, userID
	return record, nil
}
