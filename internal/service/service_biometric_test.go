package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-pin-guard/internal/biometric"
	"github.com/MKhiriev/go-pin-guard/internal/logger"
	"github.com/MKhiriev/go-pin-guard/internal/mock"
	"github.com/MKhiriev/go-pin-guard/internal/store"
	"github.com/MKhiriev/go-pin-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestBiometricSvc(t *testing.T, device biometric.Device) (BiometricService, store.CredentialStore) {
	t.Helper()
	credentials := store.NewMemoryCredentialStore()
	return NewBiometricService(device, credentials, logger.Nop()), credentials
}

func TestBiometricService_GetCapability_Fresh(t *testing.T) {
	device := biometric.NewStaticDevice(true, true, models.BiometricTypeFaceID)
	svc, _ := newTestBiometricSvc(t, device)
	ctx := context.Background()

	capability, err := svc.GetCapability(ctx)
	require.NoError(t, err)
	assert.True(t, capability.Available)
	assert.Equal(t, models.BiometricTypeFaceID, capability.TypeName)

	device.SetCapability(false, true, models.BiometricTypeFaceID)

	capability, err = svc.GetCapability(ctx)
	require.NoError(t, err)
	assert.False(t, capability.Available)
}

func TestBiometricService_GetCapability_RederivesAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := mock.NewMockDevice(ctrl)
	svc, _ := newTestBiometricSvc(t, device)

	device.EXPECT().Capability(gomock.Any()).Return(models.BiometricCapability{HasHardware: true, Available: true}, nil)

	capability, err := svc.GetCapability(context.Background())
	require.NoError(t, err)
	assert.False(t, capability.Available, "not enrolled means not available")
	assert.Equal(t, models.BiometricTypeGeneric, capability.TypeName)
}

func TestBiometricService_GetCapability_DeviceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := mock.NewMockDevice(ctrl)
	svc, _ := newTestBiometricSvc(t, device)

	device.EXPECT().Capability(gomock.Any()).Return(models.BiometricCapability{}, errors.New("hal crashed"))

	_, err := svc.GetCapability(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hal crashed")
}

func TestBiometricService_SetupBiometric_Success(t *testing.T) {
	device := biometric.NewStaticDevice(true, true, models.BiometricTypeFingerprint)
	svc, credentials := newTestBiometricSvc(t, device)
	ctx := context.Background()

	require.NoError(t, svc.SetupBiometric(ctx, "u1"))

	setup, err := svc.IsSetup(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, setup)

	other, err := svc.IsSetup(ctx, "u2")
	require.NoError(t, err)
	assert.False(t, other, "opt-in is bound to the user who completed it")

	token, err := credentials.Get(ctx, store.KeyBiometricToken)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, device.Challenges())
}

func TestBiometricService_SetupBiometric_Unavailable(t *testing.T) {
	device := biometric.NewStaticDevice(true, false, "")
	svc, _ := newTestBiometricSvc(t, device)

	err := svc.SetupBiometric(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrBiometricUnavailable)
	assert.Zero(t, device.Challenges())
}

func TestBiometricService_SetupBiometric_ChallengeNotPassed(t *testing.T) {
	for _, kind := range []models.BiometricOutcomeKind{models.BiometricCancelled, models.BiometricFailed, models.BiometricLocked} {
		t.Run(kind.String(), func(t *testing.T) {
			device := biometric.NewStaticDevice(true, true, "")
			device.Script(models.BiometricOutcome{Kind: kind})
			svc, credentials := newTestBiometricSvc(t, device)
			ctx := context.Background()

			err := svc.SetupBiometric(ctx, "u1")
			assert.ErrorIs(t, err, ErrBiometricSetupFailed)
			assert.Contains(t, err.Error(), kind.String())

			_, err = credentials.Get(ctx, store.KeyBiometricToken)
			assert.ErrorIs(t, err, store.ErrKeyNotFound)
		})
	}
}

func TestBiometricService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := mock.NewMockDevice(ctrl)
	svc, _ := newTestBiometricSvc(t, device)
	ctx := context.Background()

	device.EXPECT().Challenge(ctx, "unlock").Return(models.BiometricOutcome{Kind: models.BiometricSuccess}, nil)
	assert.True(t, svc.Authenticate(ctx, "unlock").OK())

	device.EXPECT().Challenge(ctx, "unlock").Return(models.BiometricOutcome{}, errors.New("sensor dirty"))
	outcome := svc.Authenticate(ctx, "unlock")
	assert.Equal(t, models.BiometricFailed, outcome.Kind)
	assert.Equal(t, "sensor dirty", outcome.Reason)

	device.EXPECT().Challenge(ctx, "unlock").Return(models.BiometricOutcome{}, nil)
	assert.Equal(t, models.BiometricFailed, svc.Authenticate(ctx, "unlock").Kind)

	device.EXPECT().Challenge(ctx, "unlock").Return(models.BiometricOutcome{Kind: models.BiometricLocked, Reason: "os lockout"}, nil)
	assert.Equal(t, models.BiometricOutcome{Kind: models.BiometricLocked, Reason: "os lockout"}, svc.Authenticate(ctx, "unlock"))
}

func TestBiometricService_Authenticate_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := mock.NewMockDevice(ctrl)
	svc, _ := newTestBiometricSvc(t, device)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	device.EXPECT().Challenge(ctx, gomock.Any()).Return(models.BiometricOutcome{}, context.Canceled)

	assert.Equal(t, models.BiometricCancelled, svc.Authenticate(ctx, "unlock").Kind)
}

func TestBiometricService_Disable(t *testing.T) {
	device := biometric.NewStaticDevice(true, true, "")
	svc, _ := newTestBiometricSvc(t, device)
	ctx := context.Background()
	require.NoError(t, svc.SetupBiometric(ctx, "u1"))

	require.NoError(t, svc.Disable(ctx, "u2"))
	setup, err := svc.IsSetup(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, setup, "another user cannot disable the opt-in")

	require.NoError(t, svc.Disable(ctx, "u1"))
	setup, err = svc.IsSetup(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, setup)

	assert.NoError(t, svc.Disable(ctx, "u1"), "idempotent")
}

func TestBiometricService_IsSetup_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	credentials := mock.NewMockCredentialStore(ctrl)
	svc := NewBiometricService(biometric.NewStaticDevice(true, true, ""), credentials, logger.Nop())

	credentials.EXPECT().Get(gomock.Any(), store.KeyBiometricToken).Return("", errors.New("locked db"))

	_, err := svc.IsSetup(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading biometric opt-in")
}

func TestBiometricService_MissingUserID(t *testing.T) {
	svc, _ := newTestBiometricSvc(t, biometric.NewStaticDevice(true, true, ""))
	ctx := context.Background()

	_, err := svc.IsSetup(ctx, "")
	assert.ErrorIs(t, err, ErrMissingUserID)
	assert.ErrorIs(t, svc.SetupBiometric(ctx, ""), ErrMissingUserID)
	assert.ErrorIs(t, svc.Disable(ctx, ""), ErrMissingUserID)
}
