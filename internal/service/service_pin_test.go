// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-pin-guard/internal/crypto"
	"github.com/MKhiriev/go-pin-guard/internal/logger"
	"github.com/MKhiriev/go-pin-guard/internal/mock"
	"github.com/MKhiriev/go-pin-guard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeClock is a manually advanced clock shared by the service tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestPinSvc(t *testing.T) (PinService, store.CredentialStore, *fakeClock) {
	t.Helper()
	credentials := store.NewMemoryCredentialStore()
	clock := newFakeClock()
	svc := NewPinService(credentials, crypto.NewKeyChainService(), logger.Nop(), WithPinClock(clock.Now))
	return svc, credentials, clock
}

// ── ValidateFormat ───────────────────────────────────────────────────────────

func TestPinService_ValidateFormat(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)

	tests := []struct {
		pin  string
		want error
	}{
		{pin: "284915"},
		{pin: "907153"},
		{pin: "111111", want: ErrWeakPin},
		{pin: "000000", want: ErrWeakPin},
		{pin: "123456", want: ErrWeakPin},
		{pin: "654321", want: ErrWeakPin},
		{pin: "789012", want: ErrWeakPin},
		{pin: "321098", want: ErrWeakPin},
		{pin: "000001", want: ErrWeakPin},
		{pin: "123123", want: ErrWeakPin},
		{pin: "121212", want: ErrWeakPin},
		{pin: "112233", want: ErrWeakPin},
		{pin: "696969", want: ErrWeakPin},
		{pin: "520520", want: ErrWeakPin},
		{pin: "159753", want: ErrWeakPin},
		{pin: "12", want: ErrInvalidPinFormat},
		{pin: "", want: ErrInvalidPinFormat},
		{pin: "1234567", want: ErrInvalidPinFormat},
		{pin: "12a456", want: ErrInvalidPinFormat},
		{pin: "２８４９１５", want: ErrInvalidPinFormat},
		{pin: " 84915", want: ErrInvalidPinFormat},
	}

	for _, tt := range tests {
		t.Run(tt.pin, func(t *testing.T) {
			err := svc.ValidateFormat(tt.pin)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ── GetSecurityStatus ────────────────────────────────────────────────────────

func TestPinService_GetSecurityStatus_FreshUser(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)

	status, err := svc.GetSecurityStatus(context.Background(), "u1")
	require.NoError(t, err)

	assert.False(t, status.PinSetup)
	assert.Zero(t, status.FailedAttempts)
	assert.False(t, status.IsLockedOut)
	assert.Zero(t, status.LockoutRemainingMs())
}

func TestPinService_GetSecurityStatus_Idempotent(t *testing.T) {
	svc, _, clock := newTestPinSvc(t)
	ctx := context.Background()

	require.NoError(t, svc.SetupPin(ctx, "u1", "284915"))
	require.Error(t, svc.VerifyPin(ctx, "u1", "000000"))

	first, err := svc.GetSecurityStatus(ctx, "u1")
	require.NoError(t, err)
	second, err := svc.GetSecurityStatus(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	for range 4 {
		_ = svc.VerifyPin(ctx, "u1", "000000")
	}
	locked, err := svc.GetSecurityStatus(ctx, "u1")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	later, err := svc.GetSecurityStatus(ctx, "u1")
	require.NoError(t, err)

	assert.True(t, later.IsLockedOut)
	assert.Equal(t, locked.FailedAttempts, later.FailedAttempts)
	assert.Equal(t, locked.LockoutRemaining-time.Minute, later.LockoutRemaining)
}

func TestPinService_GetSecurityStatus_ClearsExpiredLockout(t *testing.T) {
	svc, credentials, clock := newTestPinSvc(t)
	ctx := context.Background()

	require.NoError(t, svc.SetupPin(ctx, "u1", "284915"))
	for range MaxAttempts {
		_ = svc.VerifyPin(ctx, "u1", "000000")
	}
	clock.Advance(LockoutDuration)

	status, err := svc.GetSecurityStatus(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, status.IsLockedOut)
	assert.Zero(t, status.FailedAttempts)

	until, err := credentials.Get(ctx, store.UserKey(store.KeyPinLockoutUntil, "u1"))
	require.NoError(t, err)
	assert.Empty(t, until)
}

// ── SetupPin / VerifyPin ─────────────────────────────────────────────────────

func TestPinService_SetupThenVerify(t *testing.T) {
	svc, credentials, _ := newTestPinSvc(t)
	ctx := context.Background()

	for _, pin := range []string{"284915", "907153", "480213", "835792"} {
		require.NoError(t, svc.SetupPin(ctx, "u1", pin))
		assert.NoError(t, svc.VerifyPin(ctx, "u1", pin))
	}

	hash, err := credentials.Get(ctx, store.UserKey(store.KeyPinHash, "u1"))
	require.NoError(t, err)
	assert.Len(t, hash, 64)
	assert.NotContains(t, hash, "835792")

	salt, err := credentials.Get(ctx, store.UserKey(store.KeyPinSalt, "u1"))
	require.NoError(t, err)
	assert.Len(t, salt, 2*crypto.SaltSize)
}

func TestPinService_SetupPin_FreshSaltEachTime(t *testing.T) {
	svc, credentials, _ := newTestPinSvc(t)
	ctx := context.Background()

	require.NoError(t, svc.SetupPin(ctx, "u1", "284915"))
	first, _ := credentials.Get(ctx, store.UserKey(store.KeyPinSalt, "u1"))
	require.NoError(t, svc.SetupPin(ctx, "u1", "284915"))
	second, _ := credentials.Get(ctx, store.UserKey(store.KeyPinSalt, "u1"))

	assert.NotEqual(t, first, second)
}

func TestPinService_SetupPin_RejectsWeakPin(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetupPin(ctx, "u1", "111111"), ErrWeakPin)

	status, err := svc.GetSecurityStatus(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, status.PinSetup)
}

func TestPinService_SetupPin_ResetsAttempts(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)
	ctx := context.Background()

	require.NoError(t, svc.SetupPin(ctx, "u1", "284915"))
	_ = svc.VerifyPin(ctx, "u1", "000000")
	_ = svc.VerifyPin(ctx, "u1", "000000")

	require.NoError(t, svc.SetupPin(ctx, "u1", "907153"))

	status, err := svc.GetSecurityStatus(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, status.FailedAttempts)
}

func TestPinService_VerifyPin_NotSetup(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)

	err := svc.VerifyPin(context.Background(), "u1", "284915")
	assert.ErrorIs(t, err, ErrPinNotSetup)
}

func TestPinService_VerifyPin_IncorrectCountsDown(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)
	ctx := context.Background()
	require.NoError(t, svc.SetupPin(ctx, "u1", "284915"))

	for want := MaxAttempts - 1; want > 0; want-- {
		err := svc.VerifyPin(ctx, "u1", "000000")

		var incorrect *IncorrectPinError
		require.ErrorAs(t, err, &incorrect)
		assert.Equal(t, want, incorrect.Remaining)
		assert.ErrorIs(t, err, ErrIncorrectPin)
	}
}

func TestPinService_VerifyPin_SuccessResetsCounter(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)
	ctx := context.Background()
	require.NoError(t, svc.SetupPin(ctx, "u1", "284915"))

	_ = svc.VerifyPin(ctx, "u1", "000000")
	_ = svc.VerifyPin(ctx, "u1", "000000")
	require.NoError(t, svc.VerifyPin(ctx, "u1", "284915"))

	status, err := svc.GetSecurityStatus(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, status.FailedAttempts)
}

// Five wrong PINs lock the user out for 30 minutes; the lockout then refuses
// even the correct PIN without touching the counter.
func TestPinService_VerifyPin_LockoutScenario(t *testing.T) {
	svc, _, clock := newTestPinSvc(t)
	ctx := context.Background()
	require.NoError(t, svc.SetupPin(ctx, "u2", "284915"))

	var err error
	for range MaxAttempts {
		err = svc.VerifyPin(ctx, "u2", "000000")
	}

	var locked *LockedOutError
	require.ErrorAs(t, err, &locked)
	assert.InDelta(t, 1_800_000, locked.RemainingMs(), 1_000)

	clock.Advance(time.Second)
	err = svc.VerifyPin(ctx, "u2", "284915")
	require.ErrorAs(t, err, &locked)
	assert.ErrorIs(t, err, ErrLockedOut)
	assert.Equal(t, int64(1_799_000), locked.RemainingMs())

	status, err := svc.GetSecurityStatus(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, MaxAttempts, status.FailedAttempts)
	assert.True(t, status.IsLockedOut)
}

func TestPinService_VerifyPin_LockoutExpiry(t *testing.T) {
	svc, _, clock := newTestPinSvc(t)
	ctx := context.Background()
	require.NoError(t, svc.SetupPin(ctx, "u2", "284915"))
	for range MaxAttempts {
		_ = svc.VerifyPin(ctx, "u2", "000000")
	}

	clock.Advance(LockoutDuration + time.Millisecond)

	require.NoError(t, svc.VerifyPin(ctx, "u2", "284915"))
	status, err := svc.GetSecurityStatus(ctx, "u2")
	require.NoError(t, err)
	assert.Zero(t, status.FailedAttempts)
	assert.False(t, status.IsLockedOut)
}

func TestPinService_VerifyPin_ExpiredLockoutStartsCleanCount(t *testing.T) {
	svc, _, clock := newTestPinSvc(t)
	ctx := context.Background()
	require.NoError(t, svc.SetupPin(ctx, "u2", "284915"))
	for range MaxAttempts {
		_ = svc.VerifyPin(ctx, "u2", "000000")
	}
	clock.Advance(LockoutDuration)

	err := svc.VerifyPin(ctx, "u2", "000000")

	var incorrect *IncorrectPinError
	require.ErrorAs(t, err, &incorrect)
	assert.Equal(t, MaxAttempts-1, incorrect.Remaining)
}

func TestPinService_VerifyPin_MalformedCountsAsAttempt(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)
	ctx := context.Background()
	require.NoError(t, svc.SetupPin(ctx, "u3", "284915"))

	for range 3 {
		assert.ErrorIs(t, svc.VerifyPin(ctx, "u3", "12"), ErrInvalidPinFormat)
	}

	status, err := svc.GetSecurityStatus(ctx, "u3")
	require.NoError(t, err)
	assert.Equal(t, 3, status.FailedAttempts)
}

func TestPinService_VerifyPin_MalformedCanLockOut(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)
	ctx := context.Background()
	require.NoError(t, svc.SetupPin(ctx, "u3", "284915"))

	for range MaxAttempts - 1 {
		_ = svc.VerifyPin(ctx, "u3", "abc")
	}

	assert.ErrorIs(t, svc.VerifyPin(ctx, "u3", "abc"), ErrLockedOut)
}

// ── ChangePin / RemovePin / ResetSecurity ────────────────────────────────────

func TestPinService_ChangePin_RoundTrip(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)
	ctx := context.Background()
	require.NoError(t, svc.SetupPin(ctx, "u1", "284915"))

	require.NoError(t, svc.ChangePin(ctx, "u1", "284915", "907153"))

	assert.NoError(t, svc.VerifyPin(ctx, "u1", "907153"))
	assert.ErrorIs(t, svc.VerifyPin(ctx, "u1", "284915"), ErrIncorrectPin)
}

func TestPinService_ChangePin_WrongOldPin(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)
	ctx := context.Background()
	require.NoError(t, svc.SetupPin(ctx, "u1", "284915"))

	err := svc.ChangePin(ctx, "u1", "000000", "907153")
	assert.ErrorIs(t, err, ErrIncorrectPin)
	assert.NoError(t, svc.VerifyPin(ctx, "u1", "284915"))
}

func TestPinService_ChangePin_WeakNewPinConsumesNoAttempt(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)
	ctx := context.Background()
	require.NoError(t, svc.SetupPin(ctx, "u1", "284915"))

	err := svc.ChangePin(ctx, "u1", "000000", "123456")
	assert.ErrorIs(t, err, ErrWeakPin)

	status, err := svc.GetSecurityStatus(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, status.FailedAttempts)
}

func TestPinService_RemovePin(t *testing.T) {
	svc, credentials, _ := newTestPinSvc(t)
	ctx := context.Background()
	require.NoError(t, svc.SetupPin(ctx, "u1", "284915"))

	assert.ErrorIs(t, svc.RemovePin(ctx, "u1", "000000"), ErrIncorrectPin)
	require.NoError(t, svc.RemovePin(ctx, "u1", "284915"))

	for _, key := range store.PinKeys("u1") {
		_, err := credentials.Get(ctx, key)
		assert.ErrorIs(t, err, store.ErrKeyNotFound, key)
	}
	status, err := svc.GetSecurityStatus(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, status.PinSetup)
}

func TestPinService_ResetSecurity_ClearsLockout(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)
	ctx := context.Background()
	require.NoError(t, svc.SetupPin(ctx, "u1", "284915"))
	for range MaxAttempts {
		_ = svc.VerifyPin(ctx, "u1", "000000")
	}

	require.NoError(t, svc.ResetSecurity(ctx, "u1"))

	status, err := svc.GetSecurityStatus(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, status.PinSetup)
	assert.False(t, status.IsLockedOut)
	assert.Zero(t, status.FailedAttempts)
}

func TestPinService_UsersAreIsolated(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)
	ctx := context.Background()
	require.NoError(t, svc.SetupPin(ctx, "alice", "284915"))
	for range MaxAttempts {
		_ = svc.VerifyPin(ctx, "alice", "000000")
	}

	status, err := svc.GetSecurityStatus(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, status.IsLockedOut)
	assert.False(t, status.PinSetup)
}

// ── missing user id ──────────────────────────────────────────────────────────

func TestPinService_MissingUserID(t *testing.T) {
	svc, _, _ := newTestPinSvc(t)
	ctx := context.Background()

	_, statusErr := svc.GetSecurityStatus(ctx, "")
	errs := []error{
		svc.SetupPin(ctx, "", "284915"),
		svc.VerifyPin(ctx, "", "284915"),
		svc.ChangePin(ctx, "", "284915", "907153"),
		svc.RemovePin(ctx, "", "284915"),
		svc.ResetSecurity(ctx, ""),
		statusErr,
	}
	for i, err := range errs {
		assert.ErrorIs(t, err, ErrMissingUserID, "call %d", i)
	}
}

func TestPinService_VerifyPin_UnreadableLockoutStaysLocked(t *testing.T) {
	for name, raw := range map[string]string{"corrupt": "not-a-time", "missing": ""} {
		t.Run(name, func(t *testing.T) {
			svc, credentials, clock := newTestPinSvc(t)
			ctx := context.Background()
			require.NoError(t, svc.SetupPin(ctx, "u1", "284915"))
			for range MaxAttempts {
				_ = svc.VerifyPin(ctx, "u1", "000000")
			}
			// конец блокировки испорчен, счётчик остался на потолке
			require.NoError(t, credentials.Set(ctx, store.UserKey(store.KeyPinLockoutUntil, "u1"), raw))

			err := svc.VerifyPin(ctx, "u1", "284915")
			var locked *LockedOutError
			require.ErrorAs(t, err, &locked)
			assert.Equal(t, LockoutDuration, locked.Remaining)

			status, err := svc.GetSecurityStatus(ctx, "u1")
			require.NoError(t, err)
			assert.True(t, status.IsLockedOut)
			assert.Equal(t, MaxAttempts, status.FailedAttempts)

			clock.Advance(LockoutDuration)
			assert.NoError(t, svc.VerifyPin(ctx, "u1", "284915"))
		})
	}
}

// ── collaborator failures ────────────────────────────────────────────────────

func TestPinService_VerifyPin_StoreReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	credentials := mock.NewMockCredentialStore(ctrl)
	keyChain := mock.NewMockKeyChainService(ctrl)
	svc := NewPinService(credentials, keyChain, logger.Nop())

	credentials.EXPECT().Get(gomock.Any(), store.UserKey(store.KeyPinHash, "u1")).Return("", errors.New("disk gone"))

	err := svc.VerifyPin(context.Background(), "u1", "284915")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading pin state")
	assert.NotErrorIs(t, err, ErrPinNotSetup)
}

func TestPinService_SetupPin_SaltError(t *testing.T) {
	ctrl := gomock.NewController(t)
	credentials := mock.NewMockCredentialStore(ctrl)
	keyChain := mock.NewMockKeyChainService(ctrl)
	svc := NewPinService(credentials, keyChain, logger.Nop())

	keyChain.EXPECT().GenerateSalt().Return("", errors.New("entropy exhausted"))

	err := svc.SetupPin(context.Background(), "u1", "284915")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error generating salt")
}

func TestPinService_SetupPin_WritesEverythingInOneCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	credentials := mock.NewMockCredentialStore(ctrl)
	keyChain := mock.NewMockKeyChainService(ctrl)
	svc := NewPinService(credentials, keyChain, logger.Nop())

	gomock.InOrder(
		keyChain.EXPECT().GenerateSalt().Return("5a17", nil),
		keyChain.EXPECT().HashPIN("284915", "5a17").Return("d1ge57"),
		credentials.EXPECT().SetMany(gomock.Any(), map[string]string{
			"pin_hash:u1":            "d1ge57",
			"pin_salt:u1":            "5a17",
			"pin_setup:u1":           "true",
			"pin_failed_attempts:u1": "0",
			"pin_lockout_until:u1":   "",
		}).Return(nil),
	)

	require.NoError(t, svc.SetupPin(context.Background(), "u1", "284915"))
}

func TestPinService_VerifyPin_CounterWriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	credentials := mock.NewMockCredentialStore(ctrl)
	keyChain := mock.NewMockKeyChainService(ctrl)
	svc := NewPinService(credentials, keyChain, logger.Nop())

	values := map[string]string{
		"pin_hash:u1":  "stored",
		"pin_salt:u1":  "salt",
		"pin_setup:u1": "true",
	}
	credentials.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, key string) (string, error) {
		if v, ok := values[key]; ok {
			return v, nil
		}
		return "", store.ErrKeyNotFound
	}).Times(len(store.PinKeys("u1")))
	keyChain.EXPECT().HashPIN("000000", "salt").Return("other")
	keyChain.EXPECT().EqualHashes("other", "stored").Return(false)
	credentials.EXPECT().SetMany(gomock.Any(), gomock.Any()).Return(errors.New("read-only"))

	err := svc.VerifyPin(context.Background(), "u1", "000000")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIncorrectPin)
	assert.Contains(t, err.Error(), "error saving pin attempts")
}
