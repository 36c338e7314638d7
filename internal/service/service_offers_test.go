// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/MKhiriev/go-pin-guard/internal/logger"
	"github.com/MKhiriev/go-pin-guard/internal/mock"
	"github.com/MKhiriev/go-pin-guard/internal/store"
	"github.com/MKhiriev/go-pin-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type offerWorld struct {
	pinSetup     bool
	bioAvailable bool
	bioSetup     bool
	usage        models.PlanUsage
	profile      models.ProfileStatus

	pinErr     error
	accountErr error
}

// everythingMissing makes every offer eligible on a free plan.
func everythingMissing() offerWorld {
	return offerWorld{
		bioAvailable: true,
		usage: models.PlanUsage{
			Tier:   models.TierFree,
			Limits: []models.LimitUsage{{Name: "accounts", Used: 4, Limit: 5}},
		},
	}
}

type offerFixture struct {
	svc         OfferService
	credentials store.CredentialStore
	pins        *mock.MockPinService
	biometrics  *mock.MockBiometricService
	account     *mock.MockAccountAdapter
	clock       *fakeClock
}

func newTestOfferSvc(t *testing.T) *offerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &offerFixture{
		credentials: store.NewMemoryCredentialStore(),
		pins:        mock.NewMockPinService(ctrl),
		biometrics:  mock.NewMockBiometricService(ctrl),
		account:     mock.NewMockAccountAdapter(ctrl),
		clock:       newFakeClock(),
	}
	f.svc = NewOfferService(f.credentials, f.pins, f.biometrics, f.account, logger.Nop(), WithOfferClock(f.clock.Now))
	return f
}

func (f *offerFixture) world(w offerWorld) {
	f.pins.EXPECT().GetSecurityStatus(gomock.Any(), "u1").Return(models.SecurityStatus{PinSetup: w.pinSetup}, w.pinErr).AnyTimes()
	f.biometrics.EXPECT().GetCapability(gomock.Any()).Return(models.NewBiometricCapability(w.bioAvailable, w.bioAvailable, ""), nil).AnyTimes()
	f.biometrics.EXPECT().IsSetup(gomock.Any(), "u1").Return(w.bioSetup, nil).AnyTimes()
	f.account.EXPECT().GetPlanUsage(gomock.Any(), "u1").Return(w.usage, w.accountErr).AnyTimes()
	f.account.EXPECT().GetProfileStatus(gomock.Any(), "u1").Return(w.profile, w.accountErr).AnyTimes()
}

// seedSessions pretends n sessions already happened.
func (f *offerFixture) seedSessions(t *testing.T, n int) {
	t.Helper()
	raw, err := json.Marshal(models.OfferPreferences{SessionCount: n})
	require.NoError(t, err)
	require.NoError(t, f.credentials.Set(context.Background(), store.UserKey(store.KeyOfferPreferences, "u1"), string(raw)))
}

func offerTypes(offers []models.Offer) []models.OfferType {
	types := make([]models.OfferType, 0, len(offers))
	for _, o := range offers {
		types = append(types, o.Type)
	}
	return types
}

// ── ShouldShowOffers ─────────────────────────────────────────────────────────

func TestOfferService_GracePeriod(t *testing.T) {
	f := newTestOfferSvc(t)
	ctx := context.Background()

	// no collaborator expectations: the grace period must not query anything
	for range GracePeriodSessions {
		offers, err := f.svc.ShouldShowOffers(ctx, "u1")
		require.NoError(t, err)
		assert.Nil(t, offers)
	}

	prefs, err := f.svc.GetPreferences(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, GracePeriodSessions, prefs.SessionCount)
}

func TestOfferService_AllEligibleSortedByPriority(t *testing.T) {
	f := newTestOfferSvc(t)
	f.world(everythingMissing())
	f.seedSessions(t, 2)

	offers, err := f.svc.ShouldShowOffers(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, []models.Offer{
		{Type: models.OfferPinSecurity, Priority: 1},
		{Type: models.OfferBiometric, Priority: 2},
		{Type: models.OfferSubscription, Priority: 3},
		{Type: models.OfferFinancialProfile, Priority: 4},
		{Type: models.OfferGoals, Priority: 5},
	}, offers)
}

func TestOfferService_NothingEligible(t *testing.T) {
	f := newTestOfferSvc(t)
	f.world(offerWorld{
		pinSetup:     true,
		bioAvailable: true,
		bioSetup:     true,
		usage:        models.PlanUsage{Tier: models.TierFree, Limits: []models.LimitUsage{{Used: 1, Limit: 5}}},
		profile:      models.ProfileStatus{HasFinancialProfile: true, GoalsCount: 2},
	})
	f.seedSessions(t, 2)

	offers, err := f.svc.ShouldShowOffers(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, offers)
}

func TestOfferService_FrequencyGate(t *testing.T) {
	tests := []struct {
		name  string
		tier  models.SubscriptionTier
		shown []int
	}{
		{name: "free every third", tier: models.TierFree, shown: []int{3, 6, 9, 12}},
		{name: "unknown tier counts as free", tier: "legacy", shown: []int{3, 6, 9, 12}},
		{name: "plus every fifth", tier: models.TierPlus, shown: []int{5, 10}},
		{name: "premium every fifth", tier: models.TierPremium, shown: []int{5, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestOfferSvc(t)
			w := everythingMissing()
			w.usage.Tier = tt.tier
			f.world(w)

			var shown []int
			for session := 1; session <= 12; session++ {
				offers, err := f.svc.ShouldShowOffers(context.Background(), "u1")
				require.NoError(t, err)
				if offers != nil {
					shown = append(shown, session)
				}
				// keep cooldowns out of the picture
				f.clock.Advance(8 * day)
			}
			assert.Equal(t, tt.shown, shown)
		})
	}
}

func TestOfferService_SubscriptionThreshold(t *testing.T) {
	tests := []struct {
		name   string
		used   int
		limit  int
		expect bool
	}{
		{name: "below", used: 79, limit: 100},
		{name: "at threshold", used: 80, limit: 100, expect: true},
		{name: "over", used: 120, limit: 100, expect: true},
		{name: "unlimited", used: 1000, limit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestOfferSvc(t)
			w := everythingMissing()
			w.usage.Limits = []models.LimitUsage{{Name: "transactions", Used: tt.used, Limit: tt.limit}}
			f.world(w)
			f.seedSessions(t, 2)

			offers, err := f.svc.ShouldShowOffers(context.Background(), "u1")
			require.NoError(t, err)
			assert.Equal(t, tt.expect, slices.Contains(offerTypes(offers), models.OfferSubscription))
		})
	}
}

func TestOfferService_Cooldowns(t *testing.T) {
	f := newTestOfferSvc(t)
	f.world(everythingMissing())
	f.seedSessions(t, 2)
	ctx := context.Background()

	offers, err := f.svc.ShouldShowOffers(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, f.svc.RecordShown(ctx, "u1", offerTypes(offers)...))

	// sessions 4 and 5 are gated; session 6 three days later
	f.clock.Advance(3 * day)
	for range 3 {
		offers, err = f.svc.ShouldShowOffers(ctx, "u1")
		require.NoError(t, err)
	}
	assert.Equal(t, []models.OfferType{models.OfferPinSecurity, models.OfferSubscription}, offerTypes(offers))

	// session 9 seven days after the first display
	f.clock.Advance(4 * day)
	for range 3 {
		offers, err = f.svc.ShouldShowOffers(ctx, "u1")
		require.NoError(t, err)
	}
	assert.Equal(t, models.AllOfferTypes, offerTypes(offers))
}

func TestOfferService_NeverShowAll(t *testing.T) {
	f := newTestOfferSvc(t)
	f.seedSessions(t, 2)
	ctx := context.Background()

	require.NoError(t, f.svc.DisableAll(ctx, "u1"))
	require.NoError(t, f.svc.DisableAll(ctx, "u1"))

	offers, err := f.svc.ShouldShowOffers(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, offers)
}

func TestOfferService_NeverShowOffer(t *testing.T) {
	f := newTestOfferSvc(t)
	f.world(everythingMissing())
	f.seedSessions(t, 2)
	ctx := context.Background()

	require.NoError(t, f.svc.NeverShowOffer(ctx, "u1", models.OfferGoals))
	require.NoError(t, f.svc.NeverShowOffer(ctx, "u1", models.OfferGoals))

	prefs, err := f.svc.GetPreferences(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []models.OfferType{models.OfferGoals}, prefs.DisabledOffers)

	offers, err := f.svc.ShouldShowOffers(ctx, "u1")
	require.NoError(t, err)
	assert.NotContains(t, offerTypes(offers), models.OfferGoals)
	assert.Len(t, offers, 4)
}

func TestOfferService_RemindLater(t *testing.T) {
	f := newTestOfferSvc(t)
	f.world(everythingMissing())
	f.seedSessions(t, 5)
	ctx := context.Background()

	require.NoError(t, f.svc.RemindLater(ctx, "u1", models.OfferPinSecurity, 10))

	f.clock.Advance(9 * day)
	offers, err := f.svc.ShouldShowOffers(ctx, "u1") // session 6
	require.NoError(t, err)
	assert.NotContains(t, offerTypes(offers), models.OfferPinSecurity)

	f.clock.Advance(day)
	for range 3 {
		offers, err = f.svc.ShouldShowOffers(ctx, "u1") // session 9
		require.NoError(t, err)
	}
	assert.Contains(t, offerTypes(offers), models.OfferPinSecurity)
}

func TestOfferService_AcceptAndDeclineClearSnooze(t *testing.T) {
	f := newTestOfferSvc(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RemindLater(ctx, "u1", models.OfferBiometric, 3))
	require.NoError(t, f.svc.RemindLater(ctx, "u1", models.OfferGoals, 3))
	require.NoError(t, f.svc.AcceptOffer(ctx, "u1", models.OfferBiometric))
	require.NoError(t, f.svc.DeclineOffer(ctx, "u1", models.OfferGoals))

	prefs, err := f.svc.GetPreferences(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, prefs.RemindAfterByType)
	assert.True(t, f.clock.Now().Equal(prefs.LastOfferedByType[models.OfferBiometric]))
	assert.True(t, f.clock.Now().Equal(prefs.LastOfferedByType[models.OfferGoals]))
}

func TestOfferService_RecordingIsIdempotent(t *testing.T) {
	f := newTestOfferSvc(t)
	ctx := context.Background()

	apply := func() {
		require.NoError(t, f.svc.RecordShown(ctx, "u1", models.OfferPinSecurity))
		require.NoError(t, f.svc.DeclineOffer(ctx, "u1", models.OfferSubscription))
		require.NoError(t, f.svc.NeverShowOffer(ctx, "u1", models.OfferGoals))
	}

	apply()
	once, err := f.svc.GetPreferences(ctx, "u1")
	require.NoError(t, err)
	apply()
	twice, err := f.svc.GetPreferences(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestOfferService_CollaboratorFailureMakesOfferIneligible(t *testing.T) {
	f := newTestOfferSvc(t)
	w := everythingMissing()
	w.pinErr = errors.New("keystore locked")
	w.accountErr = errors.New("offline")
	w.usage.Tier = models.TierPremium
	f.world(w)
	f.seedSessions(t, 2)

	offers, err := f.svc.ShouldShowOffers(context.Background(), "u1")
	require.NoError(t, err)

	// the plan is unknown, so the free-tier gate applies at session 3
	assert.Equal(t, []models.OfferType{models.OfferBiometric}, offerTypes(offers))
}

func TestOfferService_WithoutAccountAdapter(t *testing.T) {
	ctrl := gomock.NewController(t)
	pins := mock.NewMockPinService(ctrl)
	biometrics := mock.NewMockBiometricService(ctrl)
	credentials := store.NewMemoryCredentialStore()
	svc := NewOfferService(credentials, pins, biometrics, nil, logger.Nop())
	ctx := context.Background()

	pins.EXPECT().GetSecurityStatus(gomock.Any(), "u1").Return(models.SecurityStatus{}, nil)
	biometrics.EXPECT().GetCapability(gomock.Any()).Return(models.NewBiometricCapability(false, false, ""), nil)
	biometrics.EXPECT().IsSetup(gomock.Any(), "u1").Return(false, nil)

	for range 2 {
		_, err := svc.ShouldShowOffers(ctx, "u1")
		require.NoError(t, err)
	}
	offers, err := svc.ShouldShowOffers(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []models.OfferType{models.OfferPinSecurity}, offerTypes(offers))
}

func TestOfferService_CorruptPreferencesStartOver(t *testing.T) {
	f := newTestOfferSvc(t)
	ctx := context.Background()
	require.NoError(t, f.credentials.Set(ctx, store.UserKey(store.KeyOfferPreferences, "u1"), "{not json"))

	offers, err := f.svc.ShouldShowOffers(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, offers)

	prefs, err := f.svc.GetPreferences(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, prefs.SessionCount)
}

func TestOfferService_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	credentials := mock.NewMockCredentialStore(ctrl)
	svc := NewOfferService(credentials, mock.NewMockPinService(ctrl), mock.NewMockBiometricService(ctrl), nil, logger.Nop())

	credentials.EXPECT().Get(gomock.Any(), "offer_preferences:u1").Return("", nil)
	credentials.EXPECT().Set(gomock.Any(), "offer_preferences:u1", gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.ShouldShowOffers(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error saving offer preferences")
}

// ── validation ───────────────────────────────────────────────────────────────

func TestOfferService_Validation(t *testing.T) {
	f := newTestOfferSvc(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.AcceptOffer(ctx, "u1", "lottery"), ErrUnknownOfferType)
	assert.ErrorIs(t, f.svc.RecordShown(ctx, "u1", models.OfferGoals, "lottery"), ErrUnknownOfferType)
	assert.ErrorIs(t, f.svc.RemindLater(ctx, "u1", models.OfferGoals, 0), ErrInvalidRemindDays)

	_, err := f.svc.ShouldShowOffers(ctx, "")
	assert.ErrorIs(t, err, ErrMissingUserID)
	assert.ErrorIs(t, f.svc.DisableAll(ctx, ""), ErrMissingUserID)
	assert.ErrorIs(t, f.svc.NeverShowOffer(ctx, "", models.OfferGoals), ErrMissingUserID)
	_, err = f.svc.GetPreferences(ctx, "")
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestOfferService_PreferencesPersistAcrossInstances(t *testing.T) {
	f := newTestOfferSvc(t)
	ctx := context.Background()
	require.NoError(t, f.svc.RemindLater(ctx, "u1", models.OfferSubscription, 2))

	again := NewOfferService(f.credentials, f.pins, f.biometrics, f.account, logger.Nop())
	prefs, err := again.GetPreferences(ctx, "u1")
	require.NoError(t, err)

	assert.True(t, prefs.RemindAfterByType[models.OfferSubscription].Equal(f.clock.Now().Add(2*day)))
	assert.WithinDuration(t, f.clock.Now(), prefs.LastOfferedByType[models.OfferSubscription], time.Second)
}
