// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-pin-guard/internal/adapter"
	"github.com/MKhiriev/go-pin-guard/internal/logger"
	"github.com/MKhiriev/go-pin-guard/internal/store"
	"github.com/MKhiriev/go-pin-guard/models"
	"golang.org/x/sync/errgroup"
)

const (
	// GracePeriodSessions is the number of first sessions without any offer.
	GracePeriodSessions = 2
	// LowerTierEvery and HigherTierEvery are the session-frequency gates.
	LowerTierEvery  = 3
	HigherTierEvery = 5
	// SubscriptionUsageThreshold is the plan-limit ratio that makes the
	// upgrade offer eligible.
	SubscriptionUsageThreshold = 0.8

	day = 24 * time.Hour
)

// offerCooldown is the minimum time between two displays of the same offer.
var offerCooldown = map[models.OfferType]time.Duration{
	models.OfferPinSecurity:      3 * day,
	models.OfferBiometric:        7 * day,
	models.OfferSubscription:     3 * day,
	models.OfferFinancialProfile: 7 * day,
	models.OfferGoals:            7 * day,
}

type offerService struct {
	credentials store.CredentialStore
	pins        PinService
	biometrics  BiometricService
	account     adapter.AccountAdapter
	now         func() time.Time

	// serialises read-modify-write of the preferences blob
	mu sync.Mutex

	logger *logger.Logger
}

// OfferServiceOption customises the offer service.
type OfferServiceOption func(*offerService)

// WithOfferClock replaces time.Now.
func WithOfferClock(now func() time.Time) OfferServiceOption {
	return func(s *offerService) {
		s.now = now
	}
}

// NewOfferService builds the offer throttle. account may be nil, in which case
// the offers relying on remote account data are never eligible.
func NewOfferService(
	credentials store.CredentialStore,
	pins PinService,
	biometrics BiometricService,
	account adapter.AccountAdapter,
	logger *logger.Logger,
	opts ...OfferServiceOption,
) OfferService {
	s := &offerService{
		credentials: credentials,
		pins:        pins,
		biometrics:  biometrics,
		account:     account,
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// offerFacts holds the collaborator answers of one evaluation. A nil field
// means the collaborator failed and the dependent offer is ineligible.
type offerFacts struct {
	status     *models.SecurityStatus
	capability *models.BiometricCapability
	bioSetup   *bool
	usage      *models.PlanUsage
	profile    *models.ProfileStatus
}

func (s *offerService) ShouldShowOffers(ctx context.Context, userID string) ([]models.Offer, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	var prefs models.OfferPreferences
	err := s.update(ctx, userID, func(p *models.OfferPreferences, _ time.Time) {
		p.SessionCount++
		prefs = *p
	})
	if err != nil {
		return nil, err
	}

	log := s.logger.With().Str("func", "offerService.ShouldShowOffers").
		Str("user_id", userID).Int("session", prefs.SessionCount).Logger()

	if prefs.SessionCount <= GracePeriodSessions || prefs.NeverShowAll {
		log.Debug().Bool("never_show_all", prefs.NeverShowAll).Msg("offers suppressed")
		return nil, nil
	}

	facts := s.collectFacts(ctx, userID)

	tier := models.TierFree
	if facts.usage != nil {
		tier = facts.usage.Tier
	}
	every := HigherTierEvery
	if tier.IsLower() {
		every = LowerTierEvery
	}
	if prefs.SessionCount%every != 0 {
		log.Debug().Str("tier", string(tier)).Msg("session frequency gate closed")
		return nil, nil
	}

	now := s.now()
	var offers []models.Offer
	for _, offer := range models.AllOfferTypes {
		if prefs.IsDisabled(offer) || prefs.Snoozed(offer, now) || prefs.OfferedWithin(offer, offerCooldown[offer], now) {
			continue
		}
		if facts.eligible(offer) {
			offers = append(offers, models.Offer{Type: offer, Priority: offer.Priority()})
		}
	}

	slices.SortStableFunc(offers, func(a, b models.Offer) int {
		return a.Priority - b.Priority
	})

	log.Debug().Int("eligible", len(offers)).Msg("offers evaluated")
	if len(offers) == 0 {
		return nil, nil
	}
	return offers, nil
}

func (f offerFacts) eligible(offer models.OfferType) bool {
	switch offer {
	case models.OfferPinSecurity:
		return f.status != nil && !f.status.PinSetup
	case models.OfferBiometric:
		return f.capability != nil && f.capability.Available && f.bioSetup != nil && !*f.bioSetup
	case models.OfferSubscription:
		return f.usage != nil && f.usage.MaxRatio() >= SubscriptionUsageThreshold
	case models.OfferFinancialProfile:
		return f.profile != nil && !f.profile.HasFinancialProfile
	case models.OfferGoals:
		return f.profile != nil && f.profile.GoalsCount == 0
	default:
		return false
	}
}

// collectFacts queries every collaborator concurrently. Failures are logged
// and leave the corresponding fact unset.
func (s *offerService) collectFacts(ctx context.Context, userID string) offerFacts {
	var (
		facts offerFacts
		g     errgroup.Group
	)

	warn := func(source string, err error) {
		s.logger.Warn().Str("func", "offerService.collectFacts").
			Str("user_id", userID).Str("source", source).Err(err).Msg("offer predicate unavailable")
	}

	g.Go(func() error {
		status, err := s.pins.GetSecurityStatus(ctx, userID)
		if err != nil {
			warn("pin", err)
			return nil
		}
		facts.status = &status
		return nil
	})
	g.Go(func() error {
		capability, err := s.biometrics.GetCapability(ctx)
		if err != nil {
			warn("biometric capability", err)
			return nil
		}
		facts.capability = &capability
		return nil
	})
	g.Go(func() error {
		setup, err := s.biometrics.IsSetup(ctx, userID)
		if err != nil {
			warn("biometric opt-in", err)
			return nil
		}
		facts.bioSetup = &setup
		return nil
	})

	if s.account != nil {
		g.Go(func() error {
			usage, err := s.account.GetPlanUsage(ctx, userID)
			if err != nil {
				warn("plan usage", err)
				return nil
			}
			facts.usage = &usage
			return nil
		})
		g.Go(func() error {
			profile, err := s.account.GetProfileStatus(ctx, userID)
			if err != nil {
				warn("profile status", err)
				return nil
			}
			facts.profile = &profile
			return nil
		})
	}

	_ = g.Wait()
	return facts
}

func (s *offerService) RecordShown(ctx context.Context, userID string, offers ...models.OfferType) error {
	if err := validateOffers(offers...); err != nil {
		return err
	}

	return s.update(ctx, userID, func(p *models.OfferPreferences, now time.Time) {
		for _, offer := range offers {
			markOffered(p, offer, now)
		}
	})
}

func (s *offerService) AcceptOffer(ctx context.Context, userID string, offer models.OfferType) error {
	if err := validateOffers(offer); err != nil {
		return err
	}

	return s.update(ctx, userID, func(p *models.OfferPreferences, now time.Time) {
		markOffered(p, offer, now)
		delete(p.RemindAfterByType, offer)
	})
}

func (s *offerService) DeclineOffer(ctx context.Context, userID string, offer models.OfferType) error {
	if err := validateOffers(offer); err != nil {
		return err
	}

	return s.update(ctx, userID, func(p *models.OfferPreferences, now time.Time) {
		markOffered(p, offer, now)
		delete(p.RemindAfterByType, offer)
	})
}

func (s *offerService) RemindLater(ctx context.Context, userID string, offer models.OfferType, days int) error {
	if err := validateOffers(offer); err != nil {
		return err
	}
	if days < 1 {
		return ErrInvalidRemindDays
	}

	return s.update(ctx, userID, func(p *models.OfferPreferences, now time.Time) {
		markOffered(p, offer, now)
		if p.RemindAfterByType == nil {
			p.RemindAfterByType = make(map[models.OfferType]time.Time)
		}
		p.RemindAfterByType[offer] = now.Add(time.Duration(days) * day)
	})
}

func (s *offerService) NeverShowOffer(ctx context.Context, userID string, offer models.OfferType) error {
	if err := validateOffers(offer); err != nil {
		return err
	}

	return s.update(ctx, userID, func(p *models.OfferPreferences, _ time.Time) {
		if !p.IsDisabled(offer) {
			p.DisabledOffers = append(p.DisabledOffers, offer)
		}
	})
}

func (s *offerService) DisableAll(ctx context.Context, userID string) error {
	return s.update(ctx, userID, func(p *models.OfferPreferences, _ time.Time) {
		p.NeverShowAll = true
	})
}

func (s *offerService) GetPreferences(ctx context.Context, userID string) (models.OfferPreferences, error) {
	if userID == "" {
		return models.OfferPreferences{}, ErrMissingUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, userID)
}

// update applies mutate to the stored preferences of userID and saves them.
func (s *offerService) update(ctx context.Context, userID string, mutate func(p *models.OfferPreferences, now time.Time)) error {
	if userID == "" {
		return ErrMissingUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	mutate(&prefs, s.now())

	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("error encoding offer preferences: %w", err)
	}
	if err = s.credentials.Set(ctx, store.UserKey(store.KeyOfferPreferences, userID), string(raw)); err != nil {
		return fmt.Errorf("error saving offer preferences: %w", err)
	}
	return nil
}

func (s *offerService) load(ctx context.Context, userID string) (models.OfferPreferences, error) {
	var prefs models.OfferPreferences

	raw, err := s.credentials.Get(ctx, store.UserKey(store.KeyOfferPreferences, userID))
	if errors.Is(err, store.ErrKeyNotFound) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("error reading offer preferences: %w", err)
	}

	if err = json.Unmarshal([]byte(raw), &prefs); err != nil {
		s.logger.Warn().Str("func", "offerService.load").Str("user_id", userID).Err(err).Msg("corrupt offer preferences, starting over")
		return models.OfferPreferences{}, nil
	}
	return prefs, nil
}

func markOffered(p *models.OfferPreferences, offer models.OfferType, now time.Time) {
	if p.LastOfferedByType == nil {
		p.LastOfferedByType = make(map[models.OfferType]time.Time)
	}
	p.LastOfferedByType[offer] = now
}

func validateOffers(offers ...models.OfferType) error {
	for _, offer := range offers {
		if !offer.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownOfferType, offer)
		}
	}
	return nil
}
