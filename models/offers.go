// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"time"
)

// OfferType identifies a non-critical setup prompt.
type OfferType string

const (
	OfferPinSecurity      OfferType = "pin_security"
	OfferBiometric        OfferType = "biometric"
	OfferSubscription     OfferType = "subscription"
	OfferFinancialProfile OfferType = "financial_profile"
	OfferGoals            OfferType = "goals"
)

// AllOfferTypes lists every offer in priority order.
var AllOfferTypes = []OfferType{
	OfferPinSecurity,
	OfferBiometric,
	OfferSubscription,
	OfferFinancialProfile,
	OfferGoals,
}

// Priority returns the display priority of the offer, 1 being the highest.
func (t OfferType) Priority() int {
	switch t {
	case OfferPinSecurity:
		return 1
	case OfferBiometric:
		return 2
	case OfferSubscription:
		return 3
	case OfferFinancialProfile:
		return 4
	case OfferGoals:
		return 5
	default:
		return 99
	}
}

// Valid reports whether t is a known offer type.
func (t OfferType) Valid() bool {
	return slices.Contains(AllOfferTypes, t)
}

// Offer is an eligible prompt tagged with its priority.
type Offer struct {
	Type     OfferType `json:"type"`
	Priority int       `json:"priority"`
}

// OfferPreferences is persisted per user as a JSON blob.
type OfferPreferences struct {
	DisabledOffers    []OfferType             `json:"disabled_offers,omitempty"`
	NeverShowAll      bool                    `json:"never_show_all"`
	LastOfferedByType map[OfferType]time.Time `json:"last_offered_by_type,omitempty"`
	RemindAfterByType map[OfferType]time.Time `json:"remind_after_by_type,omitempty"`
	SessionCount      int                     `json:"session_count"`
}

// IsDisabled reports whether the user opted out of t individually.
func (p OfferPreferences) IsDisabled(t OfferType) bool {
	return slices.Contains(p.DisabledOffers, t)
}

// OfferedWithin reports whether t was shown less than window ago.
func (p OfferPreferences) OfferedWithin(t OfferType, window time.Duration, now time.Time) bool {
	last, ok := p.LastOfferedByType[t]
	if !ok {
		return false
	}
	return now.Sub(last) < window
}

// Snoozed reports whether a remind-later window for t is still open.
func (p OfferPreferences) Snoozed(t OfferType, now time.Time) bool {
	until, ok := p.RemindAfterByType[t]
	return ok && now.Before(until)
}

// SubscriptionTier is the user's plan level.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPlus    SubscriptionTier = "plus"
	TierPremium SubscriptionTier = "premium"
)

// IsLower reports whether the tier is the entry level plan. Unknown tiers
// count as entry level.
func (t SubscriptionTier) IsLower() bool {
	return t != TierPlus && t != TierPremium
}

// LimitUsage is the consumption of a single plan limit.
type LimitUsage struct {
	Name  string `json:"name"`
	Used  int    `json:"used"`
	Limit int    `json:"limit"`
}

// Ratio returns Used/Limit, or 0 for unlimited entries.
func (u LimitUsage) Ratio() float64 {
	if u.Limit <= 0 {
		return 0
	}
	return float64(u.Used) / float64(u.Limit)
}

// PlanUsage is returned by the remote API.
type PlanUsage struct {
	Tier   SubscriptionTier `json:"tier"`
	Limits []LimitUsage     `json:"limits"`
}

// MaxRatio returns the highest usage ratio over all limits.
func (p PlanUsage) MaxRatio() float64 {
	var max float64
	for _, l := range p.Limits {
		if r := l.Ratio(); r > max {
			max = r
		}
	}
	return max
}

// ProfileStatus is returned by the remote API.
type ProfileStatus struct {
	HasFinancialProfile bool `json:"has_financial_profile"`
	GoalsCount          int  `json:"goals_count"`
}
