// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session drives one foreground unlock attempt: it reads the PIN and
// biometric state, picks the first screen, and turns user input and challenge
// outcomes into state transitions published as [Snapshot] values.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-pin-guard/internal/logger"
	"github.com/MKhiriev/go-pin-guard/internal/service"
	"github.com/MKhiriev/go-pin-guard/internal/utils"
	"github.com/MKhiriev/go-pin-guard/models"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPromptDelay lets the lock screen settle before the automatic
	// biometric challenge.
	DefaultPromptDelay = 500 * time.Millisecond

	// PromptReason is shown by the OS biometric sheet.
	PromptReason = "Unlock to continue"
)

// Orchestrator is the unlock state machine of a single session. All methods
// are safe for concurrent use; collaborator calls run outside the lock and
// overlapping input is refused with [ErrBusy].
type Orchestrator struct {
	userID     string
	sessionID  string
	pins       service.PinService
	biometrics service.BiometricService

	promptDelay time.Duration
	now         func() time.Time
	observers   []Observer
	logger      *logger.Logger

	mu              sync.Mutex
	state           State
	dialog          Dialog
	digits          []byte
	busy            bool
	errorCue        int
	reason          string
	remaining       int
	lockoutUntil    time.Time
	capability      models.BiometricCapability
	bioSetup        bool
	offerBioSetup   bool
	pinRecommended  bool
	lastOutcome     models.BiometricOutcomeKind
	pinOnly         bool
	pinSetup        bool
	cancelChallenge context.CancelFunc
}

// Option customises an [Orchestrator].
type Option func(*Orchestrator)

// WithPromptDelay sets the pause before the automatic biometric challenge.
func WithPromptDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.promptDelay = d
		}
	}
}

// WithClock replaces time.Now for lockout countdowns.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithObserver registers fn to receive a snapshot after every transition.
func WithObserver(fn Observer) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}

// New creates the orchestrator of one session for userID.
func New(userID string, pins service.PinService, biometrics service.BiometricService, opts ...Option) (*Orchestrator, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	o := &Orchestrator{
		userID:      userID,
		sessionID:   utils.NewUUIDGenerator().SessionID(),
		pins:        pins,
		biometrics:  biometrics,
		promptDelay: DefaultPromptDelay,
		now:         time.Now,
		logger:      logger.Nop(),
		state:       StateUninitialized,
		remaining:   service.MaxAttempts,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.WithSession(o.sessionID, userID)

	return o, nil
}

// SessionID returns the identifier used to correlate the session logs.
func (o *Orchestrator) SessionID() string {
	return o.sessionID
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	s := Snapshot{
		SessionID:           o.sessionID,
		UserID:              o.userID,
		State:               o.state,
		Dialog:              o.dialog,
		Digits:              len(o.digits),
		RemainingAttempts:   o.remaining,
		BiometricType:       o.capability.TypeName,
		CanUseBiometric:     o.biometricUsableLocked(),
		OfferBiometricSetup: o.offerBioSetup,
		PinSetupRecommended: o.pinRecommended,
		LastOutcome:         o.lastOutcome,
		Busy:                o.busy,
		ErrorCue:            o.errorCue,
		Reason:              o.reason,
	}
	if o.state == StateLockedOut {
		s.LockoutRemaining = max(o.lockoutUntil.Sub(o.now()), 0)
	}
	return s
}

// biometricUsableLocked reports whether the user may switch to a challenge.
// A PIN lockout disables the biometric path as well.
func (o *Orchestrator) biometricUsableLocked() bool {
	return o.capability.Available && o.bioSetup && !o.pinOnly && o.state != StateLockedOut
}

func (o *Orchestrator) publish(s Snapshot) {
	for _, fn := range o.observers {
		fn(s)
	}
}

// setStateLocked moves to next and logs the transition.
func (o *Orchestrator) setStateLocked(next State) {
	if o.state == next {
		return
	}
	o.logger.Info().Str("func", "Orchestrator.setState").
		Str("from", o.state.String()).Str("to", next.String()).Msg("session transition")
	o.state = next
}

// Start reads the security status and biometric state concurrently and moves
// to the first screen. When that screen is the biometric prompt, the
// challenge is triggered after the prompt delay and Start returns once it has
// an outcome.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateUninitialized {
		o.mu.Unlock()
		return fmt.Errorf("%w: start from %s", ErrInvalidState, o.state)
	}
	o.setStateLocked(StateCheckingStatus)
	o.busy = true
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)

	var (
		status     models.SecurityStatus
		statusErr  error
		capability models.BiometricCapability
		bioSetup   bool
		g          errgroup.Group
	)
	g.Go(func() error {
		status, statusErr = o.pins.GetSecurityStatus(ctx, o.userID)
		if statusErr != nil {
			o.logger.Error().Str("func", "Orchestrator.Start").Err(statusErr).Msg("security status unavailable, requiring pin")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		capability, err = o.biometrics.GetCapability(ctx)
		if err != nil {
			o.logger.Warn().Str("func", "Orchestrator.Start").Err(err).Msg("biometric capability unavailable")
			capability = models.NewBiometricCapability(false, false, "")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bioSetup, err = o.biometrics.IsSetup(ctx, o.userID)
		if err != nil {
			o.logger.Warn().Str("func", "Orchestrator.Start").Err(err).Msg("biometric opt-in unreadable")
			bioSetup = false
		}
		return nil
	})
	_ = g.Wait()

	o.mu.Lock()
	if o.state == StateCancelled {
		o.busy = false
		o.mu.Unlock()
		return nil
	}

	o.capability = capability
	o.bioSetup = bioSetup
	usable := capability.Available && bioSetup

	switch {
	case statusErr != nil:
		// the lockout state is unknown, so only the PIN may unlock
		o.pinOnly = true
		o.setStateLocked(StatePinEntry)
	case status.IsLockedOut:
		o.lockoutUntil = o.now().Add(status.LockoutRemaining)
		o.remaining = 0
		o.setStateLocked(StateLockedOut)
	case !status.PinSetup && !usable:
		o.setStateLocked(StateAuthenticated)
	case usable:
		o.remaining = max(service.MaxAttempts-status.FailedAttempts, 0)
		o.setStateLocked(StateBiometricPrompt)
	default:
		o.remaining = max(service.MaxAttempts-status.FailedAttempts, 0)
		o.offerBioSetup = capability.Available && !bioSetup
		o.setStateLocked(StatePinEntry)
	}
	if statusErr == nil {
		o.pinRecommended = !status.PinSetup
		o.pinSetup = status.PinSetup
	} else {
		o.pinSetup = true
	}

	autoPrompt := o.state == StateBiometricPrompt
	if !autoPrompt {
		o.busy = false
	}
	snap = o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)

	if !autoPrompt {
		return nil
	}

	if o.promptDelay > 0 {
		timer := time.NewTimer(o.promptDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}
	o.runChallenge(ctx)
	return nil
}

// PromptBiometric triggers a challenge from the biometric prompt when no
// dialog is pending.
func (o *Orchestrator) PromptBiometric(ctx context.Context) error {
	o.mu.Lock()
	if err := o.guardLocked(StateBiometricPrompt); err != nil {
		o.mu.Unlock()
		return err
	}
	if o.dialog != DialogNone {
		o.mu.Unlock()
		return fmt.Errorf("%w: a choice is pending", ErrInvalidState)
	}
	o.busy = true
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)

	o.runChallenge(ctx)
	return nil
}

// RetryBiometric answers the fallback dialog with another challenge.
func (o *Orchestrator) RetryBiometric(ctx context.Context) error {
	o.mu.Lock()
	if err := o.guardLocked(StateBiometricPrompt); err != nil {
		o.mu.Unlock()
		return err
	}
	if o.dialog != DialogBiometricFallback {
		o.mu.Unlock()
		return fmt.Errorf("%w: no fallback choice pending", ErrInvalidState)
	}
	o.dialog = DialogNone
	o.reason = ""
	o.busy = true
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)

	o.runChallenge(ctx)
	return nil
}

// ChoosePin leaves the biometric prompt for PIN entry with an empty buffer.
func (o *Orchestrator) ChoosePin() error {
	o.mu.Lock()
	if err := o.guardLocked(StateBiometricPrompt); err != nil {
		o.mu.Unlock()
		return err
	}
	o.reason = ""
	o.enterPinLocked()
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
	return nil
}

// enterPinLocked moves to PIN entry with an empty buffer. A user whose PIN was
// removed while the biometric opt-in stayed has nothing to enter there, so the
// session is let through like a session without any factor.
func (o *Orchestrator) enterPinLocked() {
	o.dialog = DialogNone
	o.digits = o.digits[:0]
	if !o.pinSetup {
		o.logger.Warn().Str("func", "Orchestrator.enterPin").Msg("no pin to fall back to, letting the session through")
		o.reason = ""
		o.pinRecommended = true
		o.setStateLocked(StateAuthenticated)
		return
	}
	o.setStateLocked(StatePinEntry)
}

// SwitchToBiometric goes back from PIN entry to a biometric challenge when
// the device is available and opted in.
func (o *Orchestrator) SwitchToBiometric(ctx context.Context) error {
	o.mu.Lock()
	if err := o.guardLocked(StatePinEntry); err != nil {
		o.mu.Unlock()
		return err
	}
	if !o.biometricUsableLocked() {
		o.mu.Unlock()
		return ErrBiometricUnavailable
	}
	o.digits = o.digits[:0]
	o.reason = ""
	o.setStateLocked(StateBiometricPrompt)
	o.busy = true
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)

	o.runChallenge(ctx)
	return nil
}

// runChallenge expects busy to be set by the caller and clears it.
func (o *Orchestrator) runChallenge(ctx context.Context) {
	log := o.logger.With().Str("func", "Orchestrator.runChallenge").Logger()

	capability, err := o.biometrics.GetCapability(ctx)
	if err != nil || !capability.Available {
		if err != nil {
			log.Warn().Err(err).Msg("biometric capability unavailable")
		}
		o.mu.Lock()
		o.busy = false
		if o.state == StateBiometricPrompt {
			o.capability = models.NewBiometricCapability(capability.HasHardware, capability.IsEnrolled, o.capability.TypeName)
			o.reason = ReasonBiometricUnavailable
			o.enterPinLocked()
		}
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
		return
	}

	challengeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	o.mu.Lock()
	if o.state != StateBiometricPrompt {
		o.busy = false
		o.mu.Unlock()
		return
	}
	o.capability = capability
	o.cancelChallenge = cancel
	o.mu.Unlock()

	outcome := o.biometrics.Authenticate(challengeCtx, PromptReason)
	log.Info().Str("outcome", outcome.Kind.String()).Msg("biometric challenge finished")

	o.mu.Lock()
	o.busy = false
	o.cancelChallenge = nil
	if o.state != StateBiometricPrompt {
		o.mu.Unlock()
		return
	}
	o.lastOutcome = outcome.Kind
	if outcome.OK() {
		o.setStateLocked(StateAuthenticated)
	} else {
		o.dialog = DialogBiometricFallback
		o.reason = outcome.Reason
		if o.reason == "" {
			o.reason = fallbackReason(outcome.Kind)
		}
	}
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

func fallbackReason(kind models.BiometricOutcomeKind) string {
	switch kind {
	case models.BiometricCancelled:
		return ReasonBiometricDismissed
	case models.BiometricLocked:
		return ReasonBiometricLocked
	default:
		return ReasonBiometricFailed
	}
}

// EnterDigit appends d to the PIN buffer. The sixth digit submits the PIN.
func (o *Orchestrator) EnterDigit(ctx context.Context, d rune) error {
	o.mu.Lock()
	if err := o.guardLocked(StatePinEntry); err != nil {
		o.mu.Unlock()
		return err
	}
	if d < '0' || d > '9' {
		o.mu.Unlock()
		return ErrInvalidDigit
	}

	o.digits = append(o.digits, byte(d))
	if len(o.digits) < service.PinLength {
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
		return nil
	}

	pin := string(o.digits)
	clear(o.digits)
	o.digits = o.digits[:0]
	o.busy = true
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)

	o.submit(ctx, pin)
	return nil
}

// DeleteDigit removes the last entered digit.
func (o *Orchestrator) DeleteDigit() error {
	o.mu.Lock()
	if err := o.guardLocked(StatePinEntry); err != nil {
		o.mu.Unlock()
		return err
	}
	if len(o.digits) == 0 {
		o.mu.Unlock()
		return nil
	}
	o.digits = o.digits[:len(o.digits)-1]
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
	return nil
}

// submit verifies pin and applies the result. busy is set by the caller.
func (o *Orchestrator) submit(ctx context.Context, pin string) {
	log := o.logger.With().Str("func", "Orchestrator.submit").Logger()

	err := o.pins.VerifyPin(ctx, o.userID, pin)

	offerSetup := false
	if err == nil && o.shouldOfferSetup() {
		offerSetup = o.enrollmentPossible(ctx)
	}

	o.mu.Lock()
	o.busy = false
	if o.state != StatePinEntry {
		o.mu.Unlock()
		return
	}

	var (
		incorrect *service.IncorrectPinError
		locked    *service.LockedOutError
	)
	switch {
	case err == nil:
		o.remaining = service.MaxAttempts
		o.reason = ""
		if offerSetup {
			o.setStateLocked(StateBiometricEnrollmentOffer)
		} else {
			o.setStateLocked(StateAuthenticated)
		}
	case errors.As(err, &incorrect):
		o.errorCue++
		o.remaining = incorrect.Remaining
		o.reason = ReasonIncorrectPin
	case errors.As(err, &locked):
		o.errorCue++
		o.remaining = 0
		o.lockoutUntil = o.now().Add(locked.Remaining)
		o.reason = ""
		o.setStateLocked(StateLockedOut)
	default:
		log.Error().Err(err).Msg("pin verification failed")
		o.reason = err.Error()
		o.setStateLocked(StateError)
	}
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

func (o *Orchestrator) shouldOfferSetup() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.offerBioSetup
}

// enrollmentPossible re-checks that the device is available and the user has
// not opted in since the session started.
func (o *Orchestrator) enrollmentPossible(ctx context.Context) bool {
	capability, err := o.biometrics.GetCapability(ctx)
	if err != nil || !capability.Available {
		return false
	}
	setup, err := o.biometrics.IsSetup(ctx, o.userID)
	if err != nil {
		return false
	}
	return !setup
}

// AcceptBiometricSetup runs the biometric opt-in and authenticates the
// session whatever its result. A failed setup is returned for display.
func (o *Orchestrator) AcceptBiometricSetup(ctx context.Context) error {
	o.mu.Lock()
	if err := o.guardLocked(StateBiometricEnrollmentOffer); err != nil {
		o.mu.Unlock()
		return err
	}
	o.busy = true
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)

	setupErr := o.biometrics.SetupBiometric(ctx, o.userID)
	if setupErr != nil {
		o.logger.Warn().Str("func", "Orchestrator.AcceptBiometricSetup").Err(setupErr).Msg("biometric setup not completed")
	}

	o.mu.Lock()
	o.busy = false
	if o.state != StateBiometricEnrollmentOffer {
		o.mu.Unlock()
		return setupErr
	}
	o.offerBioSetup = false
	if setupErr == nil {
		o.bioSetup = true
	} else {
		o.reason = setupErr.Error()
	}
	o.setStateLocked(StateAuthenticated)
	snap = o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)

	return setupErr
}

// DeclineBiometricSetup skips the opt-in and authenticates the session.
func (o *Orchestrator) DeclineBiometricSetup() error {
	o.mu.Lock()
	if err := o.guardLocked(StateBiometricEnrollmentOffer); err != nil {
		o.mu.Unlock()
		return err
	}
	o.offerBioSetup = false
	o.setStateLocked(StateAuthenticated)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
	return nil
}

// Tick recomputes the lockout countdown. Once the lockout has passed the
// status is re-read, which clears the stale counters, and the session returns
// to PIN entry. Outside the lockout it is a no-op.
func (o *Orchestrator) Tick(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateLockedOut || o.busy {
		o.mu.Unlock()
		return nil
	}
	if o.now().Before(o.lockoutUntil) {
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
		return nil
	}
	o.busy = true
	o.mu.Unlock()

	status, err := o.pins.GetSecurityStatus(ctx, o.userID)

	o.mu.Lock()
	o.busy = false
	if o.state != StateLockedOut {
		o.mu.Unlock()
		return nil
	}
	switch {
	case err != nil:
		o.logger.Error().Str("func", "Orchestrator.Tick").Err(err).Msg("security status unavailable after lockout")
		o.remaining = service.MaxAttempts
		o.setStateLocked(StatePinEntry)
	case status.IsLockedOut:
		o.lockoutUntil = o.now().Add(status.LockoutRemaining)
	default:
		o.remaining = max(service.MaxAttempts-status.FailedAttempts, 0)
		o.setStateLocked(StatePinEntry)
	}
	o.digits = o.digits[:0]
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
	return nil
}

// Cancel aborts the session. It never touches stored state; an in-flight
// biometric challenge is dismissed and a submitted PIN runs to completion
// with its result discarded.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	if o.state.Terminal() {
		o.mu.Unlock()
		return
	}
	if o.cancelChallenge != nil {
		o.cancelChallenge()
		o.cancelChallenge = nil
	}
	clear(o.digits)
	o.digits = o.digits[:0]
	o.dialog = DialogNone
	o.setStateLocked(StateCancelled)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

// guardLocked refuses input outside want or while a call is in flight.
func (o *Orchestrator) guardLocked(want State) error {
	if o.busy {
		return ErrBusy
	}
	if o.state != want {
		return fmt.Errorf("%w: %s", ErrInvalidState, o.state)
	}
	return nil
}
