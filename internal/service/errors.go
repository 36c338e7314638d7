package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingUserID = errors.New("missing user id")

	ErrInvalidPinFormat = errors.New("pin must be exactly 6 digits")
	ErrWeakPin          = errors.New("pin is too easy to guess")
	ErrPinNotSetup      = errors.New("pin is not set up")
	ErrIncorrectPin     = errors.New("incorrect pin")
	ErrLockedOut        = errors.New("pin entry locked out")

	ErrBiometricUnavailable = errors.New("biometric authentication is unavailable")
	ErrBiometricSetupFailed = errors.New("biometric setup failed")

	ErrUnknownOfferType  = errors.New("unknown offer type")
	ErrInvalidRemindDays = errors.New("remind later needs at least one day")
)

// IncorrectPinError is returned by a failed verification that did not reach
// the attempt ceiling.
type IncorrectPinError struct {
	Remaining int
}

func (e *IncorrectPinError) Error() string {
	return fmt.Sprintf("%s: %d attempts remaining", ErrIncorrectPin, e.Remaining)
}

func (e *IncorrectPinError) Unwrap() error {
	return ErrIncorrectPin
}

// LockedOutError is returned while a lockout is active and by the attempt that
// triggers it.
type LockedOutError struct {
	Remaining time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("%s: %s remaining", ErrLockedOut, e.Remaining.Round(time.Second))
}

func (e *LockedOutError) Unwrap() error {
	return ErrLockedOut
}

// RemainingMs returns the remaining lockout in whole milliseconds.
func (e *LockedOutError) RemainingMs() int64 {
	return e.Remaining.Milliseconds()
}
