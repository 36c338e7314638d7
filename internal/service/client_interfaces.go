package service

import (
	"context"

	"github.com/MKhiriev/go-pin-guard/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// PinService defines the PIN security engine: setup, verification with
// attempt counting and lockout, and status reads. Every method taking a user
// id fails with [ErrMissingUserID] when it is empty.
type PinService interface {
	// ValidateFormat checks that pin is exactly six ASCII digits
	// ([ErrInvalidPinFormat]) and is not on the weak pattern list
	// ([ErrWeakPin]).
	ValidateFormat(pin string) error

	// SetupPin stores a freshly salted hash of pin and clears the attempt and
	// lockout state, replacing any previous PIN in one store transaction.
	SetupPin(ctx context.Context, userID, pin string) error

	// VerifyPin checks candidate against the stored hash. Failures are
	// returned as *IncorrectPinError, *LockedOutError, [ErrPinNotSetup] or
	// [ErrInvalidPinFormat]; malformed candidates still count as attempts.
	VerifyPin(ctx context.Context, userID, candidate string) error

	// ChangePin verifies oldPin and then sets up newPin. Verification errors
	// are returned unchanged and leave the stored PIN in place.
	ChangePin(ctx context.Context, userID, oldPin, newPin string) error

	// RemovePin verifies pin and then deletes all PIN material of the user.
	RemovePin(ctx context.Context, userID, pin string) error

	// ResetSecurity deletes all PIN material and attempt state without
	// verification. Callers must gate it behind a stronger re-authentication.
	ResetSecurity(ctx context.Context, userID string) error

	// GetSecurityStatus reads the PIN state. An expired lockout is reported as
	// not locked and is cleared from the store.
	GetSecurityStatus(ctx context.Context, userID string) (models.SecurityStatus, error)
}

// BiometricService adapts the OS biometric layer to the application opt-in.
type BiometricService interface {
	// GetCapability queries the device on every call.
	GetCapability(ctx context.Context) (models.BiometricCapability, error)

	// IsSetup reports whether userID completed the application opt-in on this
	// device, independent of the current OS availability.
	IsSetup(ctx context.Context, userID string) (bool, error)

	// SetupBiometric confirms presence with one challenge and persists the
	// opt-in only when the challenge succeeds.
	SetupBiometric(ctx context.Context, userID string) error

	// Authenticate runs one challenge. Device errors are reported as a failed
	// outcome and a done context as a cancelled one.
	Authenticate(ctx context.Context, reason string) models.BiometricOutcome

	// Disable removes the opt-in if it belongs to userID.
	Disable(ctx context.Context, userID string) error
}

// OfferService throttles the non-critical setup prompts shown after a
// successful unlock.
type OfferService interface {
	// ShouldShowOffers counts the session and returns the eligible offers
	// sorted by priority, or nil when nothing should be shown this session.
	ShouldShowOffers(ctx context.Context, userID string) ([]models.Offer, error)

	// RecordShown marks the offers as displayed now.
	RecordShown(ctx context.Context, userID string, offers ...models.OfferType) error
	AcceptOffer(ctx context.Context, userID string, offer models.OfferType) error
	DeclineOffer(ctx context.Context, userID string, offer models.OfferType) error
	// RemindLater snoozes offer for the given number of days.
	RemindLater(ctx context.Context, userID string, offer models.OfferType, days int) error
	// NeverShowOffer opts out of a single offer type.
	NeverShowOffer(ctx context.Context, userID string, offer models.OfferType) error
	// DisableAll opts out of every offer.
	DisableAll(ctx context.Context, userID string) error

	GetPreferences(ctx context.Context, userID string) (models.OfferPreferences, error)
}
