package session

import (
	"errors"

	"github.com/MKhiriev/go-pin-guard/internal/service"
)

var (
	ErrMissingUserID = service.ErrMissingUserID

	ErrBusy                 = errors.New("another verification is in progress")
	ErrInvalidState         = errors.New("operation not allowed in current state")
	ErrInvalidDigit         = errors.New("pin input accepts digits only")
	ErrBiometricUnavailable = service.ErrBiometricUnavailable
)
