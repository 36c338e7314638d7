package service

import (
	"github.com/MKhiriev/go-pin-guard/internal/adapter"
	"github.com/MKhiriev/go-pin-guard/internal/biometric"
	"github.com/MKhiriev/go-pin-guard/internal/crypto"
	"github.com/MKhiriev/go-pin-guard/internal/logger"
	"github.com/MKhiriev/go-pin-guard/internal/store"
)

type ClientServices struct {
	PinService       PinService
	BiometricService BiometricService
	OfferService     OfferService
}

// NewClientServices wires the device security services over one credential
// store. account may be nil when no remote API is configured.
func NewClientServices(
	storages *store.ClientStorages,
	device biometric.Device,
	account adapter.AccountAdapter,
	logger *logger.Logger,
) *ClientServices {
	pinSvc := NewPinService(storages.Credentials, crypto.NewKeyChainService(), logger)
	biometricSvc := NewBiometricService(device, storages.Credentials, logger)

	return &ClientServices{
		PinService:       pinSvc,
		BiometricService: biometricSvc,
		OfferService:     NewOfferService(storages.Credentials, pinSvc, biometricSvc, account, logger),
	}
}
