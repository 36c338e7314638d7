// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for reading account
// data from the remote finance API.
//
// The primary abstraction is [AccountAdapter], which decouples the offer
// throttle from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPAccountAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pin-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/account_adapter_mock.go -package=mock

// AccountAdapter defines read-only access to the account data the offer
// throttle needs. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
type AccountAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// requests. The token is issued and refreshed by the host application.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// GetPlanUsage fetches the subscription tier and the consumption of every
	// plan limit of userID.
	GetPlanUsage(ctx context.Context, userID string) (models.PlanUsage, error)

	// GetProfileStatus reports whether userID has completed the financial
	// profile and how many goals exist.
	GetProfileStatus(ctx context.Context, userID string) (models.ProfileStatus, error)
}
