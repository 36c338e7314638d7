// Package utils provides small helpers shared across the client: the resty
// based HTTP client and random identifier generation.
package utils

import "github.com/google/uuid"

// UUIDGenerator issues identifiers for unlock sessions and biometric opt-in
// tokens.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// SessionID returns a time-ordered UUIDv7 so log lines of consecutive unlock
// sessions sort by start time. Falls back to UUIDv4.
func (g *UUIDGenerator) SessionID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// Token returns a random UUIDv4. Opt-in tokens must not reveal when the user
// enrolled, so no time-based version is used here.
func (g *UUIDGenerator) Token() string {
	return uuid.NewString()
}
