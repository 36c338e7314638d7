package tui

import (
	"time"

	"github.com/MKhiriev/go-pin-guard/internal/session"
	"github.com/MKhiriev/go-pin-guard/models"
)

// NavigateTo switches the active page of [RootModel]. A non-nil Payload is
// delivered to the new page as its first message.
type NavigateTo struct {
	Page    string
	Payload any
}

// Result is returned by [TUI.Run] once the program exits.
type Result struct {
	State  session.State
	Reason string
}

// finishMsg ends the program with a result.
type finishMsg struct {
	result Result
}

// snapshotMsg wakes the lock screen after the orchestrator published a
// transition. Queued wake-ups may be older than the session, so the screen
// always reads the current snapshot instead of carrying one here.
type snapshotMsg struct{}

type sessionOpMsg struct {
	err error
}

type tickMsg time.Time

type pinSavedMsg struct {
	err error
}

type offersLoadedMsg struct {
	offers []models.Offer
	err    error
}

type offerAnsweredMsg struct {
	offer models.OfferType
	err   error
}

type offersDisabledMsg struct {
	err error
}
