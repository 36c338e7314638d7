package tui

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pin-guard/internal/biometric"
	"github.com/MKhiriev/go-pin-guard/internal/logger"
	"github.com/MKhiriev/go-pin-guard/internal/service"
	"github.com/MKhiriev/go-pin-guard/internal/session"
	"github.com/MKhiriev/go-pin-guard/models"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pageLock     = "lock"
	pagePinSetup = "pin_setup"
	pageOffers   = "offers"
)

type TUI struct {
	services    *service.ClientServices
	device      *biometric.InteractiveDevice
	userID      string
	promptDelay time.Duration
	buildInfo   models.AppBuildInfo
	logger      *logger.Logger
}

// New creates the terminal host. device answers biometric challenges from the
// keyboard and may be nil.
func New(
	services *service.ClientServices,
	device *biometric.InteractiveDevice,
	userID string,
	promptDelay time.Duration,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) (*TUI, error) {
	if userID == "" {
		return nil, service.ErrMissingUserID
	}
	return &TUI{
		services:    services,
		device:      device,
		userID:      userID,
		promptDelay: promptDelay,
		buildInfo:   buildInfo,
		logger:      logger,
	}, nil
}

// Run drives one foreground session: lock screen, then the optional PIN
// setup and the setup offers.
func (t *TUI) Run(ctx context.Context) (Result, error) {
	// released when the program ends so that pending snapshot waits return
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := make(chan session.Snapshot, 64)
	orch, err := session.New(t.userID, t.services.PinService, t.services.BiometricService,
		session.WithPromptDelay(t.promptDelay),
		session.WithLogger(t.logger),
		session.WithObserver(func(s session.Snapshot) {
			select {
			case updates <- s:
			default:
				// the lock screen re-reads the state after every call
			}
		}),
	)
	if err != nil {
		return Result{}, err
	}

	pages := map[string]tea.Model{
		pageLock:     NewLockModel(ctx, orch, updates, t.device),
		pagePinSetup: NewPinSetupModel(ctx, t.services.PinService, t.userID),
		pageOffers:   NewOffersModel(ctx, t.services.OfferService, t.services.BiometricService, t.device, t.userID),
	}

	root := NewRootModel(pages, pageLock, t.buildInfo, t.userID)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if runErr != nil {
		orch.Cancel()
		return Result{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		orch.Cancel()
		return Result{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		orch.Cancel()
		return Result{State: session.StateCancelled}, ErrUserQuit
	}

	t.logger.Info().Str("func", "TUI.Run").Str("session_id", orch.SessionID()).
		Str("state", result.result.State.String()).Msg("session finished")
	return result.result, nil
}
