package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-pin-guard/internal/logger"
	"github.com/MKhiriev/go-pin-guard/internal/session"
	"github.com/MKhiriev/go-pin-guard/internal/store"
	"github.com/MKhiriev/go-pin-guard/internal/tui"
)

// ErrSessionFailed is returned when the unlock flow ended in the error state.
var ErrSessionFailed = errors.New("unlock session failed")

// App is the terminal lock host: it owns the storages for the lifetime of one
// unlock session.
type App struct {
	tui      *tui.TUI
	storages *store.ClientStorages
	logger   *logger.Logger
}

func NewApp(ui *tui.TUI, storages *store.ClientStorages, logger *logger.Logger) (*App, error) {
	if ui == nil || storages == nil {
		return nil, errors.New("client app needs a ui and storages")
	}
	return &App{tui: ui, storages: storages, logger: logger}, nil
}

// Run runs one foreground session and releases the storages afterwards.
// Leaving the session with ctrl+c or esc is not an error.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() {
		if err := a.storages.Close(); err != nil {
			a.logger.Error().Err(err).Str("func", "App.Run").Msg("error closing storages")
		}
	}()

	result, err := a.tui.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Str("func", "App.Run").Msg("user quit")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error running ui: %w", err)
	}

	switch result.State {
	case session.StateError:
		return fmt.Errorf("%w: %s", ErrSessionFailed, result.Reason)
	case session.StateCancelled:
		a.logger.Info().Str("func", "App.Run").Msg("session cancelled")
	default:
		a.logger.Info().Str("func", "App.Run").Str("state", result.State.String()).Msg("session finished")
	}
	return nil
}
