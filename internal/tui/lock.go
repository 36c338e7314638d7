// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pin-guard/internal/biometric"
	"github.com/MKhiriev/go-pin-guard/internal/service"
	"github.com/MKhiriev/go-pin-guard/internal/session"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// LockModel renders the unlock flow of one [session.Orchestrator]. The
// orchestrator publishes snapshots into updates; the model only turns key
// presses into orchestrator calls and never changes the session by itself.
type LockModel struct {
	ctx     context.Context
	orch    *session.Orchestrator
	updates <-chan session.Snapshot
	device  *biometric.InteractiveDevice

	snap   session.Snapshot
	errMsg string
	help   help.Model
}

// NewLockModel creates the lock screen. device may be nil when the challenge
// is answered by something other than the keyboard.
func NewLockModel(ctx context.Context, orch *session.Orchestrator, updates <-chan session.Snapshot, device *biometric.InteractiveDevice) *LockModel {
	return &LockModel{
		ctx:     ctx,
		orch:    orch,
		updates: updates,
		device:  device,
		snap:    orch.Snapshot(),
		help:    help.New(),
	}
}

// Init starts the session, the snapshot listener and the countdown ticker.
func (m *LockModel) Init() tea.Cmd {
	return tea.Batch(
		m.run(m.orch.Start),
		m.waitSnapshot(),
		tick(),
	)
}

func (m *LockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = m.orch.Snapshot()
		return m, m.afterSnapshot()
	case sessionOpMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
		}
		m.snap = m.orch.Snapshot()
		return m, nil
	case tickMsg:
		if m.snap.State.Terminal() {
			return m, nil
		}
		if m.snap.State == session.StateLockedOut {
			return m, tea.Batch(m.run(m.orch.Tick), tick())
		}
		return m, tick()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

// afterSnapshot leaves the lock screen once the session is over and keeps
// listening otherwise.
func (m *LockModel) afterSnapshot() tea.Cmd {
	switch m.snap.State {
	case session.StateAuthenticated:
		if m.snap.PinSetupRecommended {
			return navigate(pagePinSetup)
		}
		return navigate(pageOffers)
	case session.StateCancelled:
		return finish(Result{State: session.StateCancelled})
	case session.StateError:
		return nil
	}
	return m.waitSnapshot()
}

func (m *LockModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if answerChallenge(m.device, msg) {
		return nil
	}
	m.errMsg = ""

	switch m.snap.State {
	case session.StatePinEntry:
		switch {
		case key.Matches(msg, keys.digit):
			d := []rune(msg.String())[0]
			return m.run(func(ctx context.Context) error { return m.orch.EnterDigit(ctx, d) })
		case key.Matches(msg, keys.backspace):
			return m.call(m.orch.DeleteDigit)
		case key.Matches(msg, keys.biometric):
			return m.run(m.orch.SwitchToBiometric)
		}
	case session.StateBiometricPrompt:
		switch {
		case m.snap.Dialog == session.DialogBiometricFallback && key.Matches(msg, keys.retry):
			return m.run(m.orch.RetryBiometric)
		case key.Matches(msg, keys.usePin):
			return m.call(m.orch.ChoosePin)
		case m.snap.Dialog == session.DialogNone && key.Matches(msg, keys.biometric):
			return m.run(m.orch.PromptBiometric)
		}
	case session.StateBiometricEnrollmentOffer:
		switch {
		case key.Matches(msg, keys.yes):
			return m.run(m.orch.AcceptBiometricSetup)
		case key.Matches(msg, keys.no):
			return m.call(m.orch.DeclineBiometricSetup)
		}
	case session.StateError:
		if key.Matches(msg, keys.enter, keys.esc) {
			return finish(Result{State: session.StateError, Reason: m.snap.Reason})
		}
		return nil
	}

	if key.Matches(msg, keys.esc) {
		m.orch.Cancel()
		m.snap = m.orch.Snapshot()
		return m.afterSnapshot()
	}
	return nil
}

// run executes a blocking orchestrator call off the UI loop.
func (m *LockModel) run(op func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return sessionOpMsg{err: op(ctx)}
	}
}

// call executes a non-blocking orchestrator call in place.
func (m *LockModel) call(op func() error) tea.Cmd {
	if err := op(); err != nil {
		m.errMsg = humanizeError(err)
	}
	m.snap = m.orch.Snapshot()
	return nil
}

// waitSnapshot blocks until the next published transition. It gives up
// without a message once the screen's context is done.
func (m *LockModel) waitSnapshot() tea.Cmd {
	ctx, updates := m.ctx, m.updates
	return func() tea.Msg {
		select {
		case <-updates:
			return snapshotMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *LockModel) View() string {
	if m.snap.State == session.StateError {
		return renderPage("PINGUARD · РАЗБЛОКИРОВКА", errorOverlayModel{reason: m.snap.Reason}.View(), "")
	}

	var b strings.Builder
	hotKeys := bindings{keys.esc}
	bioName := m.snap.BiometricType

	switch m.snap.State {
	case session.StateUninitialized, session.StateCheckingStatus:
		b.WriteString("Проверка состояния защиты...")
	case session.StateBiometricPrompt:
		switch {
		case m.snap.Dialog == session.DialogBiometricFallback:
			b.WriteString(warnStyle.Render(humanizeReason(m.snap.Reason)))
			b.WriteString("\n\nПовторить " + bioName + " или ввести PIN?")
			hotKeys = bindings{keys.retry, keys.usePin, keys.esc}
		case m.snap.Busy:
			b.WriteString("Подтвердите вход через " + bioName + "...")
			if reason, ok := pendingChallenge(m.device); ok {
				b.WriteString("\n\nЗапрос системы: " + reason)
				hotKeys = challengeBindings
			}
		default:
			b.WriteString("Вход через " + bioName)
			hotKeys = bindings{keys.biometric, keys.usePin, keys.esc}
		}
	case session.StatePinEntry:
		b.WriteString("Введите PIN\n\n")
		b.WriteString(pinDots(m.snap.Digits))
		if m.snap.Reason != "" {
			b.WriteString("\n\n" + errorStyle.Render(humanizeReason(m.snap.Reason)))
		}
		if m.snap.RemainingAttempts < service.MaxAttempts {
			b.WriteString(fmt.Sprintf("\nОсталось попыток: %d", m.snap.RemainingAttempts))
		}
		hotKeys = bindings{keys.digit, keys.backspace, keys.esc}
		if m.snap.CanUseBiometric {
			hotKeys = bindings{keys.digit, keys.backspace, keys.biometric, keys.esc}
		}
	case session.StateLockedOut:
		b.WriteString(errorStyle.Render("Слишком много неверных попыток"))
		b.WriteString("\n\nВвод PIN будет доступен через " + formatCountdown(m.snap.LockoutRemaining))
	case session.StateBiometricEnrollmentOffer:
		b.WriteString(okStyle.Render("PIN принят"))
		b.WriteString("\n\nВключить вход через " + bioName + "?")
		hotKeys = bindings{keys.yes, keys.no}
		if m.snap.Busy {
			if reason, ok := pendingChallenge(m.device); ok {
				b.WriteString("\n\nЗапрос системы: " + reason)
				hotKeys = challengeBindings
			}
		}
	case session.StateAuthenticated:
		b.WriteString(okStyle.Render("Доступ разрешён"))
	case session.StateCancelled:
		b.WriteString("Вход отменён")
	}

	if m.errMsg != "" {
		b.WriteString("\n\n" + errorStyle.Render(m.errMsg))
	}

	return renderPage("PINGUARD · РАЗБЛОКИРОВКА", b.String(), m.help.View(hotKeys))
}
