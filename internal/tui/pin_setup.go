// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-pin-guard/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// PinSetupModel asks for a new PIN twice and stores it. It is shown after a
// session was let through without any factor.
type PinSetupModel struct {
	ctx    context.Context
	pins   service.PinService
	userID string

	first      string
	buf        []byte
	confirming bool
	saving     bool
	errMsg     string
	help       help.Model
}

func NewPinSetupModel(ctx context.Context, pins service.PinService, userID string) *PinSetupModel {
	return &PinSetupModel{
		ctx:    ctx,
		pins:   pins,
		userID: userID,
		help:   help.New(),
	}
}

func (m *PinSetupModel) Init() tea.Cmd {
	return nil
}

// Update implements [tea.Model]. Handled messages:
//   - [pinSavedMsg] moves on to the offers page or shows the error.
//   - digits fill the buffer; the sixth one validates or confirms.
//   - backspace removes the last digit.
//   - esc skips the setup.
func (m *PinSetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pinSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			m.reset()
			return m, nil
		}
		return m, navigate(pageOffers)
	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.esc):
			return m, navigate(pageOffers)
		case key.Matches(msg, keys.backspace):
			if len(m.buf) > 0 {
				m.buf = m.buf[:len(m.buf)-1]
			}
			return m, nil
		case key.Matches(msg, keys.digit):
			m.errMsg = ""
			m.buf = append(m.buf, msg.String()[0])
			if len(m.buf) < service.PinLength {
				return m, nil
			}
			return m, m.complete()
		}
	}
	return m, nil
}

// complete handles a full buffer.
func (m *PinSetupModel) complete() tea.Cmd {
	pin := string(m.buf)
	clear(m.buf)
	m.buf = m.buf[:0]

	if !m.confirming {
		if err := m.pins.ValidateFormat(pin); err != nil {
			m.errMsg = humanizeError(err)
			return nil
		}
		m.first = pin
		m.confirming = true
		return nil
	}

	if pin != m.first {
		m.errMsg = "PIN-коды не совпадают, начните заново"
		m.reset()
		return nil
	}

	m.saving = true
	ctx, pins, userID := m.ctx, m.pins, m.userID
	return func() tea.Msg {
		return pinSavedMsg{err: pins.SetupPin(ctx, userID, pin)}
	}
}

func (m *PinSetupModel) reset() {
	m.first = ""
	m.confirming = false
	clear(m.buf)
	m.buf = m.buf[:0]
}

func (m *PinSetupModel) View() string {
	var b strings.Builder

	b.WriteString("Для защиты данных задайте PIN из 6 цифр\n\n")
	if m.confirming {
		b.WriteString("Повторите PIN\n\n")
	} else {
		b.WriteString("Новый PIN\n\n")
	}
	b.WriteString(pinDots(len(m.buf)))

	if m.saving {
		b.WriteString("\n\nСохранение...")
	}
	if m.errMsg != "" {
		b.WriteString("\n\n" + errorStyle.Render(m.errMsg))
	}

	hotKeys := bindings{keys.digit, keys.backspace, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "позже"))}
	return renderPage("PINGUARD · НОВЫЙ PIN", b.String(), m.help.View(hotKeys))
}
