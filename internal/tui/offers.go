// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-pin-guard/internal/biometric"
	"github.com/MKhiriev/go-pin-guard/internal/service"
	"github.com/MKhiriev/go-pin-guard/internal/session"
	"github.com/MKhiriev/go-pin-guard/models"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// remindLaterDays is the snooze picked by the "remind later" key.
const remindLaterDays = 3

var offerTitles = map[models.OfferType]string{
	models.OfferPinSecurity:      "Защитите приложение PIN-кодом",
	models.OfferBiometric:        "Входите быстрее с биометрией",
	models.OfferSubscription:     "Лимиты тарифа почти исчерпаны, перейдите на Plus",
	models.OfferFinancialProfile: "Заполните финансовый профиль",
	models.OfferGoals:            "Поставьте первую финансовую цель",
}

// OffersModel shows the setup offers of the session after an unlock and
// records every answer.
type OffersModel struct {
	ctx        context.Context
	offers     service.OfferService
	biometrics service.BiometricService
	device     *biometric.InteractiveDevice
	userID     string

	items       []models.Offer
	cursor      int
	loading     bool
	busy        bool
	showConfirm bool
	errMsg      string
	help        help.Model
}

func NewOffersModel(
	ctx context.Context,
	offers service.OfferService,
	biometrics service.BiometricService,
	device *biometric.InteractiveDevice,
	userID string,
) *OffersModel {
	return &OffersModel{
		ctx:        ctx,
		offers:     offers,
		biometrics: biometrics,
		device:     device,
		userID:     userID,
		loading:    true,
		help:       help.New(),
	}
}

// Init loads the offers of this session and marks them as shown.
func (m *OffersModel) Init() tea.Cmd {
	ctx, svc, userID := m.ctx, m.offers, m.userID
	return tea.Batch(func() tea.Msg {
		offers, err := svc.ShouldShowOffers(ctx, userID)
		if err != nil || len(offers) == 0 {
			return offersLoadedMsg{err: err}
		}

		types := make([]models.OfferType, 0, len(offers))
		for _, o := range offers {
			types = append(types, o.Type)
		}
		return offersLoadedMsg{offers: offers, err: svc.RecordShown(ctx, userID, types...)}
	}, tick())
}

func (m *OffersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case offersLoadedMsg:
		m.loading = false
		m.items = msg.offers
		if len(m.items) == 0 {
			return m, m.done()
		}
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
		}
		return m, nil
	case offerAnsweredMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.items = slices.DeleteFunc(m.items, func(o models.Offer) bool { return o.Type == msg.offer })
		m.cursor = min(m.cursor, max(len(m.items)-1, 0))
		if len(m.items) == 0 {
			return m, m.done()
		}
		return m, nil
	case offersDisabledMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		return m, m.done()
	case tickMsg:
		// re-render while a biometric setup waits for the keyboard
		return m, tick()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *OffersModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if answerChallenge(m.device, msg) {
		return nil
	}
	if m.loading || m.busy {
		return nil
	}

	if m.showConfirm {
		switch {
		case key.Matches(msg, keys.yes):
			m.showConfirm = false
			m.busy = true
			ctx, svc, userID := m.ctx, m.offers, m.userID
			return func() tea.Msg {
				return offersDisabledMsg{err: svc.DisableAll(ctx, userID)}
			}
		case key.Matches(msg, keys.no, keys.esc):
			m.showConfirm = false
		}
		return nil
	}

	m.errMsg = ""
	switch {
	case key.Matches(msg, keys.up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, keys.down):
		m.cursor = min(m.cursor+1, len(m.items)-1)
	case key.Matches(msg, keys.esc):
		return m.done()
	case key.Matches(msg, keys.disableAll):
		m.showConfirm = true
	case key.Matches(msg, keys.enter, keys.yes):
		return m.answer(m.accept)
	case key.Matches(msg, keys.no):
		return m.answer(m.offers.DeclineOffer)
	case key.Matches(msg, keys.later):
		return m.answer(func(ctx context.Context, userID string, offer models.OfferType) error {
			return m.offers.RemindLater(ctx, userID, offer, remindLaterDays)
		})
	case key.Matches(msg, keys.never):
		return m.answer(m.offers.NeverShowOffer)
	}
	return nil
}

// accept records the acceptance. The biometric offer is only accepted once
// the opt-in itself succeeded.
func (m *OffersModel) accept(ctx context.Context, userID string, offer models.OfferType) error {
	if offer == models.OfferBiometric {
		if err := m.biometrics.SetupBiometric(ctx, userID); err != nil {
			return err
		}
	}
	return m.offers.AcceptOffer(ctx, userID, offer)
}

func (m *OffersModel) answer(op func(ctx context.Context, userID string, offer models.OfferType) error) tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	offer := m.items[m.cursor].Type
	m.busy = true

	ctx, userID := m.ctx, m.userID
	return func() tea.Msg {
		return offerAnsweredMsg{offer: offer, err: op(ctx, userID, offer)}
	}
}

func (m *OffersModel) done() tea.Cmd {
	return finish(Result{State: session.StateAuthenticated})
}

func (m *OffersModel) View() string {
	if m.loading {
		return renderPage("PINGUARD · ПРЕДЛОЖЕНИЯ", "Загрузка...", "")
	}
	if m.showConfirm {
		return renderPage("PINGUARD · ПРЕДЛОЖЕНИЯ", confirmModel{message: "Больше никогда не показывать предложения?"}.View(), "")
	}

	var b strings.Builder
	for i, offer := range m.items {
		line := fmt.Sprintf("%d. %s", offer.Priority, offerTitles[offer.Type])
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	hotKeys := bindings{keys.up, keys.down, keys.yes, keys.no, keys.later, keys.never, keys.disableAll, keys.esc}
	if reason, ok := pendingChallenge(m.device); ok {
		b.WriteString("\nЗапрос системы: " + reason + "\n")
		hotKeys = challengeBindings
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}

	return renderPage("PINGUARD · ПРЕДЛОЖЕНИЯ", b.String(), m.help.View(hotKeys))
}
