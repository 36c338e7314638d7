// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pin-guard/internal/service"
	"github.com/MKhiriev/go-pin-guard/internal/session"
)

var ErrUserQuit = errors.New("вышел из программы")

// humanizeError turns service errors into messages for the user.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var locked *service.LockedOutError
	switch {
	case errors.As(err, &locked):
		return fmt.Sprintf("Ввод PIN заблокирован, осталось %s", formatCountdown(locked.Remaining))
	case errors.Is(err, service.ErrInvalidPinFormat):
		return "PIN должен состоять ровно из 6 цифр"
	case errors.Is(err, service.ErrWeakPin):
		return "Слишком простой PIN, выберите другой"
	case errors.Is(err, service.ErrPinNotSetup):
		return "PIN ещё не задан"
	case errors.Is(err, service.ErrBiometricUnavailable):
		return "Биометрия недоступна на этом устройстве"
	case errors.Is(err, service.ErrBiometricSetupFailed):
		return "Не удалось подтвердить биометрию"
	case errors.Is(err, session.ErrBusy):
		return "Подождите, идёт проверка"
	}

	return err.Error()
}

var reasonText = map[string]string{
	session.ReasonIncorrectPin:         "Неверный PIN",
	session.ReasonBiometricUnavailable: "Биометрия недоступна",
	session.ReasonBiometricDismissed:   "Запрос биометрии закрыт",
	session.ReasonBiometricLocked:      "Биометрия временно заблокирована системой",
	session.ReasonBiometricFailed:      "Биометрия не распознана",
}

// humanizeReason translates the reasons reported by the orchestrator.
func humanizeReason(reason string) string {
	if text, ok := reasonText[reason]; ok {
		return text
	}
	return reason
}
