package tui

import (
	"github.com/MKhiriev/go-pin-guard/internal/biometric"
	"github.com/MKhiriev/go-pin-guard/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// challengeBindings are the keys that answer a pending OS biometric prompt
// in the terminal.
var challengeBindings = bindings{keys.bioPass, keys.bioCancel, keys.bioFail, keys.bioLock}

// answerChallenge delivers the outcome picked by msg to a pending challenge.
// It reports whether the key was consumed.
func answerChallenge(device *biometric.InteractiveDevice, msg tea.KeyMsg) bool {
	if device == nil {
		return false
	}
	if _, pending := device.Pending(); !pending {
		return false
	}

	var outcome models.BiometricOutcome
	switch {
	case key.Matches(msg, keys.bioPass):
		outcome = models.BiometricOutcome{Kind: models.BiometricSuccess}
	case key.Matches(msg, keys.bioCancel):
		outcome = models.BiometricOutcome{Kind: models.BiometricCancelled}
	case key.Matches(msg, keys.bioFail):
		outcome = models.BiometricOutcome{Kind: models.BiometricFailed, Reason: "лицо не распознано"}
	case key.Matches(msg, keys.bioLock):
		outcome = models.BiometricOutcome{Kind: models.BiometricLocked, Reason: "слишком много попыток, биометрия временно отключена"}
	default:
		return true
	}
	device.Respond(outcome)
	return true
}

// pendingChallenge returns the prompt text of a pending challenge.
func pendingChallenge(device *biometric.InteractiveDevice) (string, bool) {
	if device == nil {
		return "", false
	}
	return device.Pending()
}
