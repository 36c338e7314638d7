package biometric

import "errors"

var (
	// ErrChallengeInProgress is returned when a second challenge is started
	// while the first one is still waiting for an answer.
	ErrChallengeInProgress = errors.New("biometric challenge already in progress")
	// ErrNoHardware is returned by a challenge on a device without sensor.
	ErrNoHardware = errors.New("no biometric hardware")
)
