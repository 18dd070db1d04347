package countdown

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDuration = errors.New("countdown: invalid duration")
	ErrInvalidMode     = errors.New("countdown: invalid mode")
	ErrModeUnavailable = errors.New("countdown: mode switching requires focus and rest durations")
)

type Mode string

const (
	ModeFocus Mode = "focus"
	ModeRest  Mode = "rest"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeFocus, ModeRest:
		return true
	default:
		return false
	}
}

func (m Mode) Label() string {
	if m == ModeRest {
		return "Rest"
	}
	return "Focus"
}

// Other returns the mode a toggle moves to.
func (m Mode) Other() Mode {
	if m == ModeRest {
		return ModeFocus
	}
	return ModeRest
}

func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "focus", "work", "f":
		return ModeFocus, nil
	case "rest", "break", "b":
		return ModeRest, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, raw)
	}
}

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateExpired State = "expired"
)

// Label is the status text shown next to the clock.
func (s State) Label() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateExpired:
		return "Expired"
	default:
		return "Ready"
	}
}

func validateSeconds(seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("%w: %d seconds", ErrInvalidDuration, seconds)
	}
	return nil
}
