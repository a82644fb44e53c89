// Package appearance holds the visitor's light/dark preference and notifies
// consumers when it changes.
package appearance

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the binary appearance preference.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

var (
	// ErrUnknownMode is returned when parsing anything but light or dark.
	ErrUnknownMode = errors.New("unknown appearance mode")
	// ErrNotReady is returned when toggling before the first Init.
	ErrNotReady = errors.New("appearance mode not initialized")
)

// ParseMode accepts "light" or "dark", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Invert returns the opposite mode.
func (m Mode) Invert() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func (m Mode) IsDark() bool { return m == Dark }

func (m Mode) String() string { return string(m) }
