package main

import (
	"fmt"
	"os"
	"strings"
)

// toggle is the value of an auto/on/off flag such as --color or --ui.
type toggle uint8

const (
	toggleAuto toggle = iota
	toggleOn
	toggleOff
)

func (t toggle) String() string {
	switch t {
	case toggleOn:
		return "on"
	case toggleOff:
		return "off"
	default:
		return "auto"
	}
}

// parseToggle accepts auto, on/always and off/never in any case.
func parseToggle(flag, value string) (toggle, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return toggleAuto, nil
	case "on", "always":
		return toggleOn, nil
	case "off", "never":
		return toggleOff, nil
	default:
		return toggleAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// enabled resolves the toggle, deferring to detect only in auto mode.
func (t toggle) enabled(detect func() bool) bool {
	switch t {
	case toggleOn:
		return true
	case toggleOff:
		return false
	default:
		return detect()
	}
}

// interactive reports whether both output streams are attached to a terminal.
// The progress view draws on stderr while results go to stdout.
func interactive() bool {
	return isTerminal(os.Stdout) && isTerminal(os.Stderr)
}

func stdoutIsTerminal() bool {
	return isTerminal(os.Stdout)
}
