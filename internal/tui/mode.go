package tui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Mode selects whether the repair command renders its Bubble Tea progress
// view.
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeOn   Mode = "on"
	ModeOff  Mode = "off"
)

// ParseMode validates a --ui flag value.
func ParseMode(value string) (Mode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return ModeAuto, nil
	case "on":
		return ModeOn, nil
	case "off":
		return ModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// ShouldRender reports whether mode resolves to drawing the TUI against
// stdout, given the process's actual terminal attachment.
func ShouldRender(mode Mode) bool {
	switch mode {
	case ModeOn:
		return true
	case ModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
