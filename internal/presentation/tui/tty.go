package tui

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether f is attached to a terminal. Bed views
// and the banner are suppressed when output is piped.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
