package diagnostics

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiReset  = "\033[0m"
)

// ColorsEnabled reports whether f is an interactive terminal that can take
// ANSI color codes.
func ColorsEnabled(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormatError renders a fatal diagnostic for terminal output.
func FormatError(e *DiagnosticError, color bool) string {
	label := "error"
	if e.IsInternal() {
		label = "internal error"
	}
	if color {
		return fmt.Sprintf("%s: %s%s:%s %s", e.Token.Position(), ansiRed, label, ansiReset, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Token.Position(), label, e.Message)
}

// FormatWarning renders a warning for terminal output.
func FormatWarning(w Warning, color bool) string {
	if color {
		return fmt.Sprintf("%s: %swarning:%s %s", w.Token.Position(), ansiYellow, ansiReset, w.Message)
	}
	return fmt.Sprintf("%s: warning: %s", w.Token.Position(), w.Message)
}
