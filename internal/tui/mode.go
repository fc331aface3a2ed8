package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// OutputMode selects how results are presented.
type OutputMode int

const (
	// OutputModePlain writes non-interactive text output.
	OutputModePlain OutputMode = iota
	// OutputModeStyled runs the TUI without colors.
	OutputModeStyled
	// OutputModeInteractive runs the full-color TUI.
	OutputModeInteractive
)

// String returns the lower-case mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// DetectOutputMode picks the output mode for stdout. plain always wins;
// forceInteractive skips the terminal check; noColor (or NO_COLOR in the
// environment) drops colors but keeps the TUI.
func DetectOutputMode(plain, noColor, forceInteractive bool) OutputMode {
	return DetectOutputModeFor(os.Stdout, plain, noColor, forceInteractive)
}

// DetectOutputModeFor is DetectOutputMode for an arbitrary writer. Writers
// that are not terminal files count as non-interactive.
func DetectOutputModeFor(w io.Writer, plain, noColor, forceInteractive bool) OutputMode {
	_, envNoColor := os.LookupEnv("NO_COLOR")
	return detectOutputMode(IsTerminal(w), plain, noColor || envNoColor, forceInteractive)
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func detectOutputMode(isTTY, plain, noColor, forceInteractive bool) OutputMode {
	switch {
	case plain:
		return OutputModePlain
	case !isTTY && !forceInteractive:
		return OutputModePlain
	case noColor:
		return OutputModeStyled
	default:
		return OutputModeInteractive
	}
}

// ApplyColorProfile disables lipgloss colors for OutputModeStyled.
func ApplyColorProfile(mode OutputMode) {
	if mode == OutputModeStyled {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
