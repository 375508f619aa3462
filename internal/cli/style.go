package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// isTerminal reports whether w is a terminal that accepts colour.
// NO_COLOR disables colour regardless.
func isTerminal(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// OK formats a success status line.
func (f *OutputFormatter) OK(msg string) string {
	line := "✓ " + msg
	if f.Color {
		return okStyle.Render(line)
	}
	return line
}

// Fail formats a failure status line.
func (f *OutputFormatter) Fail(msg string) string {
	line := "✗ " + msg
	if f.Color {
		return failStyle.Render(line)
	}
	return line
}

// Dim de-emphasises secondary text such as source locations.
func (f *OutputFormatter) Dim(msg string) string {
	if f.Color {
		return dimStyle.Render(msg)
	}
	return msg
}
