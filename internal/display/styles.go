package display

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	styleAgentName  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleThinking   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("5"))
	styleToolUse    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	styleToolOK     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleDim        = lipgloss.NewStyle().Faint(true)
	stylePanelTitle = lipgloss.NewStyle().Bold(true)
)

// Separator renders a dim horizontal rule of the given width.
func Separator(width int) string {
	if width <= 0 {
		width = 80
	}
	return styleDim.Render(strings.Repeat("─", width))
}

// HeavySeparator marks a turn boundary after a final text reply.
func HeavySeparator(width int) string {
	if width <= 0 {
		width = 80
	}
	return styleDim.Render(strings.Repeat("═", width))
}

// TerminalWidth reports the current stdout width, defaulting to 80 when
// stdout is not a terminal.
func TerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
