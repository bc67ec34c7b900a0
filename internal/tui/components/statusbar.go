package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finchat/internal/tui/theme"
)

// Status is what the bottom bar reports.
type Status struct {
	Persona string
	// Source is "local" or the remote API address.
	Source  string
	Loading bool
	Notice  string
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, st Status) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	noticeStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	busyStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)

	left := mutedStyle.Render(" ") + keyStyle.Render("[e]") + mutedStyle.Render("dit  ") +
		keyStyle.Render("[?]") + mutedStyle.Render("help  ") +
		keyStyle.Render("[q]") + mutedStyle.Render("uit")

	var right string
	switch {
	case st.Notice != "":
		right = noticeStyle.Render("! " + st.Notice)
	case st.Loading:
		right = busyStyle.Render("working...")
	default:
		right = mutedStyle.Render(st.Persona + " · " + st.Source)
	}
	right += mutedStyle.Render(" ")

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	bar := left + barStyle.Render(strings.Repeat(" ", gap)) + right

	return barStyle.Width(width).MaxWidth(width).Render(bar)
}
