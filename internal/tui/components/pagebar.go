package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finchat/internal/tui/theme"
)

// PageTab is one entry in the page bar.
type PageTab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name
}

// Pages lists the page bar entries in cycle order.
var Pages = []PageTab{
	{Name: "Home", Key: 'h', KeyPos: 0},
	{Name: "NLU", Key: 'n', KeyPos: 0},
	{Name: "Q&A", Key: 'a', KeyPos: 2},
	{Name: "Budget", Key: 'b', KeyPos: 0},
	{Name: "Insights", Key: 'i', KeyPos: 0},
}

// Brand is drawn at the left edge of the page bar.
const Brand = " ◈ finchat "

func tabStyles() (active, inactive, key, bracket lipgloss.Style) {
	t := theme.Active
	active = lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)
	inactive = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	key = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	bracket = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return active, inactive, key, bracket
}

func renderTab(tab PageTab, active bool) string {
	activeStyle, inactiveStyle, keyStyle, bracketStyle := tabStyles()
	if active {
		return activeStyle.Render(tab.Name)
	}
	pad := inactiveStyle.Render(" ")
	before := tab.Name[:tab.KeyPos]
	key := string(tab.Name[tab.KeyPos])
	after := tab.Name[tab.KeyPos+1:]
	return pad + inactiveStyle.Render(before) +
		bracketStyle.Render("[") + keyStyle.Render(key) + bracketStyle.Render("]") +
		inactiveStyle.Render(after) + pad
}

// TabVisualWidth returns the rendered width of a tab.
func TabVisualWidth(tab PageTab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// BrandWidth is the rendered width of the brand prefix.
func BrandWidth() int {
	return lipgloss.Width(Brand)
}

// RenderPageBar renders the brand and the page tabs as a single row.
func RenderPageBar(activeIdx, width int) string {
	t := theme.Active

	brandStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)

	parts := make([]string, len(Pages))
	for i, tab := range Pages {
		parts[i] = renderTab(tab, i == activeIdx)
	}

	row := brandStyle.Render(Brand) + strings.Join(parts, sepStyle.Render("│"))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).MaxWidth(width).Render(row)
}
