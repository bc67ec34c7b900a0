package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finchat/internal/cli"
	"github.com/theirongolddev/finchat/internal/tui/components"
	"github.com/theirongolddev/finchat/internal/tui/theme"
)

type feature struct {
	page        Page
	title       string
	description string
}

var features = []feature{
	{PageNLU, "NLU Analysis", "Analyze the sentiment and key concepts in your financial questions using natural language understanding."},
	{PageQA, "Q&A Assistant", "Get personalized financial advice by asking questions in plain language."},
	{PageBudget, "Budget Summary", "Get a comprehensive analysis of your income, expenses, and savings with personalized recommendations."},
	{PageInsights, "Spending Insights", "Dive into your spending patterns and get actionable insights for financial optimization."},
}

func (a App) renderHomePage(cw int) string {
	t := theme.Active

	var b strings.Builder
	b.WriteString(pageHeader("Personal Finance Chatbot", "Financial guidance for students and professionals", cw))
	b.WriteString("\n")

	cols := 2
	if cw < 90 {
		cols = 1
	}
	widths := components.LayoutRow(cw, cols)
	for i := 0; i < len(features); i += cols {
		var row []string
		for j := 0; j < cols && i+j < len(features); j++ {
			f := features[i+j]
			row = append(row, components.FeatureCard(f.title, f.description, components.Pages[f.page].Key, widths[j]))
		}
		b.WriteString(components.CardRow(row))
		b.WriteString("\n")
	}

	note := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background).Width(cw)
	b.WriteString(note.Render("  Reports are computed from fixed templates. The NLU analysis is a placeholder and does not read your text."))
	return b.String()
}

// pageHeader renders a page title with a muted subtitle.
func pageHeader(title, subtitle string, cw int) string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	return lipgloss.NewStyle().Width(cw).Background(t.Background).Render(
		"\n " + titleStyle.Render(title) + "\n " + subStyle.Render(subtitle) + "\n")
}

// hint is a dim single line below a card.
func hint(s string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background).Render("  " + s)
}

// blockStyles draws report text in the active theme.
func blockStyles() cli.BlockStyles {
	t := theme.Active
	base := lipgloss.NewStyle().Background(t.Surface)
	return cli.BlockStyles{
		Heading: base.Foreground(t.AccentBright).Bold(true),
		Text:    base.Foreground(t.TextPrimary),
		Marker:  base.Foreground(t.Accent),
		Bold:    base.Foreground(t.TextPrimary).Bold(true),
	}
}

// inputCard shows the page form, the spinner while loading, or nothing.
func (a App) inputCard(st *pageState, title, busy string, cw int) string {
	switch {
	case st.editing():
		return components.ContentCard(title, st.input.View(), cw) + "\n" +
			hint("enter next field / submit · esc close")
	case st.loading:
		t := theme.Active
		busyStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("", a.spinner.View()+busyStyle.Render(" "+busy), cw)
	}
	return ""
}
