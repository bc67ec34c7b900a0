package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finchat/internal/tui/theme"
)

// ColorForScore returns green/yellow/orange/red for a score in [0,1],
// high scores being good.
func ColorForScore(score float64) lipgloss.Color {
	t := theme.Active
	switch {
	case score >= 0.8:
		return t.Green
	case score >= 0.6:
		return t.Yellow
	case score >= 0.4:
		return t.Orange
	default:
		return t.Red
	}
}

// ColorForShare colours a spending share against a benchmark percentage.
// A zero benchmark means none applies.
func ColorForShare(pct, benchmark float64) lipgloss.Color {
	t := theme.Active
	switch {
	case benchmark == 0:
		return t.Accent
	case pct > benchmark:
		return t.Orange
	default:
		return t.Green
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

func bar(frac float64, color lipgloss.Color, width int) string {
	b := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	b.EmptyColor = string(theme.Active.TextDim)
	return b.ViewAs(clamp01(frac))
}

// RelevanceBar renders a keyword relevance in [0,1] as a labelled bar.
func RelevanceBar(label string, relevance float64, labelW, barWidth int) string {
	t := theme.Active
	color := ColorForScore(relevance)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar(relevance, color, barWidth) +
		spaceStyle.Render(" ") +
		valueStyle.Render(fmt.Sprintf("%3.0f%%", clamp01(relevance)*100))
}

// ShareBar renders a spending category share (0-100) with an optional note.
func ShareBar(label string, pct, benchmark float64, note string, labelW, barWidth int) string {
	t := theme.Active
	color := ColorForShare(pct, benchmark)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	out := labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar(pct/100, color, barWidth) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
	if note != "" {
		out += spaceStyle.Render("  ") + noteStyle.Render(note)
	}
	return out
}
