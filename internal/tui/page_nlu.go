package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/tui/components"
	"github.com/theirongolddev/finchat/internal/tui/theme"
)

type nluPage struct {
	pageState
	text   string
	result model.NLUAnalysis
}

func newNLUPage() *nluPage {
	return &nluPage{text: model.DefaultNLUText}
}

func requireText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("enter some text")
	}
	return nil
}

func (p *nluPage) form() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Your financial question or statement").
			Placeholder("e.g., How can I save money while paying off student loans?").
			Lines(4).
			Value(&p.text).
			Validate(requireText),
	))
}

func (a App) renderNLUPage(cw int) string {
	p := a.nlu
	var b strings.Builder
	b.WriteString(pageHeader("Natural Language Understanding", "See how your financial question is analyzed", cw))
	b.WriteString("\n")

	if in := a.inputCard(&p.pageState, "Analyze text", "Analyzing...", cw); in != "" {
		b.WriteString(in)
		b.WriteString("\n")
	}
	if !p.hasResult {
		if !p.editing() && !p.loading {
			b.WriteString(hint("press e to enter text"))
		}
		return b.String()
	}
	if p.editing() {
		return b.String()
	}

	b.WriteString(renderAnalysis(p.result, cw))
	b.WriteString("\n")
	b.WriteString(hint("e edit · keywords and sentiment are placeholders, entities come from your text"))
	return b.String()
}

func renderAnalysis(r model.NLUAnalysis, cw int) string {
	t := theme.Active
	widths := components.LayoutRow(cw, 3)

	doc := r.Sentiment.Document
	labelStyle := lipgloss.NewStyle().Foreground(t.Sentiment(doc.Label)).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	sentiment := labelStyle.Render(strings.ToUpper(string(doc.Label))) + "\n" +
		mutedStyle.Render(fmt.Sprintf("confidence %.0f%%", doc.Score*100))

	inner := components.CardInnerWidth(widths[1])
	labelW := 0
	for _, k := range r.Keywords {
		labelW = max(labelW, lipgloss.Width(k.Text))
	}
	barW := max(inner-labelW-6, 4)
	var kw []string
	for _, k := range r.Keywords {
		kw = append(kw, components.RelevanceBar(k.Text, k.Relevance, labelW, barW))
	}
	if len(kw) == 0 {
		kw = append(kw, mutedStyle.Render("No keywords"))
	}

	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	typeStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface)
	var ents []string
	for _, e := range r.Entities {
		ents = append(ents, textStyle.Render(e.Text)+mutedStyle.Render("  ")+typeStyle.Render(string(e.Type)))
	}
	if len(ents) == 0 {
		ents = append(ents, mutedStyle.Render("No entities found"))
	}

	return components.CardRow([]string{
		components.ContentCard("Sentiment Analysis", sentiment, widths[0]),
		components.ContentCard("Key Topics", strings.Join(kw, "\n"), widths[1]),
		components.ContentCard("Identified Entities", strings.Join(ents, "\n"), widths[2]),
	})
}
