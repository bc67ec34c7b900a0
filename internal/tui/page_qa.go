package tui

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finchat/internal/cli"
	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/tui/components"
	"github.com/theirongolddev/finchat/internal/tui/theme"
)

type qaPage struct {
	pageState
	question string
	persona  string
	asked    string
	answer   string
}

func newQAPage(persona model.Persona) *qaPage {
	return &qaPage{question: model.DefaultQuestion, persona: string(persona)}
}

func personaSelect(title string, value *string) *huh.Select[string] {
	opts := make([]huh.Option[string], len(model.Personas))
	for i, p := range model.Personas {
		opts[i] = huh.NewOption(p.Title(), string(p))
	}
	return huh.NewSelect[string]().Title(title).Options(opts...).Value(value)
}

func (p *qaPage) form() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Your financial question").
			Placeholder("e.g., How should I prioritize paying off debt vs saving for retirement?").
			Lines(3).
			Value(&p.question).
			Validate(requireText),
		personaSelect("I am a", &p.persona),
	))
}

func (a App) renderQAPage(cw int) string {
	p := a.qa
	var b strings.Builder
	b.WriteString(pageHeader("Personal Finance Q&A", "Ask any financial question and get personalized advice", cw))
	b.WriteString("\n")

	if in := a.inputCard(&p.pageState, "Ask a question", "Generating advice...", cw); in != "" {
		b.WriteString(in)
		b.WriteString("\n")
	}
	if !p.hasResult || p.editing() {
		if !p.hasResult && !p.editing() && !p.loading {
			b.WriteString(hint("press e to ask a question"))
		}
		return b.String()
	}

	t := theme.Active
	qStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Italic(true)
	inner := components.CardInnerWidth(cw)
	body := qStyle.Width(inner).Render("Q: "+p.asked) + "\n\n" + cli.RenderBlocks(p.answer, inner, blockStyles())
	b.WriteString(components.ContentCard("Financial Advisor Response", body, cw))
	b.WriteString("\n")
	b.WriteString(hint("e ask another question"))
	return b.String()
}
