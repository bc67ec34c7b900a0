package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finchat/internal/cli"
	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/money"
	"github.com/theirongolddev/finchat/internal/tui/components"
	"github.com/theirongolddev/finchat/internal/tui/theme"
)

type insightsPage struct {
	pageState
	income   string
	persona  string
	expenses string
	goals    string
	result   finance.InsightReport
}

func newInsightsPage(persona model.Persona) *insightsPage {
	d := model.DefaultSpending()
	return &insightsPage{
		income:   amountText(d.Income),
		persona:  string(persona),
		expenses: model.FormatExpenses(d.Expenses),
		goals:    model.FormatGoals(d.Goals),
	}
}

func validGoals(s string) error {
	_, err := model.ParseGoals(s)
	return err
}

func (p *insightsPage) form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Monthly income").Value(&p.income),
			personaSelect("User type", &p.persona),
			huh.NewText().
				Title("Monthly expenses").
				Description("one per line: category = amount").
				Lines(8).
				Value(&p.expenses).
				Validate(validExpenses),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Financial goals").
				Description("one per line: name | amount | months").
				Lines(5).
				Value(&p.goals).
				Validate(validGoals),
		),
	)
}

func (p *insightsPage) data() (model.SpendingData, error) {
	expenses, err := model.ParseExpenses(p.expenses)
	if err != nil {
		return model.SpendingData{}, fmt.Errorf("expenses: %w", err)
	}
	goals, err := model.ParseGoals(p.goals)
	if err != nil {
		return model.SpendingData{}, fmt.Errorf("goals: %w", err)
	}
	return model.SpendingData{
		Income:   model.ParseAmount(p.income),
		Expenses: expenses,
		Goals:    goals,
		UserType: model.Persona(p.persona),
	}, nil
}

func (a App) renderInsightsPage(cw int) string {
	p := a.insights
	var b strings.Builder
	b.WriteString(pageHeader("Spending Insights & Analysis", "Detailed insights into your spending patterns and goal progress", cw))
	b.WriteString("\n")

	if in := a.inputCard(&p.pageState, "Spending details", "Analyzing spending...", cw); in != "" {
		b.WriteString(in)
		b.WriteString("\n")
	}
	if !p.hasResult || p.editing() {
		if !p.hasResult && !p.editing() && !p.loading {
			b.WriteString(hint("press e to enter your spending"))
		}
		return b.String()
	}

	fig := p.result.Figures
	b.WriteString(insightMetrics(fig, cw))
	b.WriteString("\n")

	half := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Spending vs Income", categoryBars(fig, components.CardInnerWidth(half[0])), half[0]),
		components.ContentCard("Goals", goalLines(fig), half[1]),
	}))
	b.WriteString("\n")

	inner := components.CardInnerWidth(cw)
	b.WriteString(components.ContentCard("Comprehensive Spending Analysis", cli.RenderBlocks(p.result.Text(), inner, blockStyles()), cw))
	b.WriteString("\n")
	b.WriteString(hint("e edit spending and goals"))
	return b.String()
}

func insightMetrics(fig finance.InsightFigures, cw int) string {
	t := theme.Active
	surplus := components.Metric{Label: "Surplus", Value: money.Format("$", fig.Surplus), Color: t.Balance(fig.Surplus)}
	if fig.Deficit {
		surplus.Label = "Deficit"
	}
	goals := components.Metric{Label: "Goals", Value: "All achievable", Color: t.Green}
	if !fig.GoalsAchievable {
		goals.Value = "Review needed"
		goals.Color = t.Orange
	}
	goals.Delta = fmt.Sprintf("%d goal(s)", len(fig.Goals))

	return components.MetricCardRow([]components.Metric{
		{Label: "Monthly Income", Value: money.Format("$", fig.MonthlyIncome)},
		{Label: "Expenses", Value: money.Format("$", fig.TotalExpenses), Delta: fmt.Sprintf("%d categories", len(fig.Breakdown))},
		surplus,
		{Label: "Savings Rate", Value: money.Percent(fig.SavingsRate)},
		goals,
	}, cw)
}

// categoryBars shows each category as a share of income, coloured against
// its benchmark ceiling where one exists.
func categoryBars(fig finance.InsightFigures, inner int) string {
	if len(fig.Breakdown) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Background(theme.Active.Surface).Render("No expenses")
	}
	ceilings := make(map[string]float64, len(finance.Benchmarks))
	for _, bm := range finance.Benchmarks {
		ceilings[bm.Category] = float64(bm.Ceiling)
	}

	labelW := 0
	for _, c := range fig.Breakdown {
		labelW = max(labelW, lipgloss.Width(c.Name))
	}
	labelW = min(labelW, 16)
	barW := max(inner-labelW-18, 4)

	lines := make([]string, 0, len(fig.Breakdown))
	for _, c := range fig.Breakdown {
		pct := money.Round(money.Share(c.Amount, fig.MonthlyIncome), 1)
		note := ""
		if ceil := ceilings[c.Name]; ceil > 0 {
			note = fmt.Sprintf("≤%.0f%%", ceil)
		}
		lines = append(lines, components.ShareBar(cli.Truncate(c.Name, labelW), pct, ceilings[c.Name], note, labelW, barW))
	}
	return strings.Join(lines, "\n")
}

func goalLines(fig finance.InsightFigures) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	okStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	badStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)

	if len(fig.Goals) == 0 {
		return mutedStyle.Render("No savings goals set")
	}
	lines := make([]string, 0, len(fig.Goals))
	for _, g := range fig.Goals {
		mark := okStyle.Render("✓")
		if !g.Achievable {
			mark = badStyle.Render("✗")
		}
		lines = append(lines, mark+nameStyle.Render(" "+g.Name)+
			mutedStyle.Render(fmt.Sprintf("  %s/month", money.Cents("$", g.MonthlyNeeded))))
	}
	return strings.Join(lines, "\n")
}
