package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/finchat/internal/cli"
	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/money"
	"github.com/theirongolddev/finchat/internal/tui/components"
	"github.com/theirongolddev/finchat/internal/tui/theme"
)

type budgetPage struct {
	pageState
	income      string
	savingsGoal string
	currency    string
	persona     string
	expenses    string
	result      finance.BudgetSummary
}

func amountText(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newBudgetPage(persona model.Persona, currency string) *budgetPage {
	d := model.DefaultBudget()
	return &budgetPage{
		income:      amountText(d.Income),
		savingsGoal: amountText(d.SavingsGoal),
		currency:    currency,
		persona:     string(persona),
		expenses:    model.FormatExpenses(d.Expenses),
	}
}

func validExpenses(s string) error {
	_, err := model.ParseExpenses(s)
	return err
}

func (p *budgetPage) form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Monthly income").Value(&p.income),
			huh.NewInput().Title("Monthly savings goal").Value(&p.savingsGoal),
			huh.NewInput().Title("Currency symbol").CharLimit(3).Value(&p.currency),
			personaSelect("User type", &p.persona),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Monthly expenses").
				Description("one per line: category = amount").
				Lines(8).
				Value(&p.expenses).
				Validate(validExpenses),
		),
	)
}

func (p *budgetPage) data() (model.BudgetData, error) {
	expenses, err := model.ParseExpenses(p.expenses)
	if err != nil {
		return model.BudgetData{}, fmt.Errorf("expenses: %w", err)
	}
	return model.BudgetData{
		Income:      model.ParseAmount(p.income),
		Expenses:    expenses,
		SavingsGoal: model.ParseAmount(p.savingsGoal),
		Currency:    strings.TrimSpace(p.currency),
		UserType:    model.Persona(p.persona),
	}, nil
}

func (a App) renderBudgetPage(cw int) string {
	p := a.budget
	var b strings.Builder
	b.WriteString(pageHeader("Budget Summary Generator", "Provide your financial information for a budget analysis", cw))
	b.WriteString("\n")

	if in := a.inputCard(&p.pageState, "Budget details", "Analyzing budget...", cw); in != "" {
		b.WriteString(in)
		b.WriteString("\n")
	}
	if !p.hasResult || p.editing() {
		if !p.hasResult && !p.editing() && !p.loading {
			b.WriteString(hint("press e to enter your budget"))
		}
		return b.String()
	}

	b.WriteString(budgetMetrics(p.result, currencyOr(p.currency), cw))
	b.WriteString("\n")
	inner := components.CardInnerWidth(cw)
	b.WriteString(components.ContentCard("Budget Analysis Results", cli.RenderBlocks(p.result.Text(), inner, blockStyles()), cw))
	b.WriteString("\n")
	b.WriteString(hint("e edit budget"))
	return b.String()
}

func currencyOr(c string) string {
	if c = strings.TrimSpace(c); c != "" {
		return c
	}
	return "$"
}

func budgetMetrics(s finance.BudgetSummary, cur string, cw int) string {
	t := theme.Active
	fig := s.Figures

	disposable := components.Metric{
		Label: "Disposable",
		Value: money.Format(cur, fig.DisposableIncome),
		Delta: fmt.Sprintf("goal %s", money.Format(cur, fig.SavingsGoal)),
		Color: t.Balance(fig.DisposableIncome),
	}

	return components.MetricCardRow([]components.Metric{
		{Label: "Monthly Income", Value: money.Format(cur, fig.MonthlyIncome), Delta: money.Format(cur, fig.AnnualIncome) + "/yr"},
		{Label: "Expenses", Value: money.Format(cur, fig.TotalExpenses), Delta: money.Percent(money.Share(fig.TotalExpenses, fig.MonthlyIncome)) + " of income"},
		disposable,
		{Label: "Savings Rate", Value: money.Percent(fig.SavingsRate), Delta: fmt.Sprintf("%d categories", len(fig.Breakdown))},
	}, cw)
}
