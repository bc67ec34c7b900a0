package finance

import (
	"fmt"

	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/money"
	"github.com/theirongolddev/finchat/internal/report"
)

// BudgetFigures are the numbers a budget summary is rendered from.
type BudgetFigures struct {
	MonthlyIncome    float64    `json:"monthly_income"`
	AnnualIncome     float64    `json:"annual_income"`
	TotalExpenses    float64    `json:"total_expenses"`
	AnnualExpenses   float64    `json:"annual_expenses"`
	DisposableIncome float64    `json:"monthly_disposable"`
	SavingsGoal      float64    `json:"savings_goal"`
	SavingsPotential float64    `json:"savings_potential"`
	SavingsRate      float64    `json:"savings_rate"`
	Breakdown        []Category `json:"breakdown"`
	TopCategories    []Category `json:"top_categories"`
}

// BudgetSummary pairs the rendered report with its figures.
type BudgetSummary struct {
	Persona model.Persona `json:"persona"`
	Report  report.Report `json:"report"`
	Figures BudgetFigures `json:"financial_data"`
}

// Text renders the report.
func (s BudgetSummary) Text() string { return s.Report.Text() }

const (
	topStudent      = 2
	topProfessional = 3
	healthyRatio    = 0.2
)

// ComputeBudget derives the budget figures. It never fails: a zero income
// gives a 0 savings rate and a zero total gives every category a 0 share.
func ComputeBudget(data model.BudgetData) BudgetFigures {
	total := data.Expenses.Total()
	disposable := data.Income - total
	breakdown := Breakdown(data.Expenses)
	return BudgetFigures{
		MonthlyIncome:    data.Income,
		AnnualIncome:     data.Income * 12,
		TotalExpenses:    total,
		AnnualExpenses:   total * 12,
		DisposableIncome: disposable,
		SavingsGoal:      data.SavingsGoal,
		SavingsPotential: max(0, disposable-data.SavingsGoal),
		SavingsRate:      money.Round(money.Share(disposable, data.Income), 1),
		Breakdown:        breakdown,
		TopCategories:    Top(breakdown, topProfessional),
	}
}

// SummarizeBudget renders the persona's budget template.
func SummarizeBudget(data model.BudgetData) BudgetSummary {
	fig := ComputeBudget(data)
	persona := model.ParsePersona(string(data.UserType))
	cur := data.Currency
	if cur == "" {
		cur = "$"
	}

	var r *report.Report
	if persona == model.PersonaStudent {
		r = studentBudget(fig, cur)
	} else {
		r = professionalBudget(fig, cur)
	}
	return BudgetSummary{Persona: persona, Report: *r, Figures: fig}
}

func topLines(top []Category, n int, cur string) []string {
	if len(top) == 0 {
		return []string{noCategories}
	}
	lines := make([]string, 0, n)
	for i, c := range top {
		if i == n {
			break
		}
		lines = append(lines, categoryLine(c, cur))
	}
	return lines
}

func studentBudget(fig BudgetFigures, cur string) *report.Report {
	return report.New("Student Budget Summary").
		Paragraph("Financial Overview:",
			fmt.Sprintf("Your monthly income of %s provides a foundation for your financial goals. After analyzing your spending patterns, here are the key insights:",
				money.Format(cur, fig.MonthlyIncome))).
		Bullets("Top Spending Categories:", topLines(fig.TopCategories, topStudent, cur)...).
		Bullets("Money-Saving Tips:",
			"Consider meal planning to reduce food costs",
			"Look for student discounts on transportation and entertainment",
			"Share textbooks or buy used when possible",
			"Use campus resources like gym and library instead of paid alternatives",
		).
		Paragraph("Summary:",
			fmt.Sprintf("With %s remaining after expenses, you're in a position to work toward your %s savings goal.",
				money.Format(cur, fig.DisposableIncome), money.Format(cur, fig.SavingsGoal))).
		Bullets("Tips:",
			"Set up automatic transfers to savings",
			"Track expenses using a budgeting app",
			"Review and adjust monthly",
		).
		Paragraph("Conclusion:",
			"You're building great financial habits early - keep up the good work!")
}

func professionalBudget(fig BudgetFigures, cur string) *report.Report {
	heading := "Top 3 Spending Categories:"
	if len(fig.TopCategories) < topProfessional {
		heading = "Top Spending Categories:"
	}
	verdict := "good but could be improved"
	if fig.MonthlyIncome != 0 && fig.DisposableIncome/fig.MonthlyIncome >= healthyRatio {
		verdict = "excellent"
	}

	return report.New("Professional Budget Analysis").
		Paragraph("Executive Summary:",
			"Monthly Income: "+money.Format(cur, fig.MonthlyIncome),
			"Annual Income: "+money.Format(cur, fig.AnnualIncome),
			"Total Monthly Expenses: "+money.Format(cur, fig.TotalExpenses),
			"Net Disposable Income: "+money.Format(cur, fig.DisposableIncome),
		).
		Bullets(heading, topLines(fig.TopCategories, topProfessional, cur)...).
		Bullets("Optimization Strategies:",
			"Negotiate insurance rates for potential savings",
			"Consider high-yield savings accounts for emergency fund",
			"Review subscription services quarterly",
			"Implement the 50/30/20 budgeting rule",
		).
		Paragraph("Financial Health Summary:",
			fmt.Sprintf("Your current savings rate of %s is %s.", money.Percent(fig.SavingsRate), verdict)).
		Bullets("Strategic Recommendations:",
			"Automate investments and savings",
			"Consider tax-advantaged retirement accounts",
			"Build 6-month emergency fund",
			"Explore additional income streams",
		).
		Paragraph("Professional Takeaway:",
			"Focus on maximizing your savings rate while maintaining your quality of life.")
}
