package finance

import (
	"fmt"

	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/money"
	"github.com/theirongolddev/finchat/internal/report"
)

// GoalFigures is the feasibility of one savings goal.
type GoalFigures struct {
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	Months        float64 `json:"months"`
	MonthlyNeeded float64 `json:"monthly_needed"`
	Achievable    bool    `json:"achievable"`
}

// InsightFigures are the numbers a spending insights report is rendered from.
type InsightFigures struct {
	MonthlyIncome   float64       `json:"monthly_income"`
	TotalExpenses   float64       `json:"total_expenses"`
	Surplus         float64       `json:"surplus"`
	SavingsRate     float64       `json:"savings_rate"`
	Deficit         bool          `json:"deficit"`
	GoalsAchievable bool          `json:"goals_achievable"`
	Goals           []GoalFigures `json:"goals"`
	Breakdown       []Category    `json:"breakdown"`
}

// InsightReport pairs the rendered report with its figures.
type InsightReport struct {
	Persona model.Persona  `json:"persona"`
	Report  report.Report  `json:"report"`
	Figures InsightFigures `json:"analysis"`
}

// Text renders the report.
func (r InsightReport) Text() string { return r.Report.Text() }

// Benchmark is a recommended ceiling for one category as a share of income.
type Benchmark struct {
	Label    string
	Category string
	Ceiling  int
}

// Benchmarks are compared against income in the report, in display order.
var Benchmarks = []Benchmark{
	{Label: "Housing", Category: "rent", Ceiling: 30},
	{Label: "Transportation", Category: "transportation", Ceiling: 15},
	{Label: "Food", Category: "food", Ceiling: 12},
}

const (
	insightsCurrency = "$"
	diningCut        = 0.2
)

// AssessGoal computes the monthly amount a goal needs and whether surplus
// covers it. A goal with no positive month count needs its full amount now.
func AssessGoal(g model.Goal, surplus float64) GoalFigures {
	needed := monthlyNeed(g.Amount, g.Months)
	return GoalFigures{
		Name:          g.Name,
		Amount:        g.Amount,
		Months:        g.Months,
		MonthlyNeeded: money.Round(needed, 2),
		Achievable:    surplus >= needed,
	}
}

// monthlyNeed is the unrounded amount a goal needs each month.
func monthlyNeed(amount, months float64) float64 {
	if months > 0 {
		return amount / months
	}
	return amount
}

// ComputeInsights derives the insight figures. GoalsAchievable holds when
// every goal is achievable, including when there are none.
func ComputeInsights(data model.SpendingData) InsightFigures {
	total := data.Expenses.Total()
	surplus := data.Income - total
	fig := InsightFigures{
		MonthlyIncome:   data.Income,
		TotalExpenses:   total,
		Surplus:         surplus,
		SavingsRate:     money.Round(money.Share(surplus, data.Income), 1),
		Deficit:         surplus < 0,
		GoalsAchievable: true,
		Goals:           make([]GoalFigures, 0, len(data.Goals)),
		Breakdown:       Breakdown(data.Expenses),
	}
	for _, g := range data.Goals {
		gf := AssessGoal(g, surplus)
		fig.GoalsAchievable = fig.GoalsAchievable && gf.Achievable
		fig.Goals = append(fig.Goals, gf)
	}
	return fig
}

// GenerateInsights renders the eight-part spending analysis.
func GenerateInsights(data model.SpendingData) InsightReport {
	fig := ComputeInsights(data)
	cur := insightsCurrency

	categories := make([]string, 0, len(fig.Breakdown))
	for _, c := range fig.Breakdown {
		categories = append(categories, categoryLine(c, cur))
	}
	if len(categories) == 0 {
		categories = append(categories, noCategories)
	}

	benchmarks := make([]string, 0, len(Benchmarks))
	for _, b := range Benchmarks {
		share := "0"
		if amt, ok := data.Expenses.Get(b.Category); ok && amt != 0 {
			share = money.Fixed(money.Share(amt, data.Income), 1)
		}
		benchmarks = append(benchmarks, fmt.Sprintf("%s: %s%% (recommended: <%d%%)", b.Label, share, b.Ceiling))
	}

	goals := make([]string, 0, len(fig.Goals))
	for _, g := range fig.Goals {
		goals = append(goals, fmt.Sprintf("%s: %s in %s months (%s%s/month) - Achievable: %s",
			g.Name, money.Format(cur, g.Amount), money.Amount(g.Months),
			cur, money.Fixed(monthlyNeed(g.Amount, g.Months), 0), yesNo(g.Achievable)))
	}
	if len(goals) == 0 {
		goals = append(goals, "No savings goals set")
	}

	risk := "✅ Positive cash flow maintained"
	if fig.Deficit {
		risk = "⚠️ Monthly deficit detected - immediate action required"
	}

	food, _ := data.Expenses.Get("food")

	r := report.New("Comprehensive Spending Analysis").
		Bullets("1. Spending Pattern Analysis",
			"Monthly Income: "+money.Format(cur, fig.MonthlyIncome),
			"Total Expenses: "+money.Format(cur, fig.TotalExpenses),
			"Monthly Surplus: "+money.Format(cur, fig.Surplus),
			"Savings Rate: "+money.Percent(fig.SavingsRate),
		).
		Bullets("2. Category Deep Dive", categories...).
		Bullets("3. Benchmark Comparison", benchmarks...).
		Bullets("4. Goal Feasibility", goals...).
		Paragraph("5. Risk Assessment", risk).
		Bullets("6. Optimization Opportunities",
			fmt.Sprintf("Reduce dining out by 20%% to save %s%s/month", cur, money.Fixed(food*diningCut, 0)),
			"Review subscription services for potential cuts",
			"Consider carpooling or public transit options",
		).
		Numbered("7. Action Plan",
			"Automate savings transfers",
			"Use budgeting apps for tracking",
			"Review and adjust monthly",
			"Build emergency fund first",
		).
		Paragraph("8. Long-term Strategy",
			"Focus on increasing your savings rate to 20% of income while maintaining your current lifestyle quality.")

	return InsightReport{
		Persona: model.ParsePersona(string(data.UserType)),
		Report:  *r,
		Figures: fig,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
