// Package prompt builds the language-model prompts that accompany each
// advisor operation. They are returned alongside results so a caller can see
// what a generative backend would be asked.
package prompt

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/money"
)

const general = "general"

var personaContext = map[string]string{
	"student":      "You are a helpful financial advisor speaking to a college student. Use simple language and focus on practical, low-cost solutions.",
	"professional": "You are a financial advisor for working professionals. Provide strategic advice and consider more complex financial instruments.",
	general:        "You are a helpful personal finance assistant. Provide clear, actionable advice.",
}

var personaInstruction = map[string]string{
	"student":      "Tailor your advice for a college student with limited income and simple financial needs.",
	"professional": "Provide advice suitable for a working professional with more complex financial goals.",
	general:        "Provide advice suitable for the general population.",
}

var sentimentContext = map[model.SentimentLabel]string{
	model.SentimentNegative: "The user seems concerned or stressed about their financial situation. Provide reassuring and supportive advice.",
	model.SentimentPositive: "The user appears optimistic about their financial situation. Provide encouraging guidance to maintain their momentum.",
}

// Simple builds a persona-flavoured prompt for a question.
func Simple(question, persona string) string {
	ctx, ok := personaContext[strings.ToLower(persona)]
	if !ok {
		ctx = personaContext[general]
	}
	return fmt.Sprintf(`%s

User Question: %s

Please respond clearly and concisely with actionable financial advice. Keep your response focused on personal finance topics only.
`, ctx, question)
}

// WithNLU builds a prompt enriched with the sentiment, keywords and entities
// of an analysis of the question.
func WithNLU(question, persona string, a model.NLUAnalysis) string {
	sentiment, ok := sentimentContext[a.Sentiment.Document.Label]
	if !ok {
		sentiment = "Provide balanced and objective financial advice."
	}

	topics := "General financial inquiry"
	if len(a.Keywords) > 0 {
		words := make([]string, 0, len(a.Keywords))
		for _, kw := range a.Keywords {
			words = append(words, kw.Text)
		}
		topics = "Key topics mentioned: " + strings.Join(words, ", ")
	}

	var details string
	if len(a.Entities) > 0 {
		names := make([]string, 0, len(a.Entities))
		for _, e := range a.Entities {
			names = append(names, e.Text)
		}
		details = "Important details: " + strings.Join(names, ", ")
	}

	instr, ok := personaInstruction[strings.ToLower(persona)]
	if !ok {
		instr = "Provide helpful financial advice."
	}

	return fmt.Sprintf(`You are a personal finance assistant. %s

%s

Context: %s
%s

User Question: %s

Provide clear, actionable financial advice. Focus only on personal finance topics and avoid medical, legal, or therapeutic advice.
`, sentiment, instr, topics, details, question)
}

const promptTopCategories = 5

// Budget builds the budget summary prompt for the data's persona.
func Budget(data model.BudgetData) string {
	fig := finance.ComputeBudget(data)
	cur := data.Currency
	if cur == "" {
		cur = "$"
	}
	top := finance.Top(fig.Breakdown, promptTopCategories)

	var b strings.Builder
	if model.ParsePersona(string(data.UserType)) == model.PersonaStudent {
		b.WriteString("Create a student-friendly budget summary:\n\nFINANCIAL SNAPSHOT:\n")
		fmt.Fprintf(&b, "- Monthly Income: %s\n", money.Cents(cur, fig.MonthlyIncome))
		fmt.Fprintf(&b, "- Annual Income: %s\n", money.Cents(cur, fig.AnnualIncome))
		fmt.Fprintf(&b, "- Total Monthly Expenses: %s\n", money.Cents(cur, fig.TotalExpenses))
		fmt.Fprintf(&b, "- After Expenses: %s\n", money.Cents(cur, fig.DisposableIncome))
		fmt.Fprintf(&b, "- Savings Goal: %s\n", money.Cents(cur, fig.SavingsGoal))
		fmt.Fprintf(&b, "- Surplus After Savings: %s\n", money.Cents(cur, fig.DisposableIncome-fig.SavingsGoal))
		b.WriteString("\nTOP SPENDING CATEGORIES:\n")
		writeCategories(&b, top, cur, "% of expenses")
		b.WriteString(`
Please provide a summary with these 5 sections in order:
1. **Top Spending Categories** (list the 2 highest)
2. **Money-Saving Tips** (3-4 practical suggestions)
3. **Summary** (2-3 sentences about their financial situation)
4. **Tips** (2-3 actionable next steps)
5. **Conclusion** (encouraging closing statement)

Keep the language simple and encouraging for a student audience.
`)
		return b.String()
	}

	b.WriteString("Create a professional budget analysis:\n\nEXECUTIVE SUMMARY:\n")
	fmt.Fprintf(&b, "- Monthly Income: %s\n", money.Cents(cur, fig.MonthlyIncome))
	fmt.Fprintf(&b, "- Annual Income: %s\n", money.Cents(cur, fig.AnnualIncome))
	fmt.Fprintf(&b, "- Total Monthly Expenses: %s\n", money.Cents(cur, fig.TotalExpenses))
	fmt.Fprintf(&b, "- Net Disposable Income: %s\n", money.Cents(cur, fig.DisposableIncome))
	fmt.Fprintf(&b, "- Target Savings: %s\n", money.Cents(cur, fig.SavingsGoal))
	fmt.Fprintf(&b, "- Available Surplus: %s\n", money.Cents(cur, fig.DisposableIncome-fig.SavingsGoal))
	b.WriteString("\nEXPENSE ALLOCATION:\n")
	writeCategories(&b, top, cur, "% of total expenses")
	b.WriteString(`
Provide analysis with these sections:
1. **Top 3 Spending Categories** (with strategic insights)
2. **Optimization Strategies** (3-4 professional recommendations)
3. **Financial Health Summary** (analytical overview)
4. **Strategic Recommendations** (growth-focused advice)
5. **Professional Takeaway** (key actionable insight)

Use professional language and focus on strategic financial planning.
`)
	return b.String()
}

func writeCategories(b *strings.Builder, cats []finance.Category, cur, suffix string) {
	for _, c := range cats {
		fmt.Fprintf(b, "- %s: %s (%s%s)\n", c.Name, money.Cents(cur, c.Amount), money.Fixed(c.Share, 1), suffix)
	}
}

// FixedCategories are counted as fixed costs in the insights prompt.
var FixedCategories = []string{"rent", "insurance", "loan_payment"}

func isFixed(category string) bool {
	for _, f := range FixedCategories {
		if strings.EqualFold(category, f) {
			return true
		}
	}
	return false
}

// Insights builds the spending insights prompt.
func Insights(data model.SpendingData) string {
	fig := finance.ComputeInsights(data)
	const cur = "$"

	var fixed, variable []model.Expense
	var fixedTotal, variableTotal float64
	for _, e := range data.Expenses {
		if isFixed(e.Category) {
			fixed = append(fixed, e)
			fixedTotal += e.Amount
		} else {
			variable = append(variable, e)
			variableTotal += e.Amount
		}
	}

	who := string(data.UserType)
	if who == "" {
		who = general
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate comprehensive spending insights for a %s:\n\n", who)
	b.WriteString("# FINANCIAL DATA ANALYSIS\n\n## Income & Expense Overview\n")
	fmt.Fprintf(&b, "- Monthly Income: %s\n", money.Cents(cur, fig.MonthlyIncome))
	fmt.Fprintf(&b, "- Total Monthly Expenses: %s\n", money.Cents(cur, fig.TotalExpenses))
	fmt.Fprintf(&b, "- Monthly Surplus: %s\n", money.Cents(cur, fig.Surplus))
	fmt.Fprintf(&b, "- Savings Rate: %s\n", money.Percent(fig.SavingsRate))

	b.WriteString("\n## Expense Breakdown\n")
	fmt.Fprintf(&b, "Fixed Expenses (%s):\n", money.Cents(cur, fixedTotal))
	for _, e := range fixed {
		fmt.Fprintf(&b, "  - %s: %s\n", e.Category, money.Cents(cur, e.Amount))
	}
	fmt.Fprintf(&b, "\nVariable Expenses (%s):\n", money.Cents(cur, variableTotal))
	for _, e := range variable {
		fmt.Fprintf(&b, "  - %s: %s\n", e.Category, money.Cents(cur, e.Amount))
	}

	b.WriteString("\n## Financial Goals\n")
	if len(fig.Goals) == 0 {
		b.WriteString("- No specific goals provided\n")
	}
	for _, g := range fig.Goals {
		ok := "No"
		if g.Achievable {
			ok = "Yes"
		}
		fmt.Fprintf(&b, "- %s: %s in %s months (%s/month) - Achievable: %s\n",
			g.Name, money.Format(cur, g.Amount), money.Amount(g.Months), money.Cents(cur, g.MonthlyNeeded), ok)
	}

	b.WriteString("\n## Benchmarks & Risk Analysis\n")
	for _, bm := range finance.Benchmarks {
		amt, _ := data.Expenses.Get(bm.Category)
		fmt.Fprintf(&b, "- %s: %s%% (recommended: <%d%%)\n", bm.Label, money.Fixed(money.Share(amt, data.Income), 1), bm.Ceiling)
	}

	b.WriteString(`
Provide detailed analysis in these 8 structured sections:

1. **Spending Pattern Analysis** - Fixed vs Variable breakdown
2. **Category Deep Dive** - Needs vs Wants classification
3. **Benchmark Comparison** - How expenses compare to recommended percentages
4. **Goal Feasibility** - Analysis of financial goals achievability
5. **Risk Assessment** - Identify concerning spending ratios
6. **Optimization Opportunities** - Specific areas for improvement
7. **Action Plan** - 3-4 concrete next steps
8. **Long-term Strategy** - Forward-looking recommendations

Use specific numbers from the data and provide actionable insights.
`)
	return b.String()
}
