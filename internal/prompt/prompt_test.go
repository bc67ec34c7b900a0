package prompt

import (
	"strings"
	"testing"

	"github.com/theirongolddev/finchat/internal/model"
)

func contains(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("missing %q in:\n%s", w, got)
		}
	}
}

func TestSimplePersonaFallback(t *testing.T) {
	student := Simple("q?", "Student")
	contains(t, student, "speaking to a college student", "User Question: q?")

	other := Simple("q?", "retiree")
	contains(t, other, "You are a helpful personal finance assistant.")
}

func TestWithNLU(t *testing.T) {
	a := model.NLUAnalysis{
		Sentiment: model.Sentiment{Document: model.DocumentSentiment{Score: 0.2, Label: model.SentimentNegative}},
		Keywords:  []model.Keyword{{Text: "debt", Relevance: 0.9}, {Text: "loan", Relevance: 0.7}},
		Entities:  []model.Entity{{Text: "month", Type: model.EntityTime}},
	}
	got := WithNLU("How do I pay my loan?", "professional", a)
	contains(t, got,
		"concerned or stressed",
		"working professional with more complex financial goals",
		"Context: Key topics mentioned: debt, loan\nImportant details: month\n",
		"User Question: How do I pay my loan?",
	)

	bare := WithNLU("hi", "unknown", model.NLUAnalysis{})
	contains(t, bare,
		"Provide balanced and objective financial advice.",
		"Provide helpful financial advice.",
		"Context: General financial inquiry\n",
	)
}

func TestBudgetPrompt(t *testing.T) {
	data := model.DefaultBudget()
	pro := Budget(data)
	contains(t, pro,
		"Create a professional budget analysis:",
		"- Monthly Income: $4,000.00\n",
		"- Annual Income: $48,000.00\n",
		"- Total Monthly Expenses: $2,400.00\n",
		"- Available Surplus: $1,100.00\n",
		"- rent: $1,200.00 (50.0% of total expenses)\n",
	)
	if n := strings.Count(pro, "% of total expenses)"); n != 5 {
		t.Errorf("allocation lists %d categories, want 5", n)
	}

	data.UserType = model.PersonaStudent
	contains(t, Budget(data), "Create a student-friendly budget summary:", "- After Expenses: $1,600.00\n")
}

func TestInsightsPrompt(t *testing.T) {
	got := Insights(model.DefaultSpending())
	contains(t, got,
		"for a professional:",
		"- Savings Rate: 32.0%\n",
		"Fixed Expenses ($1,650.00):\n  - rent: $1,500.00\n  - insurance: $150.00\n",
		"- Emergency Fund: $10,000 in 12 months ($833.33/month) - Achievable: Yes\n",
		"- Vacation: $3,000 in 6 months ($500.00/month) - Achievable: Yes\n",
		"- Housing: 30.0% (recommended: <30%)\n",
	)

	empty := Insights(model.SpendingData{})
	contains(t, empty, "for a general:", "- No specific goals provided\n", "- Housing: 0.0%")
}
