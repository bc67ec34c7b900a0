package finance

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/theirongolddev/finchat/internal/format"
	"github.com/theirongolddev/finchat/internal/model"
)

func scenarioBudget(persona model.Persona) model.BudgetData {
	return model.BudgetData{
		Income: 4000,
		Expenses: model.NewExpenses(
			model.Expense{Category: "rent", Amount: 1200},
			model.Expense{Category: "food", Amount: 400},
			model.Expense{Category: "transportation", Amount: 300},
		),
		SavingsGoal: 500,
		Currency:    "$",
		UserType:    persona,
	}
}

func scenarioSpending() model.SpendingData {
	return model.SpendingData{
		Income: 5000,
		Expenses: model.NewExpenses(
			model.Expense{Category: "rent", Amount: 1500},
			model.Expense{Category: "food", Amount: 600},
		),
		Goals:    []model.Goal{{Name: "Emergency Fund", Amount: 10000, Months: 12}},
		UserType: model.PersonaProfessional,
	}
}

func mustContain(t *testing.T, text string, lines ...string) {
	t.Helper()
	for _, l := range lines {
		if !strings.Contains(text, l) {
			t.Errorf("missing %q in:\n%s", l, text)
		}
	}
}

func TestComputeBudgetScenario(t *testing.T) {
	fig := ComputeBudget(scenarioBudget(model.PersonaProfessional))
	if fig.TotalExpenses != 1900 {
		t.Errorf("TotalExpenses = %v, want 1900", fig.TotalExpenses)
	}
	if fig.DisposableIncome != 2100 {
		t.Errorf("DisposableIncome = %v, want 2100", fig.DisposableIncome)
	}
	if fig.AnnualIncome != 48000 {
		t.Errorf("AnnualIncome = %v, want 48000", fig.AnnualIncome)
	}
	if fig.AnnualExpenses != 22800 {
		t.Errorf("AnnualExpenses = %v, want 22800", fig.AnnualExpenses)
	}
	if fig.SavingsPotential != 1600 {
		t.Errorf("SavingsPotential = %v, want 1600", fig.SavingsPotential)
	}
	if fig.SavingsRate != 52.5 {
		t.Errorf("SavingsRate = %v, want 52.5", fig.SavingsRate)
	}
	if top := fig.TopCategories[0]; top.Name != "rent" || top.Share != 63.2 {
		t.Errorf("top = %+v, want rent at 63.2", top)
	}
}

func TestSummarizeBudgetProfessional(t *testing.T) {
	text := SummarizeBudget(scenarioBudget(model.PersonaProfessional)).Text()
	if !strings.HasPrefix(text, "**Professional Budget Analysis**\n\n**Executive Summary:**\n") {
		t.Fatalf("unexpected opening:\n%s", text)
	}
	mustContain(t, text,
		"Monthly Income: $4,000\n",
		"Annual Income: $48,000\n",
		"Total Monthly Expenses: $1,900\n",
		"Net Disposable Income: $2,100\n",
		"**Top 3 Spending Categories:**\n• rent: $1,200 (63.2%)\n• food: $400 (21.1%)\n• transportation: $300 (15.8%)\n",
		"Your current savings rate of 52.5% is excellent.",
		"**Professional Takeaway:**\nFocus on maximizing your savings rate while maintaining your quality of life.",
	)
}

func TestSummarizeBudgetStudentListsTwo(t *testing.T) {
	text := SummarizeBudget(scenarioBudget(model.PersonaStudent)).Text()
	mustContain(t, text,
		"**Student Budget Summary**",
		"Your monthly income of $4,000 provides a foundation",
		"**Top Spending Categories:**\n• rent: $1,200 (63.2%)\n• food: $400 (21.1%)\n\n",
		"With $2,100 remaining after expenses, you're in a position to work toward your $500 savings goal.",
	)
	if strings.Contains(text, "transportation: $300") {
		t.Errorf("student summary should list two categories:\n%s", text)
	}
}

func TestSummarizeBudgetFewCategories(t *testing.T) {
	data := scenarioBudget(model.PersonaProfessional)
	data.Expenses = model.NewExpenses(model.Expense{Category: "rent", Amount: 1000})
	text := SummarizeBudget(data).Text()
	mustContain(t, text, "**Top Spending Categories:**\n• rent: $1,000 (100.0%)\n\n")
}

func TestSummarizeBudgetEmpty(t *testing.T) {
	for _, p := range model.Personas {
		sum := SummarizeBudget(model.BudgetData{UserType: p})
		text := sum.Text()
		if strings.Contains(text, "NaN") || strings.Contains(text, "Inf") {
			t.Fatalf("%s: non-finite value in:\n%s", p, text)
		}
		mustContain(t, text, "• "+noCategories)
		if sum.Figures.SavingsRate != 0 || sum.Figures.TotalExpenses != 0 {
			t.Errorf("%s: figures = %+v, want zeros", p, sum.Figures)
		}
	}
}

func TestZeroTotalSharesAreZero(t *testing.T) {
	exp := model.NewExpenses(
		model.Expense{Category: "a", Amount: 0},
		model.Expense{Category: "b", Amount: 0},
	)
	for _, c := range Breakdown(exp) {
		if c.Share != 0 || math.IsNaN(c.Share) {
			t.Fatalf("share of %s = %v, want 0", c.Name, c.Share)
		}
	}
}

func TestSharesSumToHundred(t *testing.T) {
	for _, exp := range []model.Expenses{
		model.DefaultBudget().Expenses,
		model.DefaultSpending().Expenses,
		scenarioBudget("").Expenses,
	} {
		var sum float64
		for _, c := range Breakdown(exp) {
			sum += c.Share
		}
		if math.Abs(sum-100) > 0.05*float64(exp.Len()) {
			t.Errorf("shares sum to %v, want 100", sum)
		}
	}
}

func TestTopIsStableOnTies(t *testing.T) {
	exp := model.NewExpenses(
		model.Expense{Category: "b", Amount: 100},
		model.Expense{Category: "a", Amount: 100},
		model.Expense{Category: "c", Amount: 300},
		model.Expense{Category: "d", Amount: 100},
	)
	top := Top(Breakdown(exp), 3)
	var got []string
	for _, c := range top {
		got = append(got, c.Name)
	}
	if want := []string{"c", "b", "a"}; !slices.Equal(got, want) {
		t.Fatalf("Top = %v, want %v", got, want)
	}
}

func TestGenerateInsightsScenario(t *testing.T) {
	ins := GenerateInsights(scenarioSpending())
	fig := ins.Figures
	if fig.Surplus != 2900 {
		t.Errorf("Surplus = %v, want 2900", fig.Surplus)
	}
	if fig.SavingsRate != 58 {
		t.Errorf("SavingsRate = %v, want 58", fig.SavingsRate)
	}
	if g := fig.Goals[0]; g.MonthlyNeeded != 833.33 || !g.Achievable {
		t.Errorf("goal = %+v, want 833.33 achievable", g)
	}
	if !fig.GoalsAchievable || fig.Deficit {
		t.Errorf("GoalsAchievable=%v Deficit=%v", fig.GoalsAchievable, fig.Deficit)
	}

	mustContain(t, ins.Text(),
		"**Comprehensive Spending Analysis**\n\n**1. Spending Pattern Analysis**\n",
		"• Monthly Surplus: $2,900\n",
		"• Savings Rate: 58.0%\n",
		"**2. Category Deep Dive**\n• rent: $1,500 (71.4%)\n• food: $600 (28.6%)\n",
		"• Housing: 30.0% (recommended: <30%)",
		"• Transportation: 0% (recommended: <15%)",
		"• Food: 12.0% (recommended: <12%)",
		"• Emergency Fund: $10,000 in 12 months ($833/month) - Achievable: Yes",
		"**5. Risk Assessment**\n✅ Positive cash flow maintained",
		"• Reduce dining out by 20% to save $120/month",
		"**7. Action Plan**\n1. Automate savings transfers\n2. Use budgeting apps for tracking\n3. Review and adjust monthly\n4. Build emergency fund first",
		"**8. Long-term Strategy**\nFocus on increasing your savings rate to 20% of income",
	)
}

func TestInsightsSectionsInOrder(t *testing.T) {
	var headings []string
	for b := range format.Blocks(GenerateInsights(model.DefaultSpending()).Text()) {
		if b.Kind == format.Heading {
			headings = append(headings, b.Text)
		}
	}
	if len(headings) != 9 {
		t.Fatalf("headings = %v, want title plus 8 sections", headings)
	}
	for i, h := range headings[1:] {
		if !strings.HasPrefix(h, string(rune('1'+i))+". ") {
			t.Errorf("heading %d = %q, out of order", i+1, h)
		}
	}
}

func TestGoalBoundaryIsAchievable(t *testing.T) {
	data := model.SpendingData{
		Income:   1250,
		Expenses: model.NewExpenses(model.Expense{Category: "rent", Amount: 1000}),
		Goals:    []model.Goal{{Name: "Laptop", Amount: 1000, Months: 4}},
	}
	fig := ComputeInsights(data)
	if fig.Surplus != 250 || fig.Goals[0].MonthlyNeeded != 250 {
		t.Fatalf("surplus=%v needed=%v", fig.Surplus, fig.Goals[0].MonthlyNeeded)
	}
	if !fig.Goals[0].Achievable {
		t.Fatal("surplus equal to monthly need should be achievable")
	}

	data.Goals = append(data.Goals, model.Goal{Name: "Car", Amount: 3000, Months: 6})
	fig = ComputeInsights(data)
	if fig.Goals[1].Achievable || fig.GoalsAchievable {
		t.Fatalf("car goal should not be achievable: %+v", fig)
	}
}

func TestGoalWithoutMonths(t *testing.T) {
	g := AssessGoal(model.Goal{Name: "Now", Amount: 500, Months: 0}, 600)
	if g.MonthlyNeeded != 500 || !g.Achievable {
		t.Fatalf("goal = %+v, want full amount needed and achievable", g)
	}
}

func TestGoalLineRoundsOnce(t *testing.T) {
	data := model.SpendingData{
		Income:   8000,
		Expenses: model.NewExpenses(model.Expense{Category: "rent", Amount: 2000}),
		Goals:    []model.Goal{{Name: "Roof", Amount: 5993.94, Months: 12}},
	}
	rep := GenerateInsights(data)
	if got := rep.Figures.Goals[0].MonthlyNeeded; got != 499.5 {
		t.Fatalf("MonthlyNeeded = %v, want 499.5", got)
	}
	text := rep.Text()
	if !strings.Contains(text, "Roof: $5,993.94 in 12 months ($499/month)") {
		t.Errorf("goal line should round the raw monthly need once:\n%s", text)
	}
}

func TestInsightsDeficitAndEmpty(t *testing.T) {
	data := model.SpendingData{
		Income:   1000,
		Expenses: model.NewExpenses(model.Expense{Category: "rent", Amount: 1500}),
	}
	text := GenerateInsights(data).Text()
	mustContain(t, text,
		"• Monthly Surplus: -$500",
		"⚠️ Monthly deficit detected - immediate action required",
		"• No savings goals set",
	)

	empty := GenerateInsights(model.SpendingData{}).Text()
	if strings.Contains(empty, "NaN") || strings.Contains(empty, "Inf") {
		t.Fatalf("non-finite value in:\n%s", empty)
	}
	mustContain(t, empty, "• Savings Rate: 0.0%", "• "+noCategories)
}

const generalAdviceText = `**Personalized Financial Guidance**

Thank you for your question. As your personal finance assistant, I'm here to help you make informed financial decisions.

**General Financial Guidance:**
• Start with a budget to understand your money flow
• Build an emergency fund of 3-6 months expenses
• Pay off high-interest debt first
• Invest for long-term goals
• Review and adjust your plan regularly

**Next Steps:**
Feel free to ask specific questions about budgeting, saving, debt management, or investment planning. I can also help analyze your spending patterns.

**Remember:**
Personal finance is personal - what works for others may need adjustment for your unique situation.`

func TestGenerateAdvice(t *testing.T) {
	if got := GenerateAdvice("How do I budget?", model.PersonaProfessional); got != generalAdviceText {
		t.Fatalf("general advice =\n%s\nwant\n%s", got, generalAdviceText)
	}

	loan := GenerateAdvice("Paying off my STUDENT LOANS", model.PersonaStudent)
	mustContain(t, loan,
		"**Managing Student Loans While Saving**\n\n**Understanding Your Situation:**\n",
		"**Practical Steps:**\n1. **Build a small emergency fund** - Start with $500-1000 while paying loans\n",
		"5. **Take advantage of tax benefits** - Student loan interest deduction",
		"• Automate small savings amounts ($25-50/month)",
	)
}

func TestGenerateAdviceIgnoresPersona(t *testing.T) {
	for _, q := range []string{model.DefaultQuestion, "What about stocks?", ""} {
		a := GenerateAdvice(q, model.PersonaStudent)
		b := GenerateAdvice(q, model.PersonaProfessional)
		if a != b {
			t.Errorf("persona changed advice for %q", q)
		}
		if a != GenerateAdvice(q, model.PersonaStudent) {
			t.Errorf("advice for %q is not deterministic", q)
		}
	}
	if ClassifyQuestion("student  loan") != TopicGeneral {
		t.Error("substring match should be literal")
	}
}

func TestAnalyzeTextSeeded(t *testing.T) {
	a := AnalyzeText("text", rand.New(rand.NewPCG(7, 7)))
	b := AnalyzeText("text", rand.New(rand.NewPCG(7, 7)))
	if a.Sentiment != b.Sentiment || !slices.Equal(a.Keywords, b.Keywords) {
		t.Fatalf("same seed gave %+v and %+v", a, b)
	}

	label := a.Sentiment.Document.Label
	if a.Sentiment.Document.Score != SentimentScore[label] {
		t.Errorf("score %v does not match label %s", a.Sentiment.Document.Score, label)
	}
	if len(a.Keywords) != 3 {
		t.Fatalf("len(keywords) = %d, want 3", len(a.Keywords))
	}
	seen := map[string]bool{}
	for _, kw := range a.Keywords {
		if !slices.Contains(Vocabulary[:], kw.Text) || seen[kw.Text] {
			t.Errorf("keyword %q not from vocabulary or repeated", kw.Text)
		}
		seen[kw.Text] = true
		if kw.Relevance < 0.5 || kw.Relevance > 1 {
			t.Errorf("relevance %v out of range", kw.Relevance)
		}
	}
}

func TestAnalyzeTextEntities(t *testing.T) {
	a := AnalyzeText("I save $100 every Month and more each YEAR", nil)
	want := []model.Entity{
		{Text: "month", Type: model.EntityTime},
		{Text: "year", Type: model.EntityTime},
		{Text: "dollar", Type: model.EntityMoney},
	}
	if !slices.Equal(a.Entities, want) {
		t.Fatalf("entities = %+v, want %+v", a.Entities, want)
	}

	if got := AnalyzeText("nothing here", nil).Entities; len(got) != 0 {
		t.Fatalf("entities = %+v, want none", got)
	}
}

type fakeRecorder struct {
	ops     []string
	outputs []string
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, op, _ string, _ any, output string) error {
	f.ops = append(f.ops, op)
	f.outputs = append(f.outputs, output)
	return f.err
}

func TestServiceRecordsEncodedAnalysis(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewService(Options{Seed: 7, Recorder: rec})

	a, err := svc.AnalyzeText(context.Background(), "rent is due this month")
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.outputs) != 1 {
		t.Fatalf("recorded %d outputs, want 1", len(rec.outputs))
	}
	var got model.NLUAnalysis
	if err := json.Unmarshal([]byte(rec.outputs[0]), &got); err != nil {
		t.Fatalf("recorded output is not JSON: %v\n%s", err, rec.outputs[0])
	}
	if got.Sentiment != a.Sentiment || !slices.Equal(got.Keywords, a.Keywords) || !slices.Equal(got.Entities, a.Entities) {
		t.Errorf("recorded %+v, want %+v", got, a)
	}
}

func TestServiceRecordsEachCall(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	svc := NewService(Options{Seed: 1, Recorder: rec})
	ctx := context.Background()

	if _, err := svc.AnalyzeText(ctx, "hi"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GenerateAdvice(ctx, "q", model.PersonaStudent); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SummarizeBudget(ctx, model.DefaultBudget()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GenerateInsights(ctx, model.DefaultSpending()); err != nil {
		t.Fatal(err)
	}
	if want := []string{"nlu", "advice", "budget", "insights"}; !slices.Equal(rec.ops, want) {
		t.Fatalf("recorded %v, want %v", rec.ops, want)
	}
}

func TestServiceHonoursCancellation(t *testing.T) {
	svc := NewService(Options{LatencyScale: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.SummarizeBudget(ctx, model.DefaultBudget()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestServiceSeedIsReproducible(t *testing.T) {
	ctx := context.Background()
	a, _ := NewService(Options{Seed: 42}).AnalyzeText(ctx, "x")
	b, _ := NewService(Options{Seed: 42}).AnalyzeText(ctx, "x")
	if !slices.Equal(a.Keywords, b.Keywords) || a.Sentiment != b.Sentiment {
		t.Fatalf("seeded services differ: %+v vs %+v", a, b)
	}
}
