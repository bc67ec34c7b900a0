package model

import (
	"errors"
	"strings"
	"testing"
)

func TestParseExpenses(t *testing.T) {
	text := `
# monthly
rent = 1,200
food=400
transportation = abc
rent = 1300
`
	e, err := ParseExpenses(text)
	if err != nil {
		t.Fatalf("ParseExpenses: %v", err)
	}
	want := Expenses{{"rent", 1300}, {"food", 400}, {"transportation", 0}}
	if len(e) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(e), len(want), e)
	}
	for i := range want {
		if e[i] != want[i] {
			t.Errorf("e[%d] = %+v, want %+v", i, e[i], want[i])
		}
	}
}

func TestParseExpensesReportsLine(t *testing.T) {
	_, err := ParseExpenses("rent = 1\n\nfood 400")
	if !errors.Is(err, errNoSeparator) {
		t.Fatalf("err = %v, want errNoSeparator", err)
	}
	if !strings.HasPrefix(err.Error(), "line 3:") {
		t.Errorf("err = %q, want line 3 prefix", err)
	}

	if _, err := ParseExpense(" = 5"); !errors.Is(err, errNoCategory) {
		t.Errorf("err = %v, want errNoCategory", err)
	}
}

func TestExpensesTextRoundTrip(t *testing.T) {
	in := DefaultBudget().Expenses
	out, err := ParseExpenses(FormatExpenses(in))
	if err != nil {
		t.Fatalf("ParseExpenses: %v", err)
	}
	if FormatExpenses(out) != FormatExpenses(in) {
		t.Errorf("got %q, want %q", FormatExpenses(out), FormatExpenses(in))
	}
	if first := strings.SplitN(FormatExpenses(in), "\n", 2)[0]; first != "rent = 1200" {
		t.Errorf("first line = %q, want %q", first, "rent = 1200")
	}
}

func TestParseGoals(t *testing.T) {
	goals, err := ParseGoals("Emergency Fund | 10000 | 12\nVacation|$3,000")
	if err != nil {
		t.Fatalf("ParseGoals: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("got %d goals, want 2", len(goals))
	}
	if goals[0] != (Goal{Name: "Emergency Fund", Amount: 10000, Months: 12}) {
		t.Errorf("goals[0] = %+v", goals[0])
	}
	if goals[1] != (Goal{Name: "Vacation", Amount: 3000}) {
		t.Errorf("goals[1] = %+v", goals[1])
	}

	for _, bad := range []string{"only a name", "a|b|c|d", " | 5 | 1"} {
		if _, err := ParseGoal(bad); err == nil {
			t.Errorf("ParseGoal(%q) succeeded, want error", bad)
		}
	}
}

func TestFormatGoals(t *testing.T) {
	got := FormatGoals(DefaultSpending().Goals)
	want := "Emergency Fund | 10000 | 12\nVacation | 3000 | 6"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
