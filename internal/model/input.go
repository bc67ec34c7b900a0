package model

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errNoSeparator = errors.New("expected category = amount")
	errNoCategory  = errors.New("missing category")
	errGoalFields  = errors.New("expected name | amount | months")
)

// ParseExpense parses "category=amount" or "category = amount".
// The amount is coerced with ParseAmount.
func ParseExpense(s string) (Expense, error) {
	name, amount, ok := strings.Cut(s, "=")
	if !ok {
		return Expense{}, fmt.Errorf("%q: %w", s, errNoSeparator)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Expense{}, fmt.Errorf("%q: %w", s, errNoCategory)
	}
	return Expense{Category: name, Amount: ParseAmount(amount)}, nil
}

// ParseExpenses reads one expense per line. Blank lines and lines starting
// with "#" are skipped. A repeated category overwrites the earlier amount
// and keeps its position.
func ParseExpenses(text string) (Expenses, error) {
	var out Expenses
	err := eachLine(text, func(line string) error {
		e, err := ParseExpense(line)
		if err != nil {
			return err
		}
		out = out.Set(e.Category, e.Amount)
		return nil
	})
	return out, err
}

// FormatExpenses is the inverse of ParseExpenses.
func FormatExpenses(e Expenses) string {
	lines := make([]string, 0, len(e))
	for _, x := range e {
		lines = append(lines, x.Category+" = "+formatFloat(x.Amount))
	}
	return strings.Join(lines, "\n")
}

// ParseGoal parses "name | amount | months". Months may be omitted.
func ParseGoal(s string) (Goal, error) {
	parts := strings.Split(s, "|")
	if len(parts) < 2 || len(parts) > 3 {
		return Goal{}, fmt.Errorf("%q: %w", s, errGoalFields)
	}
	g := Goal{
		Name:   strings.TrimSpace(parts[0]),
		Amount: ParseAmount(parts[1]),
	}
	if g.Name == "" {
		return Goal{}, fmt.Errorf("%q: missing goal name", s)
	}
	if len(parts) == 3 {
		g.Months = ParseAmount(parts[2])
	}
	return g, nil
}

// ParseGoals reads one goal per line, skipping blanks and "#" comments.
func ParseGoals(text string) ([]Goal, error) {
	var out []Goal
	err := eachLine(text, func(line string) error {
		g, err := ParseGoal(line)
		if err != nil {
			return err
		}
		out = append(out, g)
		return nil
	})
	return out, err
}

// FormatGoals is the inverse of ParseGoals.
func FormatGoals(goals []Goal) string {
	lines := make([]string, 0, len(goals))
	for _, g := range goals {
		lines = append(lines, g.Name+" | "+formatFloat(g.Amount)+" | "+formatFloat(g.Months))
	}
	return strings.Join(lines, "\n")
}

func eachLine(text string, fn func(string) error) error {
	sc := bufio.NewScanner(strings.NewReader(text))
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(line); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
