// Package finance computes budget figures and renders the fixed report
// templates for the four advisor operations.
package finance

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/money"
)

// Category is one expense line with its share of total expenses, in percent
// rounded to one decimal.
type Category struct {
	Name   string  `json:"category"`
	Amount float64 `json:"amount"`
	Share  float64 `json:"share"`
}

// Breakdown lists every category in input order with its share of the
// total. A zero total gives every category a 0 share.
func Breakdown(expenses model.Expenses) []Category {
	total := expenses.Total()
	out := make([]Category, 0, expenses.Len())
	for _, e := range expenses {
		out = append(out, Category{
			Name:   e.Category,
			Amount: e.Amount,
			Share:  money.Round(money.Share(e.Amount, total), 1),
		})
	}
	return out
}

// Top returns at most n categories ordered by amount, largest first. Ties
// keep input order.
func Top(breakdown []Category, n int) []Category {
	sorted := slices.Clone(breakdown)
	slices.SortStableFunc(sorted, func(a, b Category) int {
		return cmp.Compare(b.Amount, a.Amount)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// categoryLine renders "name: $amount (share%)".
func categoryLine(c Category, currency string) string {
	return fmt.Sprintf("%s: %s (%s)", c.Name, money.Format(currency, c.Amount), money.Percent(c.Share))
}

const noCategories = "Insufficient data: add at least one expense category"
