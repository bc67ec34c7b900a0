// Package model defines the finance records shared by the service, the API and the TUI.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Expense is one spending category and its monthly amount.
type Expense struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Expenses is an insertion-ordered set of categories.
// Categories are unique: Set replaces an existing entry in place.
type Expenses []Expense

// NewExpenses builds an Expenses set. Later duplicates overwrite earlier ones.
func NewExpenses(pairs ...Expense) Expenses {
	var e Expenses
	for _, p := range pairs {
		e = e.Set(p.Category, p.Amount)
	}
	return e
}

// Set adds or replaces a category, keeping the original position on replace.
func (e Expenses) Set(category string, amount float64) Expenses {
	for i := range e {
		if e[i].Category == category {
			e[i].Amount = amount
			return e
		}
	}
	return append(e, Expense{Category: category, Amount: amount})
}

// Remove drops a category if present.
func (e Expenses) Remove(category string) Expenses {
	out := e[:0:0]
	for _, x := range e {
		if x.Category != category {
			out = append(out, x)
		}
	}
	return out
}

// Get returns the amount for a category.
func (e Expenses) Get(category string) (float64, bool) {
	for _, x := range e {
		if x.Category == category {
			return x.Amount, true
		}
	}
	return 0, false
}

// Total sums all amounts.
func (e Expenses) Total() float64 {
	var sum float64
	for _, x := range e {
		sum += x.Amount
	}
	return sum
}

// Len returns the number of categories.
func (e Expenses) Len() int { return len(e) }

// MarshalJSON encodes the set as a JSON object in insertion order.
func (e Expenses) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, x := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(x.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(x.Amount, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (e *Expenses) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*e = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expenses: expected object, got %v", tok)
	}

	var out Expenses
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expenses: expected string key, got %v", keyTok)
		}
		var amount float64
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("expenses: amount for %q: %w", key, err)
		}
		out = out.Set(key, amount)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*e = out
	return nil
}

// ParseAmount coerces user input to a number. Non-numeric text becomes 0.
// Thousands separators and a leading currency symbol are tolerated.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€£¥")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
