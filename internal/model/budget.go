package model

import "strings"

// Persona selects the report template. It does not change computed figures.
type Persona string

const (
	PersonaStudent      Persona = "student"
	PersonaProfessional Persona = "professional"
)

// Personas lists the supported personas in display order.
var Personas = []Persona{PersonaStudent, PersonaProfessional}

// ParsePersona is case-insensitive. Unknown values select the professional template.
func ParsePersona(s string) Persona {
	if strings.EqualFold(strings.TrimSpace(s), string(PersonaStudent)) {
		return PersonaStudent
	}
	return PersonaProfessional
}

// Title returns the capitalised persona name.
func (p Persona) Title() string {
	if p == PersonaStudent {
		return "Student"
	}
	return "Professional"
}

// BudgetData is the input to a budget summary.
type BudgetData struct {
	Income      float64  `json:"income"`
	Expenses    Expenses `json:"expenses"`
	SavingsGoal float64  `json:"savings_goal"`
	Currency    string   `json:"currency"`
	UserType    Persona  `json:"user_type"`
}

// Goal is a savings target spread over a number of months.
type Goal struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Months float64 `json:"months"`
}

// SpendingData is the input to a spending insights report.
type SpendingData struct {
	Income   float64  `json:"income"`
	Expenses Expenses `json:"expenses"`
	Goals    []Goal   `json:"goals"`
	UserType Persona  `json:"user_type"`
}

// DefaultBudget returns the budget page starting values.
func DefaultBudget() BudgetData {
	return BudgetData{
		Income: 4000,
		Expenses: NewExpenses(
			Expense{"rent", 1200},
			Expense{"food", 400},
			Expense{"transportation", 300},
			Expense{"utilities", 150},
			Expense{"entertainment", 200},
			Expense{"shopping", 150},
		),
		SavingsGoal: 500,
		Currency:    "$",
		UserType:    PersonaProfessional,
	}
}

// DefaultSpending returns the insights page starting values.
func DefaultSpending() SpendingData {
	return SpendingData{
		Income: 5000,
		Expenses: NewExpenses(
			Expense{"rent", 1500},
			Expense{"food", 600},
			Expense{"transportation", 400},
			Expense{"utilities", 200},
			Expense{"entertainment", 300},
			Expense{"shopping", 250},
			Expense{"insurance", 150},
		),
		Goals: []Goal{
			{Name: "Emergency Fund", Amount: 10000, Months: 12},
			{Name: "Vacation", Amount: 3000, Months: 6},
		},
		UserType: PersonaProfessional,
	}
}

// Default page inputs for the text-driven pages.
const (
	DefaultNLUText  = "I need help with saving money each month while paying off my student loans"
	DefaultQuestion = "How can I save money while paying off student loans?"
)
