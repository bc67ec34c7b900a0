package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finchat/internal/cli"
	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/money"
	"github.com/theirongolddev/finchat/internal/prompt"
)

var (
	flagFile        string
	flagIncome      float64
	flagExpenses    []string
	flagPersona     string
	flagSavingsGoal float64
	flagCurrency    string
	flagShowPrompt  bool
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Generate a monthly budget summary",
	Long: "Generate a budget summary from --file (JSON) or from flags.\n" +
		"Flags override the sample budget; any --expense replaces its expense list.",
	Example: "  finchat budget --income 4000 --expense rent=1200 --expense food=400 --savings-goal 500",
	RunE:    runBudget,
}

func init() {
	addBudgetFlags(budgetCmd)
	rootCmd.AddCommand(budgetCmd)
}

func addBudgetFlags(c *cobra.Command) {
	c.Flags().StringVarP(&flagFile, "file", "f", "", "Read the budget from a JSON file")
	c.Flags().Float64Var(&flagIncome, "income", 0, "Monthly income")
	c.Flags().StringArrayVarP(&flagExpenses, "expense", "e", nil, "Expense as category=amount (repeatable)")
	c.Flags().Float64Var(&flagSavingsGoal, "savings-goal", 0, "Monthly savings goal")
	c.Flags().StringVar(&flagCurrency, "currency", "", "Currency symbol (default from config)")
	c.Flags().StringVarP(&flagPersona, "persona", "u", "", "User type: student or professional")
	c.Flags().BoolVar(&flagShowPrompt, "show-prompt", false, "Also print the language model prompt built for the budget")
}

// readInput decodes a JSON file into v.
func readInput(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied input file
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// parseExpenseFlags parses repeated category=amount flags, later categories
// overwriting earlier ones in place.
func parseExpenseFlags(values []string) (model.Expenses, error) {
	var out model.Expenses
	for _, v := range values {
		e, err := model.ParseExpense(v)
		if err != nil {
			return nil, fmt.Errorf("--expense %q: %w", v, err)
		}
		out = out.Set(e.Category, e.Amount)
	}
	return out, nil
}

func budgetInput(cmd *cobra.Command, persona, currency string) (model.BudgetData, error) {
	data := model.DefaultBudget()
	data.UserType = model.ParsePersona(persona)
	data.Currency = currency
	if flagFile != "" {
		if err := readInput(flagFile, &data); err != nil {
			return data, err
		}
	}

	f := cmd.Flags()
	if f.Changed("income") {
		data.Income = flagIncome
	}
	if f.Changed("savings-goal") {
		data.SavingsGoal = flagSavingsGoal
	}
	if f.Changed("currency") {
		data.Currency = flagCurrency
	}
	if f.Changed("persona") {
		data.UserType = model.ParsePersona(flagPersona)
	}
	if len(flagExpenses) > 0 {
		e, err := parseExpenseFlags(flagExpenses)
		if err != nil {
			return data, err
		}
		data.Expenses = e
	}
	return data, nil
}

func runBudget(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	data, err := budgetInput(cmd, cfg.General.Persona, cfg.General.Currency)
	if err != nil {
		return err
	}

	b, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	progress("Analyzing budget...")
	sum, err := b.advisor.SummarizeBudget(cmdContext(cmd), data)
	if err != nil {
		return err
	}
	var built string
	if flagShowPrompt {
		built = prompt.Budget(data)
	}
	if flagJSON {
		return printJSON(struct {
			Summary       string                `json:"summary"`
			FinancialData finance.BudgetFigures `json:"financial_data"`
			Prompt        string                `json:"prompt,omitempty"`
		}{sum.Text(), sum.Figures, built})
	}

	cur := data.Currency
	if cur == "" {
		cur = "$"
	}
	fig := sum.Figures

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET SUMMARY  %s", sum.Persona.Title())))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Monthly Income", money.Format(cur, fig.MonthlyIncome)},
			{"Annual Income", money.Format(cur, fig.AnnualIncome)},
			{"---"},
			{"Monthly Expenses", money.Format(cur, fig.TotalExpenses)},
			{"Annual Expenses", money.Format(cur, fig.AnnualExpenses)},
			{"---"},
			{"Disposable", money.Format(cur, fig.DisposableIncome)},
			{"Savings Goal", money.Format(cur, fig.SavingsGoal)},
			{"Savings Potential", money.Format(cur, fig.SavingsPotential)},
			{"Savings Rate", money.Percent(fig.SavingsRate)},
		},
	}))
	fmt.Println()
	printBreakdown(fig.Breakdown, cur)
	fmt.Println()
	fmt.Println(indent(cli.RenderBlocks(sum.Text(), 76, cli.DefaultBlockStyles())))

	if fig.DisposableIncome < 0 {
		fmt.Println()
		fmt.Println(cli.RenderWarning("expenses exceed income"))
	}
	printPrompt(built)
	return nil
}

func printBreakdown(cats []finance.Category, cur string) {
	if len(cats) == 0 {
		fmt.Println("  No expenses entered.")
		return
	}
	maxAmount := 0.0
	for _, c := range cats {
		maxAmount = max(maxAmount, c.Amount)
	}
	fmt.Println("  Expense Breakdown")
	for _, c := range cats {
		note := fmt.Sprintf("%s (%s)", money.Format(cur, c.Amount), money.Percent(c.Share))
		fmt.Println(cli.RenderHorizontalBar(c.Name, c.Amount, maxAmount, 30, note))
	}
}
