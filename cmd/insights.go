package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finchat/internal/cli"
	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/money"
	"github.com/theirongolddev/finchat/internal/prompt"
)

var flagGoals []string

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Analyze spending against income and savings goals",
	Long: "Generate spending insights from --file (JSON) or from flags.\n" +
		"Flags override the sample data; any --expense or --goal replaces its list.",
	Example: `  finchat insights --income 5000 -e rent=1500 -e food=600 --goal "Emergency Fund|10000|12"`,
	RunE:    runInsights,
}

func init() {
	addInsightsFlags(insightsCmd)
	rootCmd.AddCommand(insightsCmd)
}

func addInsightsFlags(c *cobra.Command) {
	c.Flags().StringVarP(&flagFile, "file", "f", "", "Read spending data from a JSON file")
	c.Flags().Float64Var(&flagIncome, "income", 0, "Monthly income")
	c.Flags().StringArrayVarP(&flagExpenses, "expense", "e", nil, "Expense as category=amount (repeatable)")
	c.Flags().StringArrayVarP(&flagGoals, "goal", "g", nil, `Goal as "name|amount|months" (repeatable)`)
	c.Flags().StringVarP(&flagPersona, "persona", "u", "", "User type: student or professional")
	c.Flags().BoolVar(&flagShowPrompt, "show-prompt", false, "Also print the language model prompt built for the analysis")
}

func spendingInput(cmd *cobra.Command, persona string) (model.SpendingData, error) {
	data := model.DefaultSpending()
	data.UserType = model.ParsePersona(persona)
	if flagFile != "" {
		if err := readInput(flagFile, &data); err != nil {
			return data, err
		}
	}

	f := cmd.Flags()
	if f.Changed("income") {
		data.Income = flagIncome
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
	if len(flagGoals) > 0 {
		goals := make([]model.Goal, 0, len(flagGoals))
		for _, v := range flagGoals {
			g, err := model.ParseGoal(v)
			if err != nil {
				return data, fmt.Errorf("--goal %q: %w", v, err)
			}
			goals = append(goals, g)
		}
		data.Goals = goals
	}
	return data, nil
}

func runInsights(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	data, err := spendingInput(cmd, cfg.General.Persona)
	if err != nil {
		return err
	}

	b, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	progress("Analyzing spending...")
	rep, err := b.advisor.GenerateInsights(cmdContext(cmd), data)
	if err != nil {
		return err
	}
	var built string
	if flagShowPrompt {
		built = prompt.Insights(data)
	}
	if flagJSON {
		return printJSON(struct {
			Insights string                 `json:"insights"`
			Analysis finance.InsightFigures `json:"analysis"`
			Prompt   string                 `json:"prompt,omitempty"`
		}{rep.Text(), rep.Figures, built})
	}

	fig := rep.Figures
	surplusLabel := "Surplus"
	if fig.Deficit {
		surplusLabel = "Deficit"
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPENDING INSIGHTS  %s", rep.Persona.Title())))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Monthly Income", money.Format("$", fig.MonthlyIncome)},
			{"Monthly Expenses", money.Format("$", fig.TotalExpenses)},
			{surplusLabel, money.Format("$", fig.Surplus)},
			{"Savings Rate", money.Percent(fig.SavingsRate)},
		},
	}))

	if len(fig.Goals) > 0 {
		rows := make([][]string, 0, len(fig.Goals))
		for _, g := range fig.Goals {
			rows = append(rows, []string{g.Name, money.Format("$", g.Amount), money.Cents("$", g.MonthlyNeeded), yesNo(g.Achievable)})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Goals",
			Headers: []string{"Goal", "Target", "Per Month", "Achievable"},
			Rows:    rows,
		}))
	}
	fmt.Println()
	fmt.Println(indent(cli.RenderBlocks(rep.Text(), 76, cli.DefaultBlockStyles())))
	printPrompt(built)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
