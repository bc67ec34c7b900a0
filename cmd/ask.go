package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finchat/internal/cli"
	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/prompt"
)

var (
	flagAskPersona    string
	flagAskShowPrompt bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask a personal finance question",
	Args:  cobra.ArbitraryArgs,
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&flagAskPersona, "persona", "u", "", "User type: student or professional (default from config)")
	askCmd.Flags().BoolVar(&flagAskShowPrompt, "show-prompt", false, "Also print the language model prompt built for the question")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		question = model.DefaultQuestion
	}
	persona := flagAskPersona
	if persona == "" {
		persona = cfg.General.Persona
	}
	p := model.ParsePersona(persona)

	b, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	ctx := cmdContext(cmd)
	var built string
	if flagAskShowPrompt {
		built = prompt.Simple(question, string(p))
		if a, err := b.advisor.AnalyzeText(ctx, question); err == nil {
			built = prompt.WithNLU(question, string(p), a)
		}
	}

	progress("Generating advice...")
	answer, err := b.advisor.GenerateAdvice(ctx, question, p)
	if err != nil {
		return err
	}

	if flagJSON {
		out := map[string]string{
			"question":  question,
			"user_type": string(p),
			"response":  answer,
		}
		if built != "" {
			out["prompt"] = built
		}
		return printJSON(out)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(strings.ToUpper(p.Title()) + " ADVICE"))
	fmt.Println()
	fmt.Printf("  Q: %s\n\n", question)
	fmt.Println(indent(cli.RenderBlocks(answer, 76, cli.DefaultBlockStyles())))
	printPrompt(built)
	return nil
}

// printPrompt prints a built prompt under its own title. Empty prompts print nothing.
func printPrompt(built string) {
	if built == "" {
		return
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle("PROMPT"))
	fmt.Println()
	fmt.Println(indent(built))
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
