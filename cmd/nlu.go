package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finchat/internal/cli"
	"github.com/theirongolddev/finchat/internal/model"
)

var nluCmd = &cobra.Command{
	Use:   "nlu [text...]",
	Short: "Analyze sentiment, keywords and entities in a piece of text",
	Args:  cobra.ArbitraryArgs,
	RunE:  runNLU,
}

func init() {
	rootCmd.AddCommand(nluCmd)
}

func runNLU(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		text = model.DefaultNLUText
	}

	b, err := newBackend(loadConfig())
	if err != nil {
		return err
	}
	defer b.Close()

	progress("Analyzing text...")
	a, err := b.advisor.AnalyzeText(cmdContext(cmd), text)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(a)
	}
	printAnalysis(text, a)
	return nil
}

func printAnalysis(text string, a model.NLUAnalysis) {
	doc := a.Sentiment.Document

	fmt.Println()
	fmt.Println(cli.RenderTitle("TEXT ANALYSIS"))
	fmt.Println()
	fmt.Printf("  %s\n\n", cli.Truncate(text, 70))
	fmt.Println(cli.RenderKeyValue("Sentiment", fmt.Sprintf("%s (%.2f)", strings.ToUpper(string(doc.Label)), doc.Score)))
	fmt.Println()

	rows := make([][]string, 0, len(a.Keywords))
	for _, k := range a.Keywords {
		rows = append(rows, []string{k.Text, fmt.Sprintf("%.0f%%", k.Relevance*100)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Key Topics",
		Headers: []string{"Keyword", "Relevance"},
		Rows:    rows,
	}))

	if len(a.Entities) == 0 {
		fmt.Println("\n  No entities detected.")
		return
	}
	rows = rows[:0]
	for _, e := range a.Entities {
		rows = append(rows, []string{e.Text, string(e.Type)})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Identified Entities",
		Headers: []string{"Text", "Type"},
		Rows:    rows,
	}))
}

// cmdContext returns the command's context, which cobra leaves nil when
// Execute is called without one.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
