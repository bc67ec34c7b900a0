package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finchat/internal/cli"
	"github.com/theirongolddev/finchat/internal/client"
	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/store"
)

var (
	flagHistoryLimit int
	flagHistoryKind  string
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List recorded reports, or show one by id",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 20, "Max entries to list (0 = all)")
	historyCmd.Flags().StringVarP(&flagHistoryKind, "kind", "k", "", "Filter by operation (nlu, advice, budget, insights)")
	rootCmd.AddCommand(historyCmd)
}

// historySource reads history from the remote API or the local database.
type historySource interface {
	Recent(ctx context.Context, limit int, kind string) ([]store.Entry, error)
	Get(ctx context.Context, id string) (store.Entry, error)
}

type remoteHistory struct{ b *backend }

func (r remoteHistory) Recent(ctx context.Context, limit int, kind string) ([]store.Entry, error) {
	return r.b.remote.History(ctx, limit, kind)
}

func (r remoteHistory) Get(ctx context.Context, id string) (store.Entry, error) {
	return r.b.remote.HistoryEntry(ctx, id)
}

func validKind(kind string) error {
	if kind == "" {
		return nil
	}
	for _, op := range finance.Operations {
		if string(op) == kind {
			return nil
		}
	}
	return fmt.Errorf("unknown --kind %q", kind)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := validKind(flagHistoryKind); err != nil {
		return err
	}
	cfg := loadConfig()
	b, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	var src historySource
	switch {
	case b.remote != nil:
		src = remoteHistory{b}
	case b.history != nil:
		src = b.history
	default:
		fmt.Println("\n  History is disabled.")
		fmt.Println("  Set [history] enabled = true in the config, or drop --no-history.")
		return nil
	}

	ctx := cmdContext(cmd)
	if len(args) == 1 {
		e, err := src.Get(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("no history entry %q", args[0])
		}
		if err != nil {
			return err
		}
		return printEntry(e)
	}

	entries, err := src.Recent(ctx, flagHistoryLimit, flagHistoryKind)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Println("\n  No reports recorded yet.")
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			e.Kind,
			e.Persona,
			cli.FormatAge(e.CreatedAt, now),
			cli.Truncate(cli.FirstLine(e.Output), 32),
		})
	}
	title := fmt.Sprintf("HISTORY  %d entries", len(entries))
	if b.history != nil {
		if total, err := b.history.Count(ctx, flagHistoryKind); err == nil && total > len(entries) {
			title = fmt.Sprintf("HISTORY  %d of %s", len(entries), cli.FormatNumber(int64(total)))
		}
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Kind", "Persona", "Age", "Output"},
		Rows:    rows,
	}))
	fmt.Println("\n  Show one with: finchat history <id>")
	return nil
}

func printEntry(e store.Entry) error {
	if flagJSON {
		return printJSON(e)
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", e.Kind, e.CreatedAt.Local().Format(time.DateTime))))
	fmt.Println()
	fmt.Println(cli.RenderKeyValue("ID", e.ID))
	if e.Persona != "" {
		fmt.Println(cli.RenderKeyValue("Persona", e.Persona))
	}
	fmt.Println(cli.RenderKeyValue("Input", cli.Truncate(string(e.Input), 60)))
	fmt.Println()
	fmt.Println(indent(cli.RenderBlocks(e.Output, 76, cli.DefaultBlockStyles())))
	return nil
}
