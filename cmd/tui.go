package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/finchat/internal/config"
	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/tui"
	"github.com/theirongolddev/finchat/internal/tui/theme"
)

var flagPage string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive finance assistant",
	RunE:  runTUI,
}

func init() {
	registerTUIFlags(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}

func registerTUIFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagPage, "page", "home", "Start page (home, nlu, qa, budget, insights)")
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor so background fills render in every terminal
	lipgloss.SetColorProfile(termenv.TrueColor)

	b, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	app := tui.NewApp(b.advisor, tui.Options{
		Start:    tui.ParsePage(flagPage),
		Persona:  model.ParsePersona(cfg.General.Persona),
		Currency: cfg.General.Currency,
		Source:   b.source(),
		Setup:    !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
