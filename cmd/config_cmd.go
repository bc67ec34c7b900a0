package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finchat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(cfg)
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Persona:  %s\n", cfg.General.Persona)
	fmt.Printf("    Currency: %s\n", cfg.General.Currency)
	if cfg.General.Seed != 0 {
		fmt.Printf("    Seed:     %d\n", cfg.General.Seed)
	}
	if u := config.GetAPIURL(cfg); u != "" {
		fmt.Printf("    API URL:  %s\n", u)
	} else {
		fmt.Println("    API URL:  not set (computing locally)")
	}
	fmt.Println()

	fmt.Println("  [Latency]")
	if cfg.Latency.Enabled {
		fmt.Printf("    Simulated delay: on (x%.2g)\n", cfg.Latency.Scale)
	} else {
		fmt.Println("    Simulated delay: off")
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:      %s\n", cfg.Server.Addr)
	fmt.Printf("    CORS origins: %s\n", strings.Join(cfg.Server.CORSOrigins, ", "))
	fmt.Println()

	fmt.Println("  [History]")
	if cfg.History.Enabled {
		fmt.Printf("    Database: %s\n", config.HistoryPath(cfg))
	} else {
		fmt.Println("    Database: disabled")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `finchat setup` to reconfigure.")
	return nil
}
