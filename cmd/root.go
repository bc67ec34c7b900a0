// Package cmd implements the finchat CLI commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/finchat/internal/client"
	"github.com/theirongolddev/finchat/internal/config"
	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/store"
)

var (
	flagAPIURL    string
	flagSeed      uint64
	flagNoHistory bool
	flagNoDelay   bool
	flagQuiet     bool
	flagJSON      bool
	flagLogLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "finchat",
	Short: "Personal finance chatbot",
	Long: "Analyze financial text, ask for advice, and generate budget summaries\n" +
		"and spending insights, from the terminal or over HTTP.",
	PersistentPreRunE: setupLogging,
	SilenceUsage:      true,
	RunE:              runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Use a remote finchat API instead of computing locally")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "Fix the NLU random source (0 = random)")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "Do not record generated reports")
	rootCmd.PersistentFlags().BoolVar(&flagNoDelay, "no-delay", false, "Skip the simulated processing delay")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	registerTUIFlags(rootCmd)
}

// setupLogging points the global zerolog logger at stderr, or at a file in
// the cache dir for commands that own the terminal.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := zerolog.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q", flagLogLevel)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	if ownsTerminal(cmd) {
		out = io.Discard
		path := filepath.Join(config.CacheDir(), "finchat.log")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil { //nolint:gosec // fixed path under the cache dir
				out = f
			}
		}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}

// ownsTerminal reports whether cmd draws a full-screen UI.
func ownsTerminal(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "finchat", "tui", "setup":
		return true
	}
	return false
}

// loadConfig reads the config file, falling back to defaults with a warning.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Str("path", config.ConfigPath()).Msg("using default config")
	}
	return cfg
}

func apiURL(cfg config.Config) string {
	if flagAPIURL != "" {
		return flagAPIURL
	}
	return config.GetAPIURL(cfg)
}

// backend is the advisor a command talks to plus the history it records into.
// history is nil when recording is disabled or the advisor is remote.
type backend struct {
	advisor finance.Advisor
	remote  *client.Client
	history *store.History
}

func (b *backend) Close() {
	if b.history != nil {
		_ = b.history.Close()
	}
}

// openHistory opens the local history database, or returns nil when history
// is disabled. A database that cannot be opened is logged and skipped.
func openHistory(cfg config.Config) *store.History {
	if flagNoHistory || !cfg.History.Enabled {
		return nil
	}
	h, err := store.Open(config.HistoryPath(cfg))
	if err != nil {
		log.Warn().Err(err).Msg("history unavailable")
		return nil
	}
	return h
}

// newBackend builds a remote client when an API URL is configured, and the
// in-process service otherwise.
func newBackend(cfg config.Config) (*backend, error) {
	if u := apiURL(cfg); u != "" {
		c, err := client.New(u)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("url", u).Msg("using remote advisor")
		return &backend{advisor: c, remote: c}, nil
	}
	return localBackend(cfg), nil
}

// localBackend builds the in-process service, recording into the history
// database when it is enabled.
func localBackend(cfg config.Config) *backend {
	b := &backend{history: openHistory(cfg)}
	opts := finance.Options{Seed: flagSeed}
	if opts.Seed == 0 {
		opts.Seed = cfg.General.Seed
	}
	if !flagNoDelay {
		opts.LatencyScale = config.LatencyScale(cfg)
	}
	if b.history != nil {
		opts.Recorder = b.history
	}
	b.advisor = finance.NewService(opts)
	return b
}

// source names where results come from: "local" or the API address.
func (b *backend) source() string {
	if b.remote != nil {
		return b.remote.BaseURL()
	}
	return "local"
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// progress prints a status line to stderr unless --quiet or --json is set.
func progress(format string, args ...any) {
	if flagQuiet || flagJSON {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}
