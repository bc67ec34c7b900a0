package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finchat/internal/client"
	"github.com/theirongolddev/finchat/internal/server"
)

var (
	flagServeAddr         string
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the finance operations over a JSON HTTP API",
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether an API server is answering",
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func serveAddr(cfgAddr string) string {
	if flagServeAddr != "" {
		return flagServeAddr
	}
	return cfgAddr
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	b := localBackend(cfg)
	defer b.Close()

	addr := serveAddr(cfg.Server.Addr)
	var history server.HistoryReader
	if b.history != nil {
		history = b.history
	}
	srv := server.New(server.Config{
		Addr:         addr,
		CORSOrigins:  cfg.Server.CORSOrigins,
		EventsBuffer: flagServeEventsBuffer,
	}, b.advisor, history)

	fmt.Printf("  finchat API listening on http://%s\n", addr)
	fmt.Printf("  History: %s\n", onOff(history != nil))
	fmt.Println("  Stop with Ctrl+C")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	base := apiURL(cfg)
	if base == "" || cmd.Flags().Changed("addr") {
		base = "http://" + serveAddr(cfg.Server.Addr)
	}

	c, err := client.New(base)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmdContext(cmd), 3*time.Second)
	defer cancel()

	h, err := c.Health(ctx)
	if err != nil {
		fmt.Printf("  API: unreachable at %s (%v)\n", c.BaseURL(), err)
		return nil
	}
	if flagJSON {
		return printJSON(h)
	}
	fmt.Printf("  API: %s at %s\n", h.Status, c.BaseURL())
	fmt.Printf("  Service: %s %s\n", h.Service, h.Version)
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
