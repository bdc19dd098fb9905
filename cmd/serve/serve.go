// Package serve runs the HTTP API server
package serve

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/krystal-group/stripe-statements/cmd/root"
	"github.com/krystal-group/stripe-statements/internal/web"

	"github.com/spf13/cobra"
)

// Addr overrides the configured listen address when set.
var Addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve statements and payout reports over HTTP",
	Long: `Serve the reconciliation API over HTTP.

The server exposes company listings, monthly statements in JSON, HTML or
CSV form, payout reconciliation reports and a health endpoint that reflects
the state of the CSV data directory.

Example:
  stripe-statements serve --addr :8080`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&Addr, "addr", "", "Listen address (default from configuration)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Serve command called")

	l, engine, registry, err := root.Components()
	if err != nil {
		root.Log.Fatalf("Failed to initialize: %v", err)
	}

	addr := Addr
	shutdownGrace := 10 * time.Second
	if root.Cfg != nil {
		if addr == "" {
			addr = root.Cfg.Server.Addr
		}
		shutdownGrace = time.Duration(root.Cfg.Server.ShutdownSeconds) * time.Second
	}
	if addr == "" {
		addr = ":8080"
	}

	server := web.NewServer(addr, l, engine, registry, root.GetLogrusAdapter())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, shutdownGrace); err != nil {
		root.Log.Fatalf("Server error: %v", err)
	}
	root.Log.Info("Server stopped")
}
