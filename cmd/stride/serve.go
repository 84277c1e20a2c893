package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stridehq/stride/internal/api"
	"github.com/stridehq/stride/internal/cycle"
	"github.com/stridehq/stride/internal/notify"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Stride API server",
		Long:  "Serves computed OKR progress over JSON and runs the cycle lifecycle sweep on its schedule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "stride.yaml", "path to Stride config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if port <= 0 {
		port = cfg.Server.Port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	notifier := notify.NewSlack(cfg.Slack.WebhookURL)

	// Background sweep: once at startup, then on the configured schedule.
	go func() {
		err := cycle.RunDaemon(ctx, cycle.DaemonOpts{
			DB:       gormDB,
			Location: cfg.Location(),
			Interval: cfg.SweepInterval(),
			Schedule: cfg.Sweep.Schedule,
			Notifier: notifier,
			Out:      cmd.OutOrStdout(),
		})
		if err != nil {
			log.Printf("sweep daemon: %v", err)
		}
	}()

	return api.Start(ctx, api.StartOpts{
		DB:       gormDB,
		Port:     port,
		Location: cfg.Location(),
		Notifier: notifier,
		Out:      cmd.OutOrStdout(),
	})
}
