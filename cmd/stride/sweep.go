package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/stridehq/stride/internal/cycle"
	"github.com/stridehq/stride/internal/notify"
)

func newSweepCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the cycle lifecycle sweep once",
		Long:  "Resolves every cycle's status from its dates and persists any changes. Safe to run from an external scheduler; a repeat run with unchanged dates applies nothing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "stride.yaml", "path to Stride config file")
	return cmd
}

func runSweep(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	transitions, err := cycle.Sweep(gormDB, cfg.Location(), time.Now(), notify.NewSlack(cfg.Slack.WebhookURL))
	if err != nil {
		return err
	}

	if len(transitions) == 0 {
		fmt.Fprintln(out, "All cycle statuses already current.")
		return nil
	}
	for _, tr := range transitions {
		fmt.Fprintf(out, "Cycle %s: %s -> %s\n", tr.CycleID, tr.OldStatus, tr.NewStatus)
	}
	return nil
}
