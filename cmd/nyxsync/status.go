package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nyxhub/content-sync/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show queue depth and sync mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		size, err := a.svc.QueueSize(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Jobs in sync queue: %d\n", size)

		settings, err := config.LoadSettings(a.cfg.SettingsFile)
		if err != nil {
			return err
		}
		mode := "synchronous (queue disabled)"
		if settings.AsyncMode {
			mode = "asynchronous (queue enabled)"
		}
		fmt.Printf("Sync mode: %s\n", mode)
		return nil
	},
}
