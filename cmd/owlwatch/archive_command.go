package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"owlwatch/internal/config"
	"owlwatch/internal/watched"
)

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Drop old watched-ledger entries",
		Long: `Remove watched-ledger entries older than the retention window
(tracking.archive_days, overridable with --days). Their timeline lines stay;
they just stop counting as unwatched state worth keeping.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDataLock(func(cfg *config.Config) error {
				retention := days
				if retention < 0 {
					retention = cfg.Tracking.ArchiveDays
				}

				ledger, err := watched.Open(cfg.WatchedPath(), ctx.ensureLogger())
				if err != nil {
					return err
				}
				removed, err := ledger.ArchiveOlderThan(retention, time.Now())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if retention <= 0 {
					fmt.Fprintln(out, "Archival disabled (archive_days is 0)")
					return nil
				}
				fmt.Fprintf(out, "Archived %d watched entries older than %d days\n", removed, retention)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", -1, "Retention window in days (default from config)")
	return cmd
}
