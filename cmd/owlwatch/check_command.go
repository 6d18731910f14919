package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"owlwatch/internal/config"
	"owlwatch/internal/logging"
	"owlwatch/internal/notify"
	"owlwatch/internal/shows"
	"owlwatch/internal/timeline"
	"owlwatch/internal/tracker"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var noNotify bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check every tracked show for new episodes",
		Long: `Check every tracked show against TVMaze. New aired episodes are
written to the timeline, advance the show's watermark, and trigger an ntfy
push when a topic is configured. Designed to run from cron.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.catalogClient()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger().With(
				logging.String(logging.FieldCorrelationID, uuid.NewString()))

			return ctx.withDataLock(func(cfg *config.Config) error {
				policy, err := cfg.SpecialsPolicy()
				if err != nil {
					return err
				}

				runner := tracker.NewRunner(
					client,
					shows.NewStore(cfg.ShowsPath()),
					timeline.NewStore(cfg.TimelinePath()),
					policy,
					cfg.Tracking.MaxTimelineEntries,
					logger,
				)

				notifier := notify.NewService(cfg)
				result, err := runner.CheckAll(cmd.Context())
				if err != nil {
					if !noNotify {
						if notifyErr := notifier.NotifyError(cmd.Context(), err, "episode check"); notifyErr != nil {
							logger.Warn("error notification failed", logging.Error(notifyErr))
						}
					}
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Checked %d shows: %d new episodes\n", result.Checked, len(result.Updates))
				for _, update := range result.Updates {
					fmt.Fprintf(out, "  %s %s: %s\n", update.ShowName, update.Episode.Code(), update.Episode.Title)
				}
				for _, failure := range result.Failures {
					fmt.Fprintf(out, "  check failed for %s: %v\n", failure.ShowName, failure.Err)
				}

				if noNotify {
					return nil
				}
				switch {
				case len(result.Updates) > 0:
					if err := notifier.NotifyNewEpisodes(cmd.Context(), result.Updates); err != nil {
						logger.Warn("notification failed", logging.Error(err))
					}
				case cfg.Notifications.NotifyOnEmpty:
					if err := notifier.NotifyNoUpdates(cmd.Context(), result.Checked); err != nil {
						logger.Warn("notification failed", logging.Error(err))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "Skip push notifications for this run")
	return cmd
}
