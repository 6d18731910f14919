package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"owlwatch/internal/timeline"
	"owlwatch/internal/watched"
)

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var all bool
	var unwatchedOnly bool

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the episode timeline, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			loadLimit := limit
			if all || unwatchedOnly {
				// Unwatched filtering applies after the limit would, so load
				// everything and trim at the end.
				loadLimit = 0
			}
			lines, err := timeline.NewStore(cfg.TimelinePath()).Load(loadLimit)
			if err != nil {
				return err
			}

			if unwatchedOnly {
				ledger, err := watched.Open(cfg.WatchedPath(), ctx.ensureLogger())
				if err != nil {
					return err
				}
				lines = ledger.FilterUnwatched(lines)
			}
			if !all && limit > 0 && len(lines) > limit {
				lines = lines[:limit]
			}

			out := cmd.OutOrStdout()
			if len(lines) == 0 {
				fmt.Fprintln(out, "Timeline is empty")
				return nil
			}
			for i, line := range lines {
				fmt.Fprintf(out, "%3d. %s\n", i+1, timeline.Display(line))
			}
			if unwatchedOnly {
				fmt.Fprintln(out, "\nMark entries watched with: owlwatch watch <selection>")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries")
	cmd.Flags().BoolVar(&all, "all", false, "Show the full timeline")
	cmd.Flags().BoolVarP(&unwatchedOnly, "unwatched", "u", false, "Only entries not yet marked watched")
	return cmd
}
