package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"owlwatch/internal/config"
	"owlwatch/internal/timeline"
	"owlwatch/internal/watched"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [selection]",
		Short: "Mark timeline entries as watched",
		Long: `Mark unwatched timeline entries as watched.

The selection uses the numbering of ` + "`owlwatch timeline --unwatched`" + `:
1-based entries and ranges ("1,3-5"), "all", or "none". With no selection
the unwatched entries are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection := ""
			if len(args) == 1 {
				selection = strings.TrimSpace(args[0])
			}

			return ctx.withDataLock(func(cfg *config.Config) error {
				ledger, err := watched.Open(cfg.WatchedPath(), ctx.ensureLogger())
				if err != nil {
					return err
				}
				lines, err := timeline.NewStore(cfg.TimelinePath()).Load(0)
				if err != nil {
					return err
				}
				unwatched := ledger.FilterUnwatched(lines)

				out := cmd.OutOrStdout()
				if len(unwatched) == 0 {
					fmt.Fprintln(out, "Nothing unwatched")
					return nil
				}
				if selection == "" {
					for i, line := range unwatched {
						fmt.Fprintf(out, "%3d. %s\n", i+1, timeline.Display(line))
					}
					fmt.Fprintln(out, "\nSelect entries, e.g.: owlwatch watch 1,3-5")
					return nil
				}

				indices, err := watched.ParseIndices(selection, len(unwatched))
				if err != nil {
					return err
				}

				keys := make([]watched.Key, 0, len(indices))
				for _, idx := range indices {
					key, err := watched.KeyFromLine(unwatched[idx])
					if err != nil {
						return fmt.Errorf("entry %d: %w", idx+1, err)
					}
					keys = append(keys, key)
				}

				added, err := ledger.MarkWatched(keys)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Marked %d episode(s) watched\n", added)
				return nil
			})
		},
	}
	return cmd
}
