package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"owlwatch/internal/config"
	"owlwatch/internal/search"
	"owlwatch/internal/shows"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var showID int64

	cmd := &cobra.Command{
		Use:   "remove [name]",
		Short: "Stop tracking a show",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if showID == 0 && query == "" {
				return fmt.Errorf("provide a tracked show name or --id")
			}

			return ctx.withDataLock(func(cfg *config.Config) error {
				store := shows.NewStore(cfg.ShowsPath())

				id := showID
				name := ""
				if id == 0 {
					tracked, err := store.List()
					if err != nil {
						return err
					}
					match, ok := search.ResolveTracked(query, tracked, search.DefaultResolveThreshold)
					if !ok {
						return fmt.Errorf("no tracked show matches %q (see `owlwatch shows`)", query)
					}
					id = match.ID
					name = match.Name
				} else {
					if show, err := store.Get(id); err == nil {
						name = show.Name
					}
				}

				if err := store.Remove(id); err != nil {
					return err
				}
				if name == "" {
					name = fmt.Sprintf("id %d", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stopped tracking %s\n", name)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&showID, "id", 0, "TVMaze show ID of the tracked show")
	return cmd
}
