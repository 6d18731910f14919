package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"owlwatch/internal/search"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the TVMaze catalog for a show",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			client, err := ctx.catalogClient()
			if err != nil {
				return err
			}
			hits, err := client.SearchShows(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("search %q: %w", query, err)
			}

			ranked := search.Rank(query, hits, limit)
			out := cmd.OutOrStdout()
			if len(ranked) == 0 {
				fmt.Fprintf(out, "No shows found for %q\n", query)
				return nil
			}

			rows := make([][]string, 0, len(ranked))
			for _, hit := range ranked {
				year := ""
				if hit.Year > 0 {
					year = strconv.Itoa(hit.Year)
				}
				rows = append(rows, []string{
					strconv.FormatInt(hit.ShowID, 10),
					hit.Name,
					year,
					hit.Status,
					fmt.Sprintf("%.0f%%", hit.Score),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"ID", "Name", "Year", "Status", "Match"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight}))
			fmt.Fprintln(out, "Track one with: owlwatch add --id <ID>")
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results")
	return cmd
}
