package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"owlwatch/internal/episode"
	"owlwatch/internal/shows"
)

func newShowsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shows",
		Short: "List tracked shows",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			tracked, err := shows.NewStore(cfg.ShowsPath()).List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tracked) == 0 {
				fmt.Fprintln(out, "No shows tracked yet. Start with `owlwatch search <name>`.")
				return nil
			}

			// Unicode-aware ordering so accented titles sort where a
			// human expects them.
			collator := collate.New(language.English, collate.IgnoreCase)
			sort.SliceStable(tracked, func(i, j int) bool {
				return collator.CompareString(tracked[i].Name, tracked[j].Name) < 0
			})

			rows := make([][]string, 0, len(tracked))
			for _, show := range tracked {
				checked := "never"
				if !show.LastChecked.IsZero() {
					checked = show.LastChecked.UTC().Format("2006-01-02")
				}
				rows = append(rows, []string{
					strconv.FormatInt(show.ID, 10),
					show.Name,
					watermarkLabel(show),
					checked,
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"ID", "Name", "Last seen", "Checked"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}))
			return nil
		},
	}
}

func watermarkLabel(show shows.Show) string {
	if show.LastSeenSeason == nil && show.LastSeenEpisode == 0 {
		return "-"
	}
	return episode.Episode{Season: show.LastSeenSeason, Number: show.LastSeenEpisode}.Code()
}
