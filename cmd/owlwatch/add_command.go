package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"owlwatch/internal/config"
	"owlwatch/internal/episode"
	"owlwatch/internal/search"
	"owlwatch/internal/shows"
	"owlwatch/internal/tvmaze"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var showID int64

	cmd := &cobra.Command{
		Use:   "add [query]",
		Short: "Track a show",
		Long: `Track a show by name or TVMaze ID.

The watermark starts at the latest already-aired episode, so only episodes
airing after this point show up as new.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if showID == 0 && query == "" {
				return errors.New("provide a show name or --id")
			}

			client, err := ctx.catalogClient()
			if err != nil {
				return err
			}

			result, err := resolveShow(cmd.Context(), client, showID, query)
			if err != nil {
				return err
			}

			records, err := client.Episodes(cmd.Context(), result.ID)
			if err != nil {
				return fmt.Errorf("fetch episodes for %q: %w", result.Name, err)
			}

			return ctx.withDataLock(func(cfg *config.Config) error {
				policy, err := cfg.SpecialsPolicy()
				if err != nil {
					return err
				}

				episodes := make([]episode.Episode, 0, len(records))
				for _, rec := range records {
					episodes = append(episodes, episode.ParseRecord(rec))
				}
				aired := episode.FilterAired(episodes, policy, time.Now())

				show := shows.Show{ID: result.ID, Name: result.Name, LastChecked: time.Now()}
				label := "no aired episodes yet"
				if latest, ok := episode.Latest(aired); ok {
					show.LastSeenSeason = latest.Season
					show.LastSeenEpisode = latest.Number
					label = fmt.Sprintf("latest aired %s", latest.Code())
				}

				if err := shows.NewStore(cfg.ShowsPath()).Add(show); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tracking %s (id %d, %s)\n", show.Name, show.ID, label)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&showID, "id", 0, "TVMaze show ID (skips name search)")
	return cmd
}

func resolveShow(ctx context.Context, client *tvmaze.Client, showID int64, query string) (*tvmaze.ShowResult, error) {
	if showID != 0 {
		return client.ShowByID(ctx, showID)
	}

	hits, err := client.SearchShows(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	ranked := search.Rank(query, hits, 1)
	if len(ranked) == 0 {
		return nil, fmt.Errorf("no shows found for %q", query)
	}
	best := ranked[0]
	return &tvmaze.ShowResult{ID: best.ShowID, Name: best.Name, Status: best.Status}, nil
}
