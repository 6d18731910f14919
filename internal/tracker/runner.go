package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"owlwatch/internal/episode"
	"owlwatch/internal/logging"
	"owlwatch/internal/shows"
	"owlwatch/internal/timeline"
)

// Catalog fetches episode records for a show. A nil record slice with a nil
// error means the catalog has no episode data for the show.
type Catalog interface {
	Episodes(ctx context.Context, showID int64) ([]episode.Record, error)
}

// Failure records one show whose check could not complete. Other shows in
// the same run are unaffected.
type Failure struct {
	ShowID   int64
	ShowName string
	Err      error
}

// CheckResult summarizes one reconciliation run across all tracked shows.
type CheckResult struct {
	Checked  int
	Updates  []ShowUpdate
	Failures []Failure
}

// Runner reconciles every tracked show against the catalog: new aired
// episodes become timeline entries and advance the show's watermark.
type Runner struct {
	catalog         Catalog
	store           *shows.Store
	timeline        *timeline.Store
	policy          episode.SpecialsPolicy
	maxTimelineSize int
	logger          *slog.Logger
	now             func() time.Time
}

// NewRunner wires a check runner. A maxTimelineSize of zero or less
// disables timeline pruning.
func NewRunner(catalog Catalog, store *shows.Store, tl *timeline.Store, policy episode.SpecialsPolicy, maxTimelineSize int, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		catalog:         catalog,
		store:           store,
		timeline:        tl,
		policy:          policy,
		maxTimelineSize: maxTimelineSize,
		logger:          logger,
		now:             time.Now,
	}
}

// CheckAll runs reconciliation for every tracked show. A failing show is
// reported in the result and skipped; the run only errors when the tracked
// set itself cannot be read.
func (r *Runner) CheckAll(ctx context.Context) (CheckResult, error) {
	tracked, err := r.store.List()
	if err != nil {
		return CheckResult{}, fmt.Errorf("list tracked shows: %w", err)
	}

	var result CheckResult
	for _, show := range tracked {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Checked++

		updates, err := r.checkShow(ctx, show)
		if err != nil {
			r.logger.Warn("show check failed",
				logging.Int64(logging.FieldShowID, show.ID),
				logging.String(logging.FieldShowName, show.Name),
				logging.Error(err))
			result.Failures = append(result.Failures, Failure{ShowID: show.ID, ShowName: show.Name, Err: err})
			continue
		}
		result.Updates = append(result.Updates, updates...)
	}

	if r.maxTimelineSize > 0 {
		if removed, err := r.timeline.Prune(r.maxTimelineSize); err != nil {
			r.logger.Warn("timeline prune failed", logging.Error(err))
		} else if removed > 0 {
			r.logger.Debug("timeline pruned", logging.Int("removed", removed))
		}
	}
	return result, nil
}

func (r *Runner) checkShow(ctx context.Context, show shows.Show) ([]ShowUpdate, error) {
	records, err := r.catalog.Episodes(ctx, show.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch episodes: %w", err)
	}

	episodes := make([]episode.Episode, 0, len(records))
	for _, rec := range records {
		episodes = append(episodes, episode.ParseRecord(rec))
	}

	now := r.now()
	aired := episode.FilterAired(episodes, r.policy, now)
	fresh := FindNewEpisodes(aired, show.Watermark())
	if len(fresh) == 0 {
		// Still stamp the check time so "last checked" stays honest.
		if err := r.store.Update(show.ID, func(s *shows.Show) {
			s.LastChecked = now
		}); err != nil {
			return nil, fmt.Errorf("stamp check time: %w", err)
		}
		return nil, nil
	}

	mark := NextWatermark(show.Watermark(), fresh)
	if err := r.store.Update(show.ID, func(s *shows.Show) {
		s.SetWatermark(mark, now)
	}); err != nil {
		return nil, fmt.Errorf("advance watermark: %w", err)
	}

	// The timeline file is newest first, so a multi-episode drop is written
	// top-down from the latest episode.
	date := now.UTC().Format(timeline.DateLayout)
	lines := make([]string, 0, len(fresh))
	for i := len(fresh) - 1; i >= 0; i-- {
		lines = append(lines, timeline.NewEntry(date, show.Name, fresh[i]).Line())
	}
	if err := r.timeline.Append(lines); err != nil {
		return nil, fmt.Errorf("append timeline: %w", err)
	}

	updates := make([]ShowUpdate, 0, len(fresh))
	for _, e := range fresh {
		r.logger.Info("new episode",
			logging.String(logging.FieldShowName, show.Name),
			logging.String(logging.FieldEpisodeCode, e.Code()))
		updates = append(updates, ShowUpdate{ShowID: show.ID, ShowName: show.Name, Episode: e})
	}
	return updates, nil
}
