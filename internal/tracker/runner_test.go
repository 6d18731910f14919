package tracker

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"owlwatch/internal/episode"
	"owlwatch/internal/logging"
	"owlwatch/internal/shows"
	"owlwatch/internal/timeline"
)

type fakeCatalog struct {
	records map[int64][]episode.Record
	errs    map[int64]error
	calls   int
}

func (f *fakeCatalog) Episodes(_ context.Context, showID int64) ([]episode.Record, error) {
	f.calls++
	if err := f.errs[showID]; err != nil {
		return nil, err
	}
	return f.records[showID], nil
}

func record(season, number int, title, airDate string) episode.Record {
	return episode.Record{Season: &season, Number: &number, Name: title, AirDate: airDate}
}

func newTestRunner(t *testing.T, catalog Catalog, tracked ...shows.Show) (*Runner, *shows.Store, *timeline.Store) {
	t.Helper()
	dir := t.TempDir()
	store := shows.NewStore(filepath.Join(dir, "shows.json"))
	for _, show := range tracked {
		if err := store.Add(show); err != nil {
			t.Fatal(err)
		}
	}
	tl := timeline.NewStore(filepath.Join(dir, "timeline.txt"))
	runner := NewRunner(catalog, store, tl, episode.SpecialsSmart, 100, logging.NewNop())
	runner.now = func() time.Time { return time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC) }
	return runner, store, tl
}

func TestCheckAllAdvancesWatermarkAndTimeline(t *testing.T) {
	catalog := &fakeCatalog{records: map[int64][]episode.Record{
		7: {
			record(1, 1, "Pilot", "2026-03-01"),
			record(1, 2, "Second", "2026-03-08"),
			record(1, 3, "Third", "2026-03-10"),
			record(1, 4, "Future", "2026-04-01"),
		},
	}}
	season := 1
	runner, store, tl := newTestRunner(t, catalog, shows.Show{
		ID: 7, Name: "Breaking Bad", LastSeenSeason: &season, LastSeenEpisode: 1,
	})

	result, err := runner.CheckAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Checked != 1 || len(result.Failures) != 0 {
		t.Fatalf("checked=%d failures=%v", result.Checked, result.Failures)
	}
	if len(result.Updates) != 2 {
		t.Fatalf("updates = %d, want 2 (future episode excluded)", len(result.Updates))
	}
	if got := result.Updates[0].Episode.Code(); got != "S01E02" {
		t.Fatalf("first update = %s, want oldest first", got)
	}

	show, err := store.Get(7)
	if err != nil {
		t.Fatal(err)
	}
	if show.LastSeenEpisode != 3 || show.LastSeenSeason == nil || *show.LastSeenSeason != 1 {
		t.Fatalf("watermark = %v/%d", show.LastSeenSeason, show.LastSeenEpisode)
	}
	if !show.LastChecked.Equal(runner.now()) {
		t.Fatalf("LastChecked = %v", show.LastChecked)
	}

	lines, err := tl.Load(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("timeline lines = %v", lines)
	}
	// Newest first.
	if !strings.Contains(lines[0], "S01E03") || !strings.Contains(lines[1], "S01E02") {
		t.Fatalf("timeline order wrong: %v", lines)
	}
	if !strings.HasPrefix(lines[0], "2026-03-10 | Breaking Bad | ") {
		t.Fatalf("line format: %q", lines[0])
	}
}

func TestCheckAllIsIdempotent(t *testing.T) {
	catalog := &fakeCatalog{records: map[int64][]episode.Record{
		7: {record(1, 1, "Pilot", "2026-03-01"), record(1, 2, "Second", "2026-03-08")},
	}}
	runner, _, tl := newTestRunner(t, catalog, shows.Show{ID: 7, Name: "Dark"})

	first, err := runner.CheckAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Updates) != 2 {
		t.Fatalf("first run updates = %d", len(first.Updates))
	}

	second, err := runner.CheckAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(second.Updates) != 0 {
		t.Fatalf("second run should find nothing, got %v", second.Updates)
	}
	lines, _ := tl.Load(0)
	if len(lines) != 2 {
		t.Fatalf("timeline grew on idempotent re-run: %v", lines)
	}
}

func TestCheckAllIsolatesFailingShow(t *testing.T) {
	catalog := &fakeCatalog{
		records: map[int64][]episode.Record{
			2: {record(1, 1, "Pilot", "2026-03-01")},
		},
		errs: map[int64]error{1: errors.New("tvmaze 503")},
	}
	runner, _, _ := newTestRunner(t, catalog,
		shows.Show{ID: 1, Name: "Flaky"},
		shows.Show{ID: 2, Name: "Fine"},
	)

	result, err := runner.CheckAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Checked != 2 {
		t.Fatalf("checked = %d", result.Checked)
	}
	if len(result.Failures) != 1 || result.Failures[0].ShowID != 1 {
		t.Fatalf("failures = %v", result.Failures)
	}
	if len(result.Updates) != 1 || result.Updates[0].ShowName != "Fine" {
		t.Fatalf("updates = %v", result.Updates)
	}
}

func TestCheckAllPrunesTimeline(t *testing.T) {
	catalog := &fakeCatalog{records: map[int64][]episode.Record{
		1: {
			record(1, 1, "A", "2026-03-01"),
			record(1, 2, "B", "2026-03-02"),
			record(1, 3, "C", "2026-03-03"),
		},
	}}
	runner, _, tl := newTestRunner(t, catalog, shows.Show{ID: 1, Name: "Long Runner"})
	runner.maxTimelineSize = 2

	if _, err := runner.CheckAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	lines, err := tl.Load(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("timeline not pruned: %v", lines)
	}
	if !strings.Contains(lines[0], "S01E03") {
		t.Fatalf("prune should keep newest entries: %v", lines)
	}
}

func TestCheckAllHonorsContextCancellation(t *testing.T) {
	catalog := &fakeCatalog{}
	runner, _, _ := newTestRunner(t, catalog, shows.Show{ID: 1, Name: "X"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.CheckAll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if catalog.calls != 0 {
		t.Fatal("catalog should not be hit after cancellation")
	}
}
