package watched

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) (*Ledger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watched.json")
	ledger, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	return ledger, path
}

func TestMarkWatchedRoundTrip(t *testing.T) {
	ledger, path := openTemp(t)

	key := Key{Date: "2024-03-15", ShowName: "Breaking Bad", EpisodeCode: "S01E02"}
	added, err := ledger.MarkWatched([]Key{key})
	if err != nil {
		t.Fatal(err)
	}
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}
	if !ledger.IsWatched(key) {
		t.Fatal("key should be watched after marking")
	}
	other := Key{Date: "2024-03-15", ShowName: "Breaking Bad", EpisodeCode: "S01E03"}
	if ledger.IsWatched(other) {
		t.Fatal("unrelated key should not be watched")
	}

	// Duplicates contribute zero.
	added, err = ledger.MarkWatched([]Key{key})
	if err != nil {
		t.Fatal(err)
	}
	if added != 0 {
		t.Fatalf("duplicate add = %d, want 0", added)
	}

	// State survives a reload.
	reloaded, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.IsWatched(key) || reloaded.Len() != 1 {
		t.Fatalf("reloaded ledger lost state: len=%d", reloaded.Len())
	}
}

func TestOpenCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	ledger, err := Open(path, nil)
	if err != nil {
		t.Fatalf("corrupt file should not fail open: %v", err)
	}
	if ledger.Len() != 0 {
		t.Fatalf("len = %d, want 0", ledger.Len())
	}
}

func TestArchiveOlderThanBoundary(t *testing.T) {
	ledger, _ := openTemp(t)
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	onCutoff := Key{Date: "2024-03-05", ShowName: "A", EpisodeCode: "S01E01"}
	tooOld := Key{Date: "2024-03-04", ShowName: "B", EpisodeCode: "S01E01"}
	if _, err := ledger.MarkWatched([]Key{onCutoff, tooOld}); err != nil {
		t.Fatal(err)
	}

	removed, err := ledger.ArchiveOlderThan(10, now)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if !ledger.IsWatched(onCutoff) {
		t.Fatal("key dated exactly today-days must be retained")
	}
	if ledger.IsWatched(tooOld) {
		t.Fatal("key dated today-days-1 must be removed")
	}
}

func TestArchiveOlderThanNoOp(t *testing.T) {
	ledger, _ := openTemp(t)
	if _, err := ledger.MarkWatched([]Key{{Date: "2000-01-01", ShowName: "A", EpisodeCode: "E001"}}); err != nil {
		t.Fatal(err)
	}
	for _, days := range []int{0, -5} {
		removed, err := ledger.ArchiveOlderThan(days, time.Now())
		if err != nil {
			t.Fatal(err)
		}
		if removed != 0 {
			t.Fatalf("days=%d removed %d keys", days, removed)
		}
	}
	if ledger.Len() != 1 {
		t.Fatal("no-op archive must not shrink the ledger")
	}
}

func TestArchiveKeepsUndatedKeys(t *testing.T) {
	ledger, path := openTemp(t)
	if _, err := ledger.MarkWatched([]Key{{Date: "2024-01-01", ShowName: "A", EpisodeCode: "E001"}}); err != nil {
		t.Fatal(err)
	}

	// Inject a malformed serialized key directly, as a hand-edited file
	// might contain.
	if err := os.WriteFile(path, []byte(`{"watched":["2024-01-01|A|E001","garbage-without-separators"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	ledger, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	removed, err := ledger.ArchiveOlderThan(30, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if ledger.Len() != 1 {
		t.Fatal("malformed key must survive archival")
	}
}

func TestFilterUnwatchedFailOpen(t *testing.T) {
	ledger, _ := openTemp(t)
	watchedLine := "2024-03-15 | Breaking Bad | S01E02 | Cat's in the Bag..."
	key, err := KeyFromLine(watchedLine)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.MarkWatched([]Key{key}); err != nil {
		t.Fatal(err)
	}

	lines := []string{
		watchedLine,
		"2024-03-15 | Breaking Bad | S01E03 | ...And the Bag's in the River",
		"some note that is not an entry",
	}
	got := ledger.FilterUnwatched(lines)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != lines[1] || got[1] != lines[2] {
		t.Fatalf("unexpected survivors: %v", got)
	}
}
