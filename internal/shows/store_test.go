package shows

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"owlwatch/internal/episode"
)

func intPtr(v int) *int { return &v }

func newTempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "shows.json"))
}

func TestAddListRemove(t *testing.T) {
	store := newTempStore(t)

	if all, err := store.List(); err != nil || len(all) != 0 {
		t.Fatalf("fresh store: shows=%v err=%v", all, err)
	}

	show := Show{ID: 169, Name: "Breaking Bad", LastSeenSeason: intPtr(1), LastSeenEpisode: 3}
	if err := store.Add(show); err != nil {
		t.Fatal(err)
	}
	if err := store.Add(Show{ID: 42, Name: "Frieren"}); err != nil {
		t.Fatal(err)
	}

	if err := store.Add(Show{ID: 169, Name: "Duplicate"}); !errors.Is(err, ErrAlreadyTracked) {
		t.Fatalf("duplicate add = %v, want ErrAlreadyTracked", err)
	}

	all, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Name != "Breaking Bad" {
		t.Fatalf("unexpected list: %+v", all)
	}

	if err := store.Remove(169); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(169); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second remove = %v, want ErrNotFound", err)
	}
	all, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].ID != 42 {
		t.Fatalf("after remove: %+v", all)
	}
}

func TestUpdateWatermark(t *testing.T) {
	store := newTempStore(t)
	if err := store.Add(Show{ID: 7, Name: "Dark"}); err != nil {
		t.Fatal(err)
	}

	checkedAt := time.Date(2024, time.March, 15, 20, 0, 0, 0, time.UTC)
	mark := episode.Watermark{Season: intPtr(2), Number: 8}
	err := store.Update(7, func(s *Show) {
		s.SetWatermark(mark, checkedAt)
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(7)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastSeenSeason == nil || *got.LastSeenSeason != 2 || got.LastSeenEpisode != 8 {
		t.Fatalf("watermark not persisted: %+v", got)
	}
	if !got.LastChecked.Equal(checkedAt) {
		t.Fatalf("LastChecked = %v, want %v", got.LastChecked, checkedAt)
	}
	if wm := got.Watermark(); wm.Season == nil || *wm.Season != 2 || wm.Number != 8 {
		t.Fatalf("Watermark() = %+v", wm)
	}

	if err := store.Update(404, func(*Show) {}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing = %v, want ErrNotFound", err)
	}
}

func TestSaveWritesBackup(t *testing.T) {
	store := newTempStore(t)
	if err := store.Add(Show{ID: 1, Name: "First"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Add(Show{ID: 2, Name: "Second"}); err != nil {
		t.Fatal(err)
	}

	backup, err := os.ReadFile(store.Path() + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) == "" || !json.Valid(backup) {
		t.Fatalf("backup not valid JSON: %q", backup)
	}
}

func TestListCorruptFileErrors(t *testing.T) {
	store := newTempStore(t)
	if err := os.WriteFile(store.Path(), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.List(); err == nil {
		t.Fatal("expected error for corrupt shows file")
	}
}
