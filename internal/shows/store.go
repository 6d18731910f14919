// Package shows persists the set of tracked shows and their reconciliation
// watermarks as a single JSON file.
//
// The store has no cache: every operation reads the file and effective
// mutations rewrite it atomically, with a .bak copy of the previous
// contents. Concurrent writers must serialize externally (the CLI holds a
// lock file around mutating commands).
package shows

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"owlwatch/internal/episode"
	"owlwatch/internal/fileutil"
)

var (
	// ErrAlreadyTracked reports an Add for a show ID that is present.
	ErrAlreadyTracked = errors.New("show already tracked")
	// ErrNotFound reports an operation on a show ID that is not tracked.
	ErrNotFound = errors.New("show not tracked")
)

const backupSuffix = ".bak"

// Show is one tracked show with its watermark.
type Show struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// LastSeenSeason is nil for shows tracked by absolute numbering.
	LastSeenSeason  *int      `json:"last_seen_season"`
	LastSeenEpisode int       `json:"last_seen_episode"`
	LastChecked     time.Time `json:"last_checked"`
}

// Watermark returns the show's reconciliation checkpoint.
func (s Show) Watermark() episode.Watermark {
	return episode.Watermark{Season: s.LastSeenSeason, Number: s.LastSeenEpisode}
}

// SetWatermark records a new checkpoint and stamps the check time.
func (s *Show) SetWatermark(mark episode.Watermark, checkedAt time.Time) {
	s.LastSeenSeason = mark.Season
	s.LastSeenEpisode = mark.Number
	s.LastChecked = checkedAt
}

// Store reads and writes the tracked-shows file.
type Store struct {
	path string
}

type showsFile struct {
	Shows []Show `json:"shows"`
}

// NewStore returns a store over the given file path. The file is created
// on first mutation.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// List returns all tracked shows in file order. A missing file is an empty
// list.
func (s *Store) List() ([]Show, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read shows: %w", err)
	}
	var file showsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse shows file %q: %w", s.path, err)
	}
	return file.Shows, nil
}

// Get returns the tracked show with the given ID.
func (s *Store) Get(id int64) (Show, error) {
	all, err := s.List()
	if err != nil {
		return Show{}, err
	}
	for _, show := range all {
		if show.ID == id {
			return show, nil
		}
	}
	return Show{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Add appends a show. Adding an ID that is already tracked fails with
// ErrAlreadyTracked.
func (s *Store) Add(show Show) error {
	all, err := s.List()
	if err != nil {
		return err
	}
	for _, existing := range all {
		if existing.ID == show.ID {
			return fmt.Errorf("%w: %q (id %d)", ErrAlreadyTracked, existing.Name, existing.ID)
		}
	}
	return s.save(append(all, show))
}

// Remove deletes the show with the given ID, along with its watermark.
func (s *Store) Remove(id int64) error {
	all, err := s.List()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, show := range all {
		if show.ID != id {
			kept = append(kept, show)
		}
	}
	if len(kept) == len(all) {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.save(kept)
}

// Update applies fn to the stored show with the given ID and persists the
// result.
func (s *Store) Update(id int64, fn func(*Show)) error {
	all, err := s.List()
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == id {
			fn(&all[i])
			return s.save(all)
		}
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

func (s *Store) save(all []Show) error {
	data, err := json.MarshalIndent(showsFile{Shows: all}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal shows: %w", err)
	}
	// Best-effort backup of the previous file contents.
	_ = fileutil.BackupFile(s.path, backupSuffix)
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write shows: %w", err)
	}
	return nil
}
