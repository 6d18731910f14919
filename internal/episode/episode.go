package episode

import (
	"fmt"
	"sort"
)

// Episode is one entry of a show's catalog. Values are immutable once
// constructed; build them through ParseRecord rather than by hand so the
// defaulting rules apply uniformly.
type Episode struct {
	// Season is nil for shows that use absolute numbering.
	Season *int
	// Number is the position within the season, or the absolute position
	// when Season is nil.
	Number int
	Title  string
	// AirDate is a YYYY-MM-DD calendar date, or empty when the episode has
	// no scheduled date yet.
	AirDate string
	// AbsoluteNumber is the catalog's absolute ordinal when it provides one.
	// It may equal Number for sources that do not distinguish the two.
	AbsoluteNumber *int
	// Type is the catalog-provided category ("regular",
	// "significant_special", ...) or empty when unknown.
	Type string
}

// Record is the loosely-typed shape episodes arrive in from a catalog.
// Absent fields are nil or empty.
type Record struct {
	Season  *int
	Number  *int
	Name    string
	AirDate string
	Type    string
}

// Watermark is the reconciliation checkpoint for one show: the highest
// season/episode pair known to have been seen.
type Watermark struct {
	// Season is nil for shows tracked by absolute numbering.
	Season *int
	Number int
}

// ParseRecord normalizes a catalog record into an Episode. Malformed or
// incomplete records never fail; missing fields get defensive defaults so
// the result is always usable.
func ParseRecord(rec Record) Episode {
	number := 0
	if rec.Number != nil {
		number = *rec.Number
	}
	if number < 0 {
		number = 0
	}
	title := rec.Name
	if title == "" {
		title = fmt.Sprintf("Episode %d", number)
	}
	return Episode{
		Season:  rec.Season,
		Number:  number,
		Title:   title,
		AirDate: rec.AirDate,
		// Catalogs that number absolutely report that ordinal in the
		// number field, so it doubles as the absolute position.
		AbsoluteNumber: rec.Number,
		Type:           rec.Type,
	}
}

// NewerThan reports whether the episode sits past the watermark.
//
// When either side lacks a season the comparison falls back to the absolute
// ordinal (or plain number) against the watermark number. This keeps shows
// that switch between seasoned and absolute numbering on a single
// consistent axis, at the cost of being approximate right at the
// transition. Equal season and number is not newer, so repeated checks
// against an up-to-date watermark report nothing.
func (e Episode) NewerThan(mark Watermark) bool {
	if e.Season == nil || mark.Season == nil {
		if e.AbsoluteNumber != nil {
			return *e.AbsoluteNumber > mark.Number
		}
		return e.Number > mark.Number
	}
	if *e.Season > *mark.Season {
		return true
	}
	return *e.Season == *mark.Season && e.Number > mark.Number
}

// Code renders the conventional episode label: S01E05 when the season is
// known, E042 otherwise.
func (e Episode) Code() string {
	if e.Season != nil {
		return fmt.Sprintf("S%02dE%02d", *e.Season, e.Number)
	}
	return fmt.Sprintf("E%03d", e.Number)
}

// seasonOrZero flattens a missing season to 0 for chronological sorting.
// This is a display/sort convention only; NewerThan keeps its own rules.
func (e Episode) seasonOrZero() int {
	if e.Season == nil {
		return 0
	}
	return *e.Season
}

// Before orders episodes by (season, number) with season-null sorting as
// season 0.
func Before(a, b Episode) bool {
	if a.seasonOrZero() != b.seasonOrZero() {
		return a.seasonOrZero() < b.seasonOrZero()
	}
	return a.Number < b.Number
}

// SortChronological sorts episodes in place, oldest first.
func SortChronological(episodes []Episode) {
	sort.SliceStable(episodes, func(i, j int) bool {
		return Before(episodes[i], episodes[j])
	})
}

// Latest returns the episode with the highest (season, number) key, or
// false for an empty input.
func Latest(episodes []Episode) (Episode, bool) {
	if len(episodes) == 0 {
		return Episode{}, false
	}
	latest := episodes[0]
	for _, e := range episodes[1:] {
		if Before(latest, e) {
			latest = e
		}
	}
	return latest, true
}
