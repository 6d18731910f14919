package timeline

import (
	"fmt"
	"strings"

	"owlwatch/internal/episode"
)

// Delimiter separates the fields of a timeline line.
const Delimiter = " | "

// DateLayout is the calendar-date format used for the date field.
// Zero-padded so dates compare correctly as strings.
const DateLayout = "2006-01-02"

// Entry is a parsed timeline line.
type Entry struct {
	Date     string
	ShowName string
	Code     string
	Title    string
}

// NewEntry builds the timeline entry recording that an episode of the
// named show surfaced on the given date.
func NewEntry(date, showName string, ep episode.Episode) Entry {
	return Entry{
		Date:     date,
		ShowName: showName,
		Code:     ep.Code(),
		Title:    ep.Title,
	}
}

// Line serializes the entry into the timeline format.
func (e Entry) Line() string {
	return strings.Join([]string{e.Date, e.ShowName, e.Code, e.Title}, Delimiter)
}

// ParseLine splits a timeline line back into an entry. Lines with other
// than exactly four fields are unparsed and reported as not ok.
func ParseLine(line string) (Entry, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != 4 {
		return Entry{}, false
	}
	return Entry{
		Date:     strings.TrimSpace(parts[0]),
		ShowName: strings.TrimSpace(parts[1]),
		Code:     strings.TrimSpace(parts[2]),
		Title:    strings.TrimSpace(parts[3]),
	}, true
}

// Display renders a line for human consumption. Unparseable lines pass
// through untouched so nothing the tool cannot understand disappears from
// view.
func Display(line string) string {
	entry, ok := ParseLine(line)
	if !ok {
		return line
	}
	return fmt.Sprintf("[%s] %s - %s: %s", entry.Date, entry.ShowName, entry.Code, entry.Title)
}
