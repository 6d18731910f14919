package watched

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedEntry reports a line or serialized key that does not split
// into the expected fields.
var ErrMalformedEntry = errors.New("malformed timeline entry")

// keySeparator joins the fields of a serialized key. Serialization detail
// only; callers compare Key values structurally.
const keySeparator = "|"

// Key identifies one timeline entry for watched tracking. Two entries are
// the same iff their keys are equal.
type Key struct {
	Date        string
	ShowName    string
	EpisodeCode string
}

// String serializes the key for ledger storage.
func (k Key) String() string {
	return k.Date + keySeparator + k.ShowName + keySeparator + k.EpisodeCode
}

// ParseKey reverses Key.String.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, keySeparator)
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("%w: key %q", ErrMalformedEntry, s)
	}
	return Key{Date: parts[0], ShowName: parts[1], EpisodeCode: parts[2]}, nil
}

// KeyFromLine derives a key from a timeline line. Only the first three
// fields matter, so a full four-field line and a bare key both parse; a
// line with fewer than three fields fails with ErrMalformedEntry.
func KeyFromLine(line string) (Key, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return Key{}, fmt.Errorf("%w: line %q", ErrMalformedEntry, line)
	}
	return Key{
		Date:        strings.TrimSpace(parts[0]),
		ShowName:    strings.TrimSpace(parts[1]),
		EpisodeCode: strings.TrimSpace(parts[2]),
	}, nil
}
