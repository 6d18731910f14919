package watched

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"owlwatch/internal/fileutil"
	"owlwatch/internal/logging"
)

// farFutureDate is assigned to keys whose date cannot be extracted so the
// archiver never removes them by accident.
const farFutureDate = "9999-12-31"

const dateLayout = "2006-01-02"

// Ledger is the in-memory watched set backed by a JSON file. It loads once
// at construction and persists after every effective mutation; there is no
// reload-on-read. Concurrent writers must serialize externally.
type Ledger struct {
	path   string
	logger *slog.Logger
	keys   map[string]struct{}
}

type ledgerFile struct {
	Watched []string `json:"watched"`
}

// Open loads the ledger at path. A missing file starts empty; a corrupt
// file is logged and discarded rather than blocking the user.
func Open(path string, logger *slog.Logger) (*Ledger, error) {
	logger = logging.NewComponentLogger(logger, "watched")
	ledger := &Ledger{
		path:   path,
		logger: logger,
		keys:   make(map[string]struct{}),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ledger, nil
		}
		return nil, fmt.Errorf("read watched ledger: %w", err)
	}

	var file ledgerFile
	if err := json.Unmarshal(data, &file); err != nil {
		logger.Warn("watched ledger unreadable, starting fresh",
			logging.String("path", path),
			logging.Error(err))
		return ledger, nil
	}
	for _, key := range file.Watched {
		ledger.keys[key] = struct{}{}
	}
	return ledger, nil
}

// Len returns the number of watched keys.
func (l *Ledger) Len() int {
	return len(l.keys)
}

// IsWatched reports set membership for the key.
func (l *Ledger) IsWatched(key Key) bool {
	_, ok := l.keys[key.String()]
	return ok
}

// MarkWatched adds the keys to the watched set and persists when anything
// changed. Returns how many keys were newly added; duplicates count zero.
func (l *Ledger) MarkWatched(keys []Key) (int, error) {
	added := 0
	for _, key := range keys {
		serialized := key.String()
		if _, ok := l.keys[serialized]; ok {
			continue
		}
		l.keys[serialized] = struct{}{}
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := l.persist(); err != nil {
		return added, err
	}
	return added, nil
}

// ArchiveOlderThan removes watched keys whose date is strictly before
// today minus days. Zero-padded dates make the lexicographic comparison a
// calendar comparison. days <= 0 is a no-op.
func (l *Ledger) ArchiveOlderThan(days int, now time.Time) (int, error) {
	if days <= 0 {
		return 0, nil
	}
	cutoff := now.AddDate(0, 0, -days).Format(dateLayout)

	removed := 0
	for serialized := range l.keys {
		if keyDate(serialized) < cutoff {
			delete(l.keys, serialized)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	if err := l.persist(); err != nil {
		return removed, err
	}
	l.logger.Debug("archived watched entries",
		logging.Int("removed", removed),
		logging.String("cutoff", cutoff))
	return removed, nil
}

// FilterUnwatched drops lines whose derived key is watched. Lines that
// fail key derivation are kept: the ledger never hides content it cannot
// understand.
func (l *Ledger) FilterUnwatched(lines []string) []string {
	unwatched := make([]string, 0, len(lines))
	for _, line := range lines {
		key, err := KeyFromLine(line)
		if err == nil && l.IsWatched(key) {
			continue
		}
		unwatched = append(unwatched, line)
	}
	return unwatched
}

func keyDate(serialized string) string {
	if strings.Count(serialized, keySeparator) < 2 {
		return farFutureDate
	}
	date, _, _ := strings.Cut(serialized, keySeparator)
	if strings.TrimSpace(date) == "" {
		return farFutureDate
	}
	return date
}

func (l *Ledger) persist() error {
	keys := make([]string, 0, len(l.keys))
	for key := range l.keys {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	data, err := json.MarshalIndent(ledgerFile{Watched: keys}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal watched ledger: %w", err)
	}
	if err := fileutil.WriteFileAtomic(l.path, data, 0o644); err != nil {
		return fmt.Errorf("persist watched ledger: %w", err)
	}
	return nil
}
