package tracker

import (
	"owlwatch/internal/episode"
)

// ShowUpdate is one detected new-episode event, ready for formatting and
// notification. Ephemeral: produced per check run and not persisted.
type ShowUpdate struct {
	ShowID   int64
	ShowName string
	Episode  episode.Episode
}

// FindNewEpisodes selects every aired episode past the watermark and
// returns them oldest first, so a multi-episode drop turns into timeline
// entries in the order the episodes aired.
func FindNewEpisodes(aired []episode.Episode, mark episode.Watermark) []episode.Episode {
	var fresh []episode.Episode
	for _, e := range aired {
		if e.NewerThan(mark) {
			fresh = append(fresh, e)
		}
	}
	episode.SortChronological(fresh)
	return fresh
}

// NextWatermark advances the watermark to the last (highest) of the newly
// found episodes. With no new episodes the watermark is returned unchanged,
// which makes reconciliation idempotent: running it again with the advanced
// watermark finds nothing.
func NextWatermark(current episode.Watermark, newEpisodes []episode.Episode) episode.Watermark {
	if len(newEpisodes) == 0 {
		return current
	}
	last := newEpisodes[len(newEpisodes)-1]
	return episode.Watermark{Season: last.Season, Number: last.Number}
}
