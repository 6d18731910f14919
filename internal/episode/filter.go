package episode

import (
	"fmt"
	"strings"
	"time"
)

// TypeSignificantSpecial is the catalog category for standalone specials
// worth tracking (movies, OVAs billed as events).
const TypeSignificantSpecial = "significant_special"

const airDateLayout = "2006-01-02"

// SpecialsPolicy decides how season-0 entries are treated by the aired
// filter.
type SpecialsPolicy int

const (
	// SpecialsSmart keeps specials tagged significant_special, and keeps
	// untagged specials too since catalog type data is frequently missing.
	SpecialsSmart SpecialsPolicy = iota
	// SpecialsAll keeps every season-0 entry.
	SpecialsAll
	// SpecialsNone drops every season-0 entry.
	SpecialsNone
)

// ParseSpecialsPolicy converts a configuration string into a policy.
func ParseSpecialsPolicy(value string) (SpecialsPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "smart", "":
		return SpecialsSmart, nil
	case "all":
		return SpecialsAll, nil
	case "none":
		return SpecialsNone, nil
	default:
		return SpecialsSmart, fmt.Errorf("specials policy: unsupported value %q", value)
	}
}

func (p SpecialsPolicy) String() string {
	switch p {
	case SpecialsAll:
		return "all"
	case SpecialsNone:
		return "none"
	default:
		return "smart"
	}
}

// FilterAired returns the episodes that are available to track as of now:
// a known air date that is not in the future, with season-0 entries
// admitted per the specials policy. Comparison is at day granularity, so
// an episode airing today counts as aired. Input order is preserved.
func FilterAired(episodes []Episode, policy SpecialsPolicy, now time.Time) []Episode {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	aired := make([]Episode, 0, len(episodes))
	for _, e := range episodes {
		if trackable(e, policy, today) {
			aired = append(aired, e)
		}
	}
	return aired
}

func trackable(e Episode, policy SpecialsPolicy, today time.Time) bool {
	if e.AirDate == "" {
		return false
	}
	airDate, err := time.Parse(airDateLayout, e.AirDate)
	if err != nil {
		// An unparseable date means the catalog does not really know when
		// the episode airs. Treat it as unaired rather than erroring.
		return false
	}
	if airDate.After(today) {
		return false
	}

	if e.Season != nil && *e.Season == 0 {
		switch policy {
		case SpecialsNone:
			return false
		case SpecialsAll:
			return true
		default:
			if e.Type != "" {
				return e.Type == TypeSignificantSpecial
			}
			// No type information: keep the special. Catalog type data is
			// incomplete often enough that dropping untagged specials
			// would silently hide real movie releases.
			return true
		}
	}
	return true
}
