// Package search ranks catalog search results and resolves tracked shows
// by approximate name.
//
// Matching uses token-fingerprint cosine similarity rather than exact
// string equality, so "frieren" finds "Frieren: Beyond Journey's End" and
// a typo'd tracked-show name still resolves.
package search

import (
	"sort"

	"owlwatch/internal/shows"
	"owlwatch/internal/textutil"
	"owlwatch/internal/tvmaze"
)

// DefaultResolveThreshold is the minimum similarity for ResolveTracked to
// accept a match.
const DefaultResolveThreshold = 0.5

// Result is one ranked search hit.
type Result struct {
	ShowID int64
	Name   string
	Year   int
	Status string
	// Score is the query similarity in percent (0-100).
	Score float64
}

// Rank scores catalog results against the query and returns the top limit
// hits, best first. Ties break alphabetically so output is deterministic.
func Rank(query string, results []tvmaze.SearchResult, limit int) []Result {
	queryPrint := textutil.NewFingerprint(query)

	ranked := make([]Result, 0, len(results))
	for _, r := range results {
		score := textutil.CosineSimilarity(queryPrint, textutil.NewFingerprint(r.Show.Name))
		ranked = append(ranked, Result{
			ShowID: r.Show.ID,
			Name:   r.Show.Name,
			Year:   r.Show.Year(),
			Status: r.Show.Status,
			Score:  score * 100,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Name < ranked[j].Name
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// ResolveTracked finds the tracked show best matching the query. Reports
// false when nothing reaches the threshold.
func ResolveTracked(query string, tracked []shows.Show, threshold float64) (shows.Show, bool) {
	queryPrint := textutil.NewFingerprint(query)

	var best shows.Show
	bestScore := 0.0
	found := false
	for _, show := range tracked {
		score := textutil.CosineSimilarity(queryPrint, textutil.NewFingerprint(show.Name))
		if score > bestScore {
			best = show
			bestScore = score
			found = true
		}
	}
	if !found || bestScore < threshold {
		return shows.Show{}, false
	}
	return best, true
}
