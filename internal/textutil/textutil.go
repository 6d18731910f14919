// Package textutil provides token-frequency fingerprints and cosine
// similarity for approximate show-title matching.
//
// Tokenization lowercases, splits on non-alphanumeric runs, and keeps
// tokens of two or more characters. Titles whose tokens are all filtered
// out (very short names like "ER") fall back to the whole normalized
// string as a single token so they still fingerprint.
package textutil

import (
	"math"
	"regexp"
	"strings"
)

var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Fingerprint is a normalized term-frequency vector.
type Fingerprint struct {
	tokens map[string]float64
	norm   float64
}

// NewFingerprint builds a fingerprint from text. Returns nil for text that
// produces no tokens at all.
func NewFingerprint(text string) *Fingerprint {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{tokens: counts, norm: math.Sqrt(norm)}
}

// Tokenize splits text into lowercase tokens of length >= 2, falling back
// to the whole normalized string when everything is filtered out.
func Tokenize(text string) []string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return nil
	}
	raw := tokenSplitPattern.Split(lowered, -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		if len(token) < 2 {
			continue
		}
		terms = append(terms, token)
	}
	if len(terms) == 0 {
		compact := tokenSplitPattern.ReplaceAllString(lowered, "")
		if compact == "" {
			return nil
		}
		return []string{compact}
	}
	return terms
}

// CosineSimilarity computes the cosine similarity of two fingerprints in
// [0, 1]. Nil or empty fingerprints score 0.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// Similarity is a convenience over CosineSimilarity for two raw strings.
func Similarity(a, b string) float64 {
	return CosineSimilarity(NewFingerprint(a), NewFingerprint(b))
}
