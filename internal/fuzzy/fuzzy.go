// Package fuzzy implements the prefix-biased fuzzy string matching used
// to rank completion candidates (§4.3 "Completion"). The scoring model
// is Smith-Waterman-style subsequence alignment with bonuses for
// matching at the start of an identifier, at the start of a "word"
// (after a colon, underscore, or case change — relevant for label keys
// like "sec:intro" and command names like "includeGraphics"), and for
// consecutive runs, mirroring how editors rank fuzzy matches over long
// identifier lists.
package fuzzy

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

const (
	bonusStartMatch  = 4 // matching the very first rune of the target
	bonusWordMatch   = 2 // matching the first rune of a non-initial word
	bonusConsecutive = 1 // each consecutively matched rune after the first
	bonusPrefixRun   = 1 // consecutive match anchored at the start of target
)

// Match reports whether every rune of query appears, in order, inside
// target (case-insensitively unless query's rune is uppercase), and if
// so returns a score where higher means a better match. Matching is
// greedy: the first target rune that can satisfy the next query rune is
// always taken.
func Match(query, target string) (bool, int) {
	if len(query) == 0 {
		return true, 0
	}
	if len(query) > len(target) {
		return false, 0
	}

	var (
		score        int
		prevRune     rune
		prevMatched  bool
		prefixStreak bool
		queryRune    rune
	)

	for byteIdx, targetRune := range target {
		if byteIdx == 0 || prevMatched {
			var size int
			queryRune, size = utf8.DecodeRuneInString(query)
			if queryRune == utf8.RuneError {
				return false, 0
			}
			query = query[size:]
		}

		startOfWord := byteIdx == 0 || isWordBoundary(prevRune, targetRune)
		if startOfWord {
			prefixStreak = byteIdx == 0
		}

		match := runesEqual(queryRune, targetRune)
		if match {
			switch {
			case byteIdx == 0:
				score += bonusStartMatch
			case startOfWord:
				score += bonusWordMatch
			}
			if prevMatched {
				score += bonusConsecutive
				if prefixStreak {
					score += bonusPrefixRun
				}
			}

			prevMatched = true
			if len(query) == 0 {
				return true, score
			}
		} else {
			prevMatched = false
			prefixStreak = false
		}

		prevRune = targetRune
	}

	return false, 0
}

func runesEqual(q, t rune) bool {
	if unicode.IsUpper(q) {
		return q == t
	}
	return unicode.ToLower(q) == unicode.ToLower(t)
}

// isWordBoundary reports whether target starts a new "word" after prev,
// recognising the separators that show up in TeX identifiers: colons
// and underscores (label keys like "sec:intro"), hyphens, and
// camelCase transitions (command names like "includeGraphics").
func isWordBoundary(prev, cur rune) bool {
	switch prev {
	case ':', '_', '-', '.':
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}

// Candidate pairs an arbitrary payload with its computed score, used by
// Rank to sort completion items.
type Candidate[T any] struct {
	Item  T
	Score int
}

// Rank filters items to those whose label matches query and returns
// them sorted by descending score, stable on ties so callers can
// pre-sort items (e.g. alphabetically, or by project order) before
// ranking.
func Rank[T any](query string, items []T, label func(T) string) []Candidate[T] {
	out := make([]Candidate[T], 0, len(items))
	for _, item := range items {
		ok, score := Match(query, label(item))
		if !ok {
			continue
		}
		out = append(out, Candidate[T]{Item: item, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
