// Package filter provides pure, order-preserving predicates over contest
// sequences. Predicates never fail: a side that cannot satisfy a predicate
// simply does not match.
package filter

import (
	"strconv"
	"strings"

	"ncaa-contests-service/internal/domain/contests"
)

// Top25Rank is the highest poll rank considered a ranked matchup.
const Top25Rank = 25

// Predicate reports whether a contest belongs in a filtered view.
type Predicate func(contests.Contest) bool

// Top25 matches contests where either side carries a poll rank of 25 or
// better. Ranks are display strings; a value that does not parse as an
// integer after trimming never matches.
func Top25(c contests.Contest) bool {
	return sideRanked(c.HomeTeam) || sideRanked(c.AwayTeam)
}

func sideRanked(side contests.TeamSide) bool {
	rank, ok := parseRank(side.Rank)
	return ok && rank <= Top25Rank
}

func parseRank(raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	rank, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return rank, true
}

// Conference matches contests where either side's conference contains the
// given text, case-insensitively. Empty text or "all" matches everything.
func Conference(text string) Predicate {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" || needle == "all" {
		return func(contests.Contest) bool { return true }
	}
	return func(c contests.Contest) bool {
		return strings.Contains(strings.ToLower(c.HomeTeam.Conference), needle) ||
			strings.Contains(strings.ToLower(c.AwayTeam.Conference), needle)
	}
}

// Apply returns the subsequence of input matching every predicate, preserving
// the original relative order.
func Apply(input []contests.Contest, preds ...Predicate) []contests.Contest {
	out := make([]contests.Contest, 0, len(input))
	for _, c := range input {
		if matchesAll(c, preds) {
			out = append(out, c)
		}
	}
	return out
}

func matchesAll(c contests.Contest, preds []Predicate) bool {
	for _, pred := range preds {
		if pred != nil && !pred(c) {
			return false
		}
	}
	return true
}
