/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package reputations

import (
	"fmt"
	"strings"
)

// CardID identifies a card within a catalog.
type CardID string

// Ranking is an ordered sequence of card IDs, most applicable first.
type Ranking []CardID

// ParseRanking splits a comma-separated list of card IDs.
func ParseRanking(s string) Ranking {
	fields := strings.Split(s, ",")

	r := make(Ranking, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		r = append(r, CardID(f))
	}

	return r
}

// Index returns the position of id in r, or -1.
func (r Ranking) Index(id CardID) int {
	for i, v := range r {
		if v == id {
			return i
		}
	}
	return -1
}

func (r Ranking) clone() Ranking {
	return append(Ranking(nil), r...)
}

func (r Ranking) String() string {
	parts := make([]string, len(r))
	for i, id := range r {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

// ValidateRanking reports whether r is a permutation of cards: same length,
// no duplicates, no foreign IDs.
func ValidateRanking(r Ranking, cards []CardID) error {
	if len(r) != len(cards) {
		return fmt.Errorf("%w: got %d cards, want %d", ErrInvalidRanking, len(r), len(cards))
	}

	drawn := make(map[CardID]bool, len(cards))
	for _, id := range cards {
		drawn[id] = false
	}

	for i, id := range r {
		seen, ok := drawn[id]
		switch {
		case !ok:
			return fmt.Errorf("%w: card %q at position %d is not in play", ErrInvalidRanking, id, i+1)
		case seen:
			return fmt.Errorf("%w: card %q ranked more than once", ErrInvalidRanking, id)
		}
		drawn[id] = true
	}

	return nil
}
