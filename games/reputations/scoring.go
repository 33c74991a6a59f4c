/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package reputations

import "fmt"

const (
	ExactMatchPoints = 10
	CloseMatchPoints = 5
)

// MaxRoundPoints is the best possible score for a round of n cards.
func MaxRoundPoints(n int) int {
	return n * ExactMatchPoints
}

// Match classifies how closely an informant placed a card.
type Match int

const (
	None Match = iota
	Close
	Exact
)

func (m Match) String() string {
	switch m {
	case Exact:
		return "exact"
	case Close:
		return "close"
	default:
		return "none"
	}
}

func (m Match) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Points awarded for a single card with this classification.
func (m Match) Points() int {
	switch m {
	case Exact:
		return ExactMatchPoints
	case Close:
		return CloseMatchPoints
	default:
		return 0
	}
}

// CardResult is the comparison outcome for the card the informant placed at
// InformantPosition. Positions are zero-based.
type CardResult struct {
	Card              CardID `json:"card"`
	Match             Match  `json:"match"`
	InformantPosition int    `json:"informant_position"`
	SubjectPosition   int    `json:"subject_position"`
	Points            int    `json:"points"`
}

// Detail renders the result as a line of round feedback.
func (c CardResult) Detail() string {
	switch c.Match {
	case Exact:
		return fmt.Sprintf("Exact match at position %d: +%d points", c.InformantPosition+1, c.Points)
	case Close:
		return fmt.Sprintf("Close match at position %d: +%d points", c.InformantPosition+1, c.Points)
	default:
		return fmt.Sprintf("No match at position %d: +0 points", c.InformantPosition+1)
	}
}

// RoundResult is the scored comparison of two rankings.
type RoundResult struct {
	Points    int          `json:"points"`
	MaxPoints int          `json:"max_points"`
	Cards     []CardResult `json:"cards"`
}

// ScoreRound compares an informant's guess against the subject's ranking.
//
// For each informant position i, an identical card at subject position i is
// an exact match; otherwise the card is looked up by ID in the subject's
// ranking and scores a close match when it sits exactly one position away.
// Both rankings must be permutations of the same card set.
func ScoreRound(subject, informant Ranking) (RoundResult, error) {
	if err := ValidateRanking(informant, subject); err != nil {
		return RoundResult{}, err
	}

	result := RoundResult{
		MaxPoints: MaxRoundPoints(len(subject)),
		Cards:     make([]CardResult, len(informant)),
	}

	for i, id := range informant {
		j := subject.Index(id)

		m := None
		switch {
		case subject[i] == id:
			m = Exact
		case j == i-1 || j == i+1:
			m = Close
		}

		result.Cards[i] = CardResult{
			Card:              id,
			Match:             m,
			InformantPosition: i,
			SubjectPosition:   j,
			Points:            m.Points(),
		}
		result.Points += m.Points()
	}

	return result, nil
}

// Details returns one feedback line per informant position.
func (r RoundResult) Details() []string {
	lines := make([]string, len(r.Cards))
	for i, c := range r.Cards {
		lines[i] = c.Detail()
	}
	return lines
}

// Classification returns the match for a card, and false if it was not scored.
func (r RoundResult) Classification(id CardID) (Match, bool) {
	for _, c := range r.Cards {
		if c.Card == id {
			return c.Match, true
		}
	}
	return None, false
}
