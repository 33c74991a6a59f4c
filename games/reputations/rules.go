/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package reputations

import "fmt"

// Mode selects how a session scores its rounds.
type Mode string

const (
	Classical   Mode = "classical"
	Competitive Mode = "competitive"
)

// ParseMode accepts "classical" or "competitive".
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Classical, Competitive:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
}

// MinPlayers returns the smallest roster the mode can start with.
func (m Mode) MinPlayers() int {
	if m == Competitive {
		return 3
	}
	return 2
}

// ScoreRule awards per-player points for a resolved round in Competitive
// mode. The returned map holds deltas keyed by player name.
type ScoreRule interface {
	Score(round RoundRecord, players []string) map[string]int
}

// ScoreRuleFunc adapts a function to ScoreRule.
type ScoreRuleFunc func(round RoundRecord, players []string) map[string]int

func (f ScoreRuleFunc) Score(round RoundRecord, players []string) map[string]int {
	return f(round, players)
}

// InformantRule credits a round's match points to the player who submitted
// the informant ranking.
type InformantRule struct{}

func (InformantRule) Score(round RoundRecord, _ []string) map[string]int {
	if round.Informant == "" {
		return nil
	}
	return map[string]int{round.Informant: round.Result.Points}
}

// ParseRule maps a rule name to a ScoreRule. "none" yields a nil rule.
func ParseRule(name string) (ScoreRule, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "informant":
		return InformantRule{}, nil
	}
	return nil, fmt.Errorf("%w: unknown competitive rule %q", ErrInvalidConfig, name)
}
