/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package reputations

import (
	"errors"
	"testing"
)

func ids(s ...string) Ranking {
	r := make(Ranking, len(s))
	for i, v := range s {
		r[i] = CardID(v)
	}
	return r
}

func TestScoreRound(t *testing.T) {
	subject := ids("1", "2", "3", "4", "5")

	tests := []struct {
		name      string
		informant Ranking
		want      int
		matches   []Match
	}{
		{
			name:      "identical rankings",
			informant: ids("1", "2", "3", "4", "5"),
			want:      50,
			matches:   []Match{Exact, Exact, Exact, Exact, Exact},
		},
		{
			name:      "first two swapped",
			informant: ids("2", "1", "3", "4", "5"),
			want:      40,
			matches:   []Match{Close, Close, Exact, Exact, Exact},
		},
		{
			name:      "reversed",
			informant: ids("5", "4", "3", "2", "1"),
			want:      10,
			matches:   []Match{None, None, Exact, None, None},
		},
		{
			name:      "rotated by one",
			informant: ids("5", "1", "2", "3", "4"),
			want:      20,
			matches:   []Match{None, Close, Close, Close, Close},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreRound(subject, tt.informant)
			if err != nil {
				t.Fatalf("ScoreRound() error = %v", err)
			}

			if got.Points != tt.want {
				t.Errorf("Points = %d, want %d", got.Points, tt.want)
			}
			if got.MaxPoints != 50 {
				t.Errorf("MaxPoints = %d, want 50", got.MaxPoints)
			}

			for i, m := range tt.matches {
				c := got.Cards[i]
				if c.Match != m {
					t.Errorf("position %d: match = %v, want %v", i, c.Match, m)
				}
				if c.Card != tt.informant[i] {
					t.Errorf("position %d: card = %q, want %q", i, c.Card, tt.informant[i])
				}
				if c.InformantPosition != i {
					t.Errorf("position %d: informant position = %d", i, c.InformantPosition)
				}
				if c.SubjectPosition != subject.Index(c.Card) {
					t.Errorf("position %d: subject position = %d, want %d", i, c.SubjectPosition, subject.Index(c.Card))
				}
			}
		})
	}
}

func TestScoreRoundRejectsMismatchedRankings(t *testing.T) {
	subject := ids("a", "b", "c")

	tests := []struct {
		name      string
		informant Ranking
	}{
		{"short", ids("a", "b")},
		{"long", ids("a", "b", "c", "d")},
		{"duplicate", ids("a", "a", "c")},
		{"foreign", ids("a", "b", "z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ScoreRound(subject, tt.informant); !errors.Is(err, ErrInvalidRanking) {
				t.Errorf("ScoreRound() error = %v, want ErrInvalidRanking", err)
			}
		})
	}
}

// Every permutation of four cards scores within bounds, and consistently
// renaming the cards never changes the score.
func TestScoreRoundAllPermutations(t *testing.T) {
	subject := ids("a", "b", "c", "d")
	rename := map[CardID]CardID{"a": "w", "b": "x", "c": "y", "d": "z"}

	relabel := func(r Ranking) Ranking {
		out := make(Ranking, len(r))
		for i, id := range r {
			out[i] = rename[id]
		}
		return out
	}

	var permute func(prefix, rest Ranking)
	count := 0
	permute = func(prefix, rest Ranking) {
		if len(rest) == 0 {
			count++

			got, err := ScoreRound(subject, prefix)
			if err != nil {
				t.Fatalf("ScoreRound(%v) error = %v", prefix, err)
			}
			if got.Points < 0 || got.Points > MaxRoundPoints(len(subject)) {
				t.Errorf("ScoreRound(%v) = %d, out of range", prefix, got.Points)
			}

			renamed, err := ScoreRound(relabel(subject), relabel(prefix))
			if err != nil {
				t.Fatalf("relabelled ScoreRound(%v) error = %v", prefix, err)
			}
			if renamed.Points != got.Points {
				t.Errorf("relabelled score %d != %d for %v", renamed.Points, got.Points, prefix)
			}
			return
		}

		for i := range rest {
			next := append(prefix.clone(), rest[i])
			remaining := append(rest[:i:i], rest[i+1:]...)
			permute(next, remaining)
		}
	}
	permute(nil, subject)

	if count != 24 {
		t.Fatalf("visited %d permutations, want 24", count)
	}
}

func TestScoreRoundSingleCard(t *testing.T) {
	got, err := ScoreRound(ids("only"), ids("only"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Points != ExactMatchPoints || got.MaxPoints != ExactMatchPoints {
		t.Errorf("got %d/%d, want %d/%d", got.Points, got.MaxPoints, ExactMatchPoints, ExactMatchPoints)
	}
}

func TestRoundResultDetails(t *testing.T) {
	got, err := ScoreRound(ids("1", "2", "3"), ids("2", "1", "3"))
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"Close match at position 1: +5 points",
		"Close match at position 2: +5 points",
		"Exact match at position 3: +10 points",
	}
	for i, line := range got.Details() {
		if line != want[i] {
			t.Errorf("Details()[%d] = %q, want %q", i, line, want[i])
		}
	}

	if m, ok := got.Classification("3"); !ok || m != Exact {
		t.Errorf("Classification(3) = %v, %v", m, ok)
	}
	if _, ok := got.Classification("9"); ok {
		t.Error("Classification(9) found a card that was not in play")
	}
}

func TestParseRanking(t *testing.T) {
	got := ParseRanking(" a, b ,,c ")
	if got.String() != "a,b,c" {
		t.Errorf("ParseRanking() = %q, want %q", got.String(), "a,b,c")
	}
}
