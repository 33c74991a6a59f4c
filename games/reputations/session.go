/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package reputations

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"
)

// Phase is a stage of the game lifecycle.
type Phase string

const (
	PhaseSetup             Phase = "setup"
	PhaseAwaitingSubject   Phase = "awaiting_subject"
	PhaseAwaitingInformant Phase = "awaiting_informant"
	PhaseRoundResolved     Phase = "round_resolved"
	PhaseGameOver          Phase = "game_over"
)

const (
	DefaultRounds        = 5
	DefaultCardsPerRound = 5
)

// Options are the settings a game is played with.
type Options struct {
	Mode          Mode `json:"mode"`
	TotalRounds   int  `json:"total_rounds"`
	CardsPerRound int  `json:"cards_per_round"`
}

func DefaultOptions() Options {
	return Options{
		Mode:          Classical,
		TotalRounds:   DefaultRounds,
		CardsPerRound: DefaultCardsPerRound,
	}
}

func (o Options) Validate() error {
	if _, err := ParseMode(string(o.Mode)); err != nil {
		return err
	}
	if o.TotalRounds < 1 {
		return fmt.Errorf("%w: total rounds must be at least 1, got %d", ErrInvalidConfig, o.TotalRounds)
	}
	if o.CardsPerRound < 1 {
		return fmt.Errorf("%w: cards per round must be at least 1, got %d", ErrInvalidConfig, o.CardsPerRound)
	}
	return nil
}

// Scores holds the running totals. Team and Game are used in Classical mode,
// Players in Competitive mode.
type Scores struct {
	Team    int            `json:"team"`
	Game    int            `json:"game"`
	Players map[string]int `json:"players,omitempty"`
}

func (s Scores) clone() Scores {
	s.Players = maps.Clone(s.Players)
	return s
}

// Verdict is the outcome of a finished Classical game.
type Verdict string

const (
	TeamWins Verdict = "team"
	GameWins Verdict = "game"
	Tie      Verdict = "tie"
)

// RoundRecord is the retained detail of a resolved round.
type RoundRecord struct {
	Number           int         `json:"number"`
	Subject          string      `json:"subject"`
	Informant        string      `json:"informant,omitempty"`
	Cards            []Card      `json:"cards"`
	SubjectRanking   Ranking     `json:"subject_ranking"`
	InformantRanking Ranking     `json:"informant_ranking"`
	Result           RoundResult `json:"result"`
}

// RoundView is what a caller needs to present a freshly started round.
type RoundView struct {
	Phase       Phase  `json:"phase"`
	Number      int    `json:"number"`
	TotalRounds int    `json:"total_rounds"`
	Subject     string `json:"subject,omitempty"`
	Cards       []Card `json:"cards,omitempty"`
	Status      string `json:"status"`
}

// SubmitResult reports the effect of an accepted ranking. Result is set only
// when the submission resolved the round.
type SubmitResult struct {
	Phase  Phase        `json:"phase"`
	Status string       `json:"status"`
	Cards  []Card       `json:"cards,omitempty"`
	Result *RoundResult `json:"result,omitempty"`
}

// Session is a single game of Reputations. A Session is not safe for
// concurrent use; callers serialize access.
type Session struct {
	opts    Options
	deck    Deck
	rule    ScoreRule
	shuffle func(n int, swap func(i, j int))

	players []string
	phase   Phase
	round   int
	subject string

	cards     []Card
	display   []Card
	subjectR  Ranking
	informant string

	history []RoundRecord
	scores  Scores
}

// NewSession returns a session in the setup phase.
func NewSession(deck Deck, opts Options) (*Session, error) {
	if deck == nil {
		return nil, fmt.Errorf("%w: no deck", ErrInvalidConfig)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Session{
		opts:    opts,
		deck:    deck,
		shuffle: rand.Shuffle,
		phase:   PhaseSetup,
	}, nil
}

// SetRule sets the Competitive scoring rule. A nil rule awards no points.
func (s *Session) SetRule(r ScoreRule) {
	s.rule = r
}

// SetShuffler replaces the function used to reorder cards for informants.
func (s *Session) SetShuffler(f func(n int, swap func(i, j int))) {
	if f == nil {
		f = func(int, func(i, j int)) {}
	}
	s.shuffle = f
}

func (s *Session) Phase() Phase {
	return s.phase
}

func (s *Session) Round() int {
	return s.round
}

func (s *Session) Subject() string {
	return s.subject
}

func (s *Session) Options() Options {
	return s.opts
}

func (s *Session) Players() []string {
	return slices.Clone(s.players)
}

func (s *Session) Scores() Scores {
	return s.scores.clone()
}

// Cards returns the current round's cards in display order.
func (s *Session) Cards() []Card {
	return slices.Clone(s.display)
}

func (s *Session) History() []RoundRecord {
	return slices.Clone(s.history)
}

// Configure replaces the game options. Only allowed during setup.
func (s *Session) Configure(opts Options) error {
	if s.phase != PhaseSetup {
		return s.violation("configure")
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	s.opts = opts
	return nil
}

// AddPlayer appends a player to the roster. Names are trimmed and must be
// unique regardless of case.
func (s *Session) AddPlayer(name string) error {
	if s.phase != PhaseSetup {
		return s.violation("add player")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidPlayer)
	}
	if s.playerIndex(name) >= 0 {
		return fmt.Errorf("%w: %q is already playing", ErrInvalidPlayer, name)
	}

	s.players = append(s.players, name)
	return nil
}

// RemovePlayer drops a player from the roster. Only allowed during setup.
func (s *Session) RemovePlayer(name string) error {
	if s.phase != PhaseSetup {
		return s.violation("remove player")
	}

	i := s.playerIndex(strings.TrimSpace(name))
	if i < 0 {
		return fmt.Errorf("%w: %q is not playing", ErrInvalidPlayer, name)
	}

	s.players = slices.Delete(s.players, i, i+1)
	return nil
}

func (s *Session) playerIndex(name string) int {
	return slices.IndexFunc(s.players, func(p string) bool {
		return strings.EqualFold(p, name)
	})
}

// StartRound starts the first round from setup, or advances from a resolved
// round to the next one. Once the configured number of rounds has been
// played it moves the session to game over and returns a view of that phase.
func (s *Session) StartRound() (RoundView, error) {
	switch s.phase {
	case PhaseSetup:
		if need := s.opts.Mode.MinPlayers(); len(s.players) < need {
			return RoundView{}, fmt.Errorf("%w: %s mode needs at least %d players, have %d",
				ErrInsufficientPlayers, s.opts.Mode, need, len(s.players))
		}

		if err := s.beginRound(1); err != nil {
			return RoundView{}, err
		}

		s.history = nil
		s.scores = Scores{}
		if s.opts.Mode == Competitive {
			s.scores.Players = make(map[string]int, len(s.players))
			for _, p := range s.players {
				s.scores.Players[p] = 0
			}
		}

	case PhaseRoundResolved:
		if s.round+1 > s.opts.TotalRounds {
			s.phase = PhaseGameOver
			s.cards, s.display, s.subjectR = nil, nil, nil
			s.subject, s.informant = "", ""
			return s.roundView(), nil
		}

		if err := s.beginRound(s.round + 1); err != nil {
			return RoundView{}, err
		}

	default:
		return RoundView{}, s.violation("start round")
	}

	return s.roundView(), nil
}

// beginRound draws before touching any state so a failed draw leaves the
// session unchanged.
func (s *Session) beginRound(n int) error {
	cards, err := s.deck.Draw(s.opts.CardsPerRound)
	if err != nil {
		return err
	}
	if len(cards) != s.opts.CardsPerRound {
		return fmt.Errorf("%w: deck returned %d cards, want %d", ErrCatalog, len(cards), s.opts.CardsPerRound)
	}

	ids := make([]CardID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	if err := ValidateRanking(ids, ids); err != nil {
		return fmt.Errorf("%w: deck returned duplicate cards", ErrCatalog)
	}

	s.round = n
	s.subject = s.players[(n-1)%len(s.players)]
	s.cards = cards
	s.display = slices.Clone(cards)
	s.subjectR = nil
	s.informant = ""
	s.phase = PhaseAwaitingSubject

	return nil
}

func (s *Session) roundView() RoundView {
	return RoundView{
		Phase:       s.phase,
		Number:      s.round,
		TotalRounds: s.opts.TotalRounds,
		Subject:     s.subject,
		Cards:       slices.Clone(s.display),
		Status:      s.Status(),
	}
}

// SubmitRanking accepts the next ranking for the current round without
// naming who submitted it.
func (s *Session) SubmitRanking(r Ranking) (SubmitResult, error) {
	return s.SubmitRankingAs("", r)
}

// SubmitRankingAs accepts the next ranking for the current round from
// player. An empty player skips the identity checks. The first accepted
// ranking is the subject's; the second resolves the round.
func (s *Session) SubmitRankingAs(player string, r Ranking) (SubmitResult, error) {
	switch s.phase {
	case PhaseAwaitingSubject, PhaseAwaitingInformant:
	default:
		return SubmitResult{}, s.violation("submit ranking")
	}

	if player != "" {
		// Records and per-player scores use the roster's spelling.
		if i := s.playerIndex(strings.TrimSpace(player)); i >= 0 {
			player = s.players[i]
		}

		isSubject := strings.EqualFold(player, s.subject)
		switch {
		case s.phase == PhaseAwaitingSubject && !isSubject:
			return SubmitResult{}, fmt.Errorf("%w: waiting for %s to rank", ErrInvalidPlayer, s.subject)
		case s.phase == PhaseAwaitingInformant && isSubject:
			return SubmitResult{}, fmt.Errorf("%w: the subject cannot inform on themselves", ErrInvalidPlayer)
		case s.phase == PhaseAwaitingInformant && s.playerIndex(player) < 0:
			return SubmitResult{}, fmt.Errorf("%w: %q is not playing", ErrInvalidPlayer, player)
		}
	}

	if err := ValidateRanking(r, s.cardIDs()); err != nil {
		return SubmitResult{}, err
	}

	if s.phase == PhaseAwaitingSubject {
		s.subjectR = r.clone()
		s.display = slices.Clone(s.cards)
		s.shuffle(len(s.display), func(i, j int) {
			s.display[i], s.display[j] = s.display[j], s.display[i]
		})
		s.phase = PhaseAwaitingInformant

		return SubmitResult{
			Phase:  s.phase,
			Status: s.Status(),
			Cards:  slices.Clone(s.display),
		}, nil
	}

	result, err := ScoreRound(s.subjectR, r)
	if err != nil {
		return SubmitResult{}, err
	}

	rec := RoundRecord{
		Number:           s.round,
		Subject:          s.subject,
		Informant:        player,
		Cards:            slices.Clone(s.cards),
		SubjectRanking:   s.subjectR.clone(),
		InformantRanking: r.clone(),
		Result:           result,
	}

	switch s.opts.Mode {
	case Classical:
		s.scores.Team += result.Points
		s.scores.Game += result.MaxPoints - result.Points
	case Competitive:
		if s.rule != nil {
			if s.scores.Players == nil {
				s.scores.Players = make(map[string]int)
			}
			for p, delta := range s.rule.Score(rec, slices.Clone(s.players)) {
				s.scores.Players[p] += delta
			}
		}
	}

	s.informant = player
	s.history = append(s.history, rec)
	s.phase = PhaseRoundResolved

	return SubmitResult{
		Phase:  s.phase,
		Status: s.Status(),
		Result: &result,
	}, nil
}

func (s *Session) cardIDs() []CardID {
	ids := make([]CardID, len(s.cards))
	for i, c := range s.cards {
		ids[i] = c.ID
	}
	return ids
}

// Reset returns the session to setup with an empty roster and zero scores.
// Options, rule and deck are kept.
func (s *Session) Reset() {
	*s = Session{
		opts:    s.opts,
		deck:    s.deck,
		rule:    s.rule,
		shuffle: s.shuffle,
		phase:   PhaseSetup,
	}
}

// Verdict returns the winner of a finished Classical game, or "" if the
// game is still running or is Competitive.
func (s *Session) Verdict() Verdict {
	if s.phase != PhaseGameOver || s.opts.Mode != Classical {
		return ""
	}

	switch {
	case s.scores.Team > s.scores.Game:
		return TeamWins
	case s.scores.Team < s.scores.Game:
		return GameWins
	default:
		return Tie
	}
}

// Status is a one-line description of what the game is waiting for.
func (s *Session) Status() string {
	switch s.phase {
	case PhaseSetup:
		return fmt.Sprintf("Waiting for players (%d/%d minimum)", len(s.players), s.opts.Mode.MinPlayers())
	case PhaseAwaitingSubject:
		return fmt.Sprintf("Subject (%s) - rank traits from most to least like you", s.subject)
	case PhaseAwaitingInformant:
		return fmt.Sprintf("Informants - predict how %s ranked the traits", s.subject)
	case PhaseRoundResolved:
		return fmt.Sprintf("Round %d complete", s.round)
	case PhaseGameOver:
		switch s.Verdict() {
		case TeamWins:
			return "Team wins!"
		case GameWins:
			return "Game wins!"
		case Tie:
			return "It's a tie!"
		}
		return "Game over"
	}
	return ""
}

func (s *Session) violation(op string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrPhaseViolation, op, s.phase)
}

// View is a point-in-time copy of a session for rendering.
type View struct {
	Phase       Phase        `json:"phase"`
	Status      string       `json:"status"`
	Options     Options      `json:"options"`
	Round       int          `json:"round"`
	Players     []string     `json:"players"`
	Subject     string       `json:"subject,omitempty"`
	Informant   string       `json:"informant,omitempty"`
	Cards       []Card       `json:"cards,omitempty"`
	Scores      Scores       `json:"scores"`
	LastRound   *RoundRecord `json:"last_round,omitempty"`
	RoundsSoFar int          `json:"rounds_played"`
	Verdict     Verdict      `json:"verdict,omitempty"`
}

// Snapshot returns a copy of the session's observable state.
func (s *Session) Snapshot() View {
	v := View{
		Phase:       s.phase,
		Status:      s.Status(),
		Options:     s.opts,
		Round:       s.round,
		Players:     slices.Clone(s.players),
		Subject:     s.subject,
		Informant:   s.informant,
		Cards:       slices.Clone(s.display),
		Scores:      s.scores.clone(),
		RoundsSoFar: len(s.history),
		Verdict:     s.Verdict(),
	}

	if n := len(s.history); n > 0 && (s.phase == PhaseRoundResolved || s.phase == PhaseGameOver) {
		last := s.history[n-1]
		v.LastRound = &last
	}

	return v
}
