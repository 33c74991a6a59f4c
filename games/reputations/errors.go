/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package reputations

import "errors"

var (
	// ErrInvalidRanking is returned when a submitted ranking is not a
	// permutation of the current round's drawn cards.
	ErrInvalidRanking = errors.New("invalid ranking")

	// ErrInsufficientPlayers is returned when a game is started with fewer
	// players than its mode requires.
	ErrInsufficientPlayers = errors.New("insufficient players")

	// ErrPhaseViolation is returned when a transition is requested out of order.
	ErrPhaseViolation = errors.New("phase violation")

	ErrInvalidConfig = errors.New("invalid config")
	ErrInvalidPlayer = errors.New("invalid player")
	ErrCatalog       = errors.New("invalid catalog")
)
