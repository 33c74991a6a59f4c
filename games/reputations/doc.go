/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package reputations implements the rules of Reputations, a party game about
// how well your friends know you.
//
// Each round, five trait cards are drawn from the catalog.
// One player, the subject, ranks them from most to least like themselves.
// The cards are shuffled and the other players, the informants, try to
// predict the subject's ranking.
// Every card the informants place in the same position as the subject scores
// 10 points; a card that is one position off scores 5.
//
// Subjects rotate through the roster in join order, one per round.
//
// Classical mode is cooperative: the round's points go to the team, and
// whatever the team missed out of the round's maximum goes to the game.
// Whichever side has more at the end wins.
//
// Competitive mode keeps a score per player, awarded by a pluggable ScoreRule.
package reputations
