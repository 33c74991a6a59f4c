/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Seednode/reputations/games/reputations"
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

// errorf logs regardless of verbosity.
func errorf(format string, args ...any) {
	log.Printf("%s | ERROR: "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

// drainErrors logs handler write errors until errs is closed.
func drainErrors(errs <-chan error) {
	for err := range errs {
		errorf("%v", err)
	}
}

// errorCode maps a game error onto the code sent to websocket clients.
func errorCode(err error) string {
	switch {
	case errors.Is(err, reputations.ErrInvalidRanking):
		return "invalid_ranking"
	case errors.Is(err, reputations.ErrInsufficientPlayers):
		return "insufficient_players"
	case errors.Is(err, reputations.ErrPhaseViolation):
		return "phase_violation"
	case errors.Is(err, reputations.ErrInvalidPlayer):
		return "invalid_player"
	case errors.Is(err, reputations.ErrInvalidConfig):
		return "invalid_config"
	default:
		return "error"
	}
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(getFavicon())
	htmlBody.WriteString(`<link rel="stylesheet" href="/assets/reputations/app.css">`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf(`<body><main class="page">%s</main></body></html>`, body))

	return htmlBody.String()
}
