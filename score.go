/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Seednode/reputations/games/reputations"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// palette holds the colours used for terminal output. Colour is only
// enabled when writing to a terminal.
type palette struct {
	exact, close, none, header *color.Color
}

func newPalette(w io.Writer) palette {
	p := palette{
		exact:  color.New(color.FgGreen, color.Bold),
		close:  color.New(color.FgYellow),
		none:   color.New(color.FgRed),
		header: color.New(color.Bold),
	}

	f, ok := w.(*os.File)
	if ok && term.IsTerminal(int(f.Fd())) {
		return p
	}

	for _, c := range []*color.Color{p.exact, p.close, p.none, p.header} {
		c.DisableColor()
	}

	return p
}

func (p palette) match(m reputations.Match) *color.Color {
	switch m {
	case reputations.Exact:
		return p.exact
	case reputations.Close:
		return p.close
	default:
		return p.none
	}
}

func newScoreCmd() *cobra.Command {
	var subject, informant string

	cmd := &cobra.Command{
		Use:     "score",
		Short:   "Score an informant's guess against a subject's ranking",
		Example: `  reputations score --subject 1,2,3,4,5 --informant 2,1,3,4,5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" || informant == "" {
				return errors.New("both --subject and --informant are required")
			}

			result, err := reputations.ScoreRound(
				reputations.ParseRanking(subject),
				reputations.ParseRanking(informant),
			)
			if err != nil {
				return err
			}

			return printRoundResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "comma-separated card IDs, as ranked by the subject")
	cmd.Flags().StringVarP(&informant, "informant", "i", "", "comma-separated card IDs, as guessed by the informant")

	return cmd
}

func printRoundResult(w io.Writer, result reputations.RoundResult) error {
	p := newPalette(w)

	for _, c := range result.Cards {
		if _, err := p.match(c.Match).Fprintf(w, "%-6s", c.Match); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " %s (card %s, subject ranked it %d)\n", c.Detail(), c.Card, c.SubjectPosition+1); err != nil {
			return err
		}
	}

	_, err := p.header.Fprintf(w, "Points earned: %d/%d\n", result.Points, result.MaxPoints)

	return err
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [path]",
		Short: "Validate and list a trait card catalog (default: built-in)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			catalog, err := loadCatalog(path)
			if err != nil {
				return err
			}

			return printCatalog(cmd.OutOrStdout(), catalog)
		},
	}
}

func printCatalog(w io.Writer, catalog *reputations.Catalog) error {
	p := newPalette(w)

	for _, c := range catalog.Cards {
		if _, err := p.header.Fprintf(w, "%-20s", c.ID); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " %s: %s\n", c.Name, c.Description); err != nil {
			return err
		}
	}

	_, err := p.exact.Fprintf(w, "%d cards OK\n", catalog.Len())

	return err
}
