/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Seednode/reputations/games/reputations"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind            string
	catalogPath     string
	cardsPerRound   int
	competitiveRule string
	mode            string
	playerTimeout   time.Duration
	port            int
	prefix          string
	profile         bool
	rounds          int
	sessionTimeout  time.Duration
	tlsCert         string
	tlsKey          string
	verbose         bool
	version         bool

	catalog *reputations.Catalog
	rule    reputations.ScoreRule
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if err := c.gameOptions().Validate(); err != nil {
		return err
	}

	rule, err := reputations.ParseRule(c.competitiveRule)
	if err != nil {
		return err
	}
	c.rule = rule

	catalog, err := loadCatalog(c.catalogPath)
	if err != nil {
		return err
	}
	if catalog.Len() < c.cardsPerRound {
		return fmt.Errorf("catalog has %d cards, cannot deal %d per round", catalog.Len(), c.cardsPerRound)
	}
	c.catalog = catalog

	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// gameOptions returns the options new lobbies start with.
func (c *Config) gameOptions() reputations.Options {
	return reputations.Options{
		Mode:          reputations.Mode(c.mode),
		TotalRounds:   c.rounds,
		CardsPerRound: c.cardsPerRound,
	}
}

func loadCatalog(path string) (*reputations.Catalog, error) {
	if path == "" {
		return reputations.DefaultCatalog()
	}
	return reputations.LoadCatalog(path)
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("REPUTATIONS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "reputations",
		Short:         "Serves Reputations, a party game about how well your friends know you.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: REPUTATIONS_BIND)")
	fs.StringVar(&cfg.catalogPath, "catalog", "", "path to a .toml or .yaml trait card catalog (env: REPUTATIONS_CATALOG)")
	fs.IntVar(&cfg.cardsPerRound, "cards-per-round", reputations.DefaultCardsPerRound, "trait cards dealt each round (env: REPUTATIONS_CARDS_PER_ROUND)")
	fs.StringVar(&cfg.competitiveRule, "competitive-rule", "none", "per-player scoring in competitive mode: none, informant (env: REPUTATIONS_COMPETITIVE_RULE)")
	fs.StringVar(&cfg.mode, "mode", string(reputations.Classical), "default game mode: classical, competitive (env: REPUTATIONS_MODE)")
	fs.DurationVar(&cfg.playerTimeout, "player-timeout", 10*time.Minute, "time before idle players are kicked (env: REPUTATIONS_PLAYER_TIMEOUT)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: REPUTATIONS_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: REPUTATIONS_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: REPUTATIONS_PROFILE)")
	fs.IntVar(&cfg.rounds, "rounds", reputations.DefaultRounds, "default number of rounds per game (env: REPUTATIONS_ROUNDS)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle game sessions are ended (env: REPUTATIONS_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: REPUTATIONS_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: REPUTATIONS_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: REPUTATIONS_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: REPUTATIONS_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.AddCommand(newScoreCmd(), newCatalogCmd())

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("reputations v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
