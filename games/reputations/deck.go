/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package reputations

import (
	"bytes"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed traits.toml
var defaultTraits []byte

// Card is a single trait card.
type Card struct {
	ID          CardID `json:"id" toml:"id" yaml:"id"`
	Name        string `json:"name" toml:"name" yaml:"name"`
	Description string `json:"description" toml:"description" yaml:"description"`
}

// Catalog is the fixed set of cards a deck draws from.
type Catalog struct {
	Cards []Card `toml:"cards" yaml:"cards"`
}

// DefaultCatalog returns the built-in trait catalog.
func DefaultCatalog() (*Catalog, error) {
	return decodeCatalog(defaultTraits, ".toml")
}

// LoadCatalog reads a catalog from a .toml, .yaml or .yml file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := decodeCatalog(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

func decodeCatalog(data []byte, ext string) (*Catalog, error) {
	var c Catalog

	switch ext {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrCatalog, ext)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks that every card has a unique, non-empty ID and a name.
func (c *Catalog) Validate() error {
	if len(c.Cards) == 0 {
		return fmt.Errorf("%w: no cards", ErrCatalog)
	}

	seen := make(map[CardID]bool, len(c.Cards))
	for i, card := range c.Cards {
		if card.ID == "" {
			return fmt.Errorf("%w: card %d has no id", ErrCatalog, i+1)
		}
		if strings.TrimSpace(card.Name) == "" {
			return fmt.Errorf("%w: card %q has no name", ErrCatalog, card.ID)
		}
		if seen[card.ID] {
			return fmt.Errorf("%w: duplicate card id %q", ErrCatalog, card.ID)
		}
		seen[card.ID] = true
	}

	return nil
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int {
	return len(c.Cards)
}

// Deck supplies the cards for each round.
type Deck interface {
	Draw(n int) ([]Card, error)
}

// ShuffledDeck draws unique random cards from a catalog. Every draw starts
// from the full catalog.
type ShuffledDeck struct {
	catalog *Catalog
	rng     *rand.Rand
}

// NewDeck returns a deck over c. A nil rng uses the global source.
func NewDeck(c *Catalog, rng *rand.Rand) *ShuffledDeck {
	return &ShuffledDeck{
		catalog: c,
		rng:     rng,
	}
}

func (d *ShuffledDeck) Draw(n int) ([]Card, error) {
	if n < 1 || n > d.catalog.Len() {
		return nil, fmt.Errorf("%w: cannot draw %d of %d cards", ErrCatalog, n, d.catalog.Len())
	}

	var perm []int
	if d.rng != nil {
		perm = d.rng.Perm(d.catalog.Len())
	} else {
		perm = rand.Perm(d.catalog.Len())
	}

	cards := make([]Card, n)
	for i := range cards {
		cards[i] = d.catalog.Cards[perm[i]]
	}

	return cards, nil
}
