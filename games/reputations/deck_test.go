/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package reputations

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() error = %v", err)
	}
	if c.Len() < DefaultCardsPerRound {
		t.Fatalf("default catalog has %d cards, want at least %d", c.Len(), DefaultCardsPerRound)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		body    string
		want    int
		wantErr bool
	}{
		{
			name: "toml",
			file: "traits.toml",
			body: "[[cards]]\nid = \"a\"\nname = \"Alpha\"\n\n[[cards]]\nid = \"b\"\nname = \"Beta\"\ndescription = \"second\"\n",
			want: 2,
		},
		{
			name: "yaml",
			file: "traits.yaml",
			body: "cards:\n  - id: a\n    name: Alpha\n  - id: b\n    name: Beta\n  - id: c\n    name: Gamma\n",
			want: 3,
		},
		{
			name:    "duplicate ids",
			file:    "dup.yml",
			body:    "cards:\n  - id: a\n    name: Alpha\n  - id: a\n    name: Again\n",
			wantErr: true,
		},
		{
			name:    "missing name",
			file:    "noname.toml",
			body:    "[[cards]]\nid = \"a\"\n",
			wantErr: true,
		},
		{
			name:    "empty",
			file:    "empty.toml",
			body:    "",
			wantErr: true,
		},
		{
			name:    "unsupported extension",
			file:    "traits.json",
			body:    "{}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}

			c, err := LoadCatalog(path)
			if tt.wantErr {
				if !errors.Is(err, ErrCatalog) {
					t.Fatalf("LoadCatalog() error = %v, want ErrCatalog", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadCatalog() error = %v", err)
			}
			if c.Len() != tt.want {
				t.Errorf("Len() = %d, want %d", c.Len(), tt.want)
			}
		})
	}
}

func TestShuffledDeckDraw(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}

	d := NewDeck(c, rand.New(rand.NewPCG(1, 2)))

	for range 20 {
		cards, err := d.Draw(5)
		if err != nil {
			t.Fatalf("Draw() error = %v", err)
		}

		seen := make(map[CardID]bool)
		for _, card := range cards {
			if seen[card.ID] {
				t.Fatalf("Draw() returned %q twice", card.ID)
			}
			seen[card.ID] = true
		}
		if len(seen) != 5 {
			t.Fatalf("Draw() returned %d cards, want 5", len(seen))
		}
	}

	if _, err := d.Draw(c.Len() + 1); !errors.Is(err, ErrCatalog) {
		t.Errorf("Draw(too many) error = %v, want ErrCatalog", err)
	}
	if _, err := d.Draw(0); !errors.Is(err, ErrCatalog) {
		t.Errorf("Draw(0) error = %v, want ErrCatalog", err)
	}
}
