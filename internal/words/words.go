// internal/words/words.go
//
// Puzzle tables for the word-chain game.
//
// Responsibilities:
//   - Load start/target pairs from an environment-provided YAML file or the embedded default.
//   - Normalize and sanity-check pairs (non-empty, distinct, single words).
//   - Supply RandomPuzzle, Puzzles, At and Stats.
//
// Initialization behavior (Init):
//   1. If WORDS_PUZZLES_FILE is set, load pairs from that file.
//   2. Otherwise fall back to assets/puzzles.yaml.
//
// File format:
//
//	puzzles:
//	  - {start: cold, target: fire, difficulty: easy}
//
// Initialization is run once (sync.Once).

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordchain/assets"
)

// Puzzle is one start → target pair.
type Puzzle struct {
	Start      string `yaml:"start" json:"start"`
	Target     string `yaml:"target" json:"target"`
	Difficulty string `yaml:"difficulty" json:"difficulty"`
}

type puzzleFile struct {
	Puzzles []Puzzle `yaml:"puzzles"`
}

var (
	initOnce   sync.Once
	puzzles    []Puzzle
	initialErr error
)

// Init loads the puzzle table exactly once.
// Returns an error if the table ends up empty.
func Init() error {
	initOnce.Do(func() {
		var raw []byte
		var err error
		if path := os.Getenv("WORDS_PUZZLES_FILE"); path != "" {
			raw, err = os.ReadFile(path)
		} else {
			raw, err = assets.PuzzlesYAML()
		}
		if err != nil {
			initialErr = fmt.Errorf("words: read puzzles: %w", err)
			return
		}
		puzzles, initialErr = Parse(raw)
	})
	return initialErr
}

// Parse decodes a puzzle table, dropping malformed pairs.
func Parse(raw []byte) ([]Puzzle, error) {
	var f puzzleFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("words: parse puzzles: %w", err)
	}
	out := make([]Puzzle, 0, len(f.Puzzles))
	for _, p := range f.Puzzles {
		p.Start = strings.ToLower(strings.TrimSpace(p.Start))
		p.Target = strings.ToLower(strings.TrimSpace(p.Target))
		if !isWord(p.Start) || !isWord(p.Target) || p.Start == p.Target {
			continue
		}
		if p.Difficulty == "" {
			p.Difficulty = "medium"
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, errors.New("words: puzzle list is empty")
	}
	return out, nil
}

// isWord reports whether s is a single lowercase a–z token.
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Puzzles returns the loaded table.
func Puzzles() []Puzzle {
	return puzzles
}

// At returns the puzzle at index i modulo the table size.
func At(i int) Puzzle {
	if len(puzzles) == 0 {
		return fallback
	}
	if i < 0 {
		i = -i
	}
	return puzzles[i%len(puzzles)]
}

var fallback = Puzzle{Start: "cold", Target: "fire", Difficulty: "easy"}

// RandomPuzzle returns a cryptographically random puzzle.
// If the table is not loaded yet, falls back to cold → fire.
func RandomPuzzle() Puzzle {
	if len(puzzles) == 0 {
		return fallback
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(puzzles))))
	return puzzles[nBig.Int64()]
}

// Stats returns the number of loaded puzzles per difficulty and in total.
func Stats() (byDifficulty map[string]int, total int) {
	byDifficulty = make(map[string]int)
	for _, p := range puzzles {
		byDifficulty[p.Difficulty]++
	}
	return byDifficulty, len(puzzles)
}
