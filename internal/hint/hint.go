// Package hint suggests a next word for a chain.
//
// A Suggester proposes candidate words (an LLM in production); the Engine keeps the
// first candidate the link validator accepts, so a hint is always a legal move.
package hint

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordchain/internal/game"
	"github.com/robalobadob/wordchain/internal/lexicon"
)

// ErrNoHint means no suggested candidate survived validation.
var ErrNoHint = errors.New("no hint available")

// Suggester proposes candidate next words, best first.
type Suggester interface {
	Suggest(ctx context.Context, from, target string, used []string) ([]string, error)
}

// Hint is a validated suggestion.
type Hint struct {
	Word   string       `json:"word"`
	Accept *game.Accept `json:"link"`
}

// Engine filters suggestions through the validator.
type Engine struct {
	sugg Suggester
	v    *game.Validator
}

func NewEngine(s Suggester, v *game.Validator) *Engine {
	return &Engine{sugg: s, v: v}
}

// For returns a legal next move for g. It does not modify g.
func (e *Engine) For(ctx context.Context, g *game.Game) (Hint, error) {
	prev, used := g.LastWord(), g.Used()
	cands, err := e.sugg.Suggest(ctx, prev, g.Target, used)
	if err != nil {
		return Hint{}, err
	}

	seen := make(map[string]bool, len(cands))
	for _, c := range cands {
		c = lexicon.Normalize(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true

		res := e.v.ValidateLink(ctx, prev, c, used)
		if res.OK() {
			return Hint{Word: res.Accepted.Word, Accept: res.Accepted}, nil
		}
		log.Debug().Str("candidate", c).Str("reason", string(res.Rejected.Reason)).Msg("hint candidate rejected")
	}
	return Hint{}, ErrNoHint
}
