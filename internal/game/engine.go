// internal/game/engine.go
//
// Game session for a single word-chain puzzle.
// Responsibilities:
//   - Create new games from a start/target pair.
//   - Run submitted words through the Validator and apply accepted links.
//   - Track penalties, stars and failures, and the playing → won/lost transitions.
//
// Notes:
//   - The Validator is stateless; this type is the "caller" that owns the chain.
//   - Accepting the target word wins; reaching MaxLinks without it loses.
//   - newID() is a ULID so game rows sort by creation time.
package game

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/robalobadob/wordchain/internal/lexicon"
)

// DefaultMaxLinks caps a chain's length.
const DefaultMaxLinks = 20

// ErrFinished is returned when submitting to a finished game.
var ErrFinished = errors.New("game finished")

// ErrInvalidPuzzle is returned by NewChecked for an unusable start/target pair.
var ErrInvalidPuzzle = errors.New("start and target must be distinct non-empty words")

// New constructs a game from start to target. maxLinks <= 0 uses DefaultMaxLinks.
func New(start, target string, maxLinks int) *Game {
	if maxLinks <= 0 {
		maxLinks = DefaultMaxLinks
	}
	return &Game{
		ID:        newID(),
		Start:     lexicon.Normalize(start),
		Target:    lexicon.Normalize(target),
		Chain:     []ChainLink{},
		MaxLinks:  maxLinks,
		StartedAt: time.Now().UTC(),
	}
}

// NewChecked is New with validation of the start/target pair.
func NewChecked(start, target string, maxLinks int) (*Game, error) {
	s, t := lexicon.Normalize(start), lexicon.Normalize(target)
	if s == "" || t == "" || s == t {
		return nil, ErrInvalidPuzzle
	}
	return New(s, t, maxLinks), nil
}

// Submit validates word against the current end of the chain and applies the result.
func (g *Game) Submit(ctx context.Context, v *Validator, word string) (Result, error) {
	if g.Finished {
		return Result{}, ErrFinished
	}
	res := v.ValidateLink(ctx, g.LastWord(), word, g.Used())
	return res, g.Apply(res)
}

// Apply records a result that was validated against LastWord and Used.
// Callers that validate outside the game's owner (the TUI) use it directly.
func (g *Game) Apply(res Result) error {
	if g.Finished {
		return ErrFinished
	}
	if !res.OK() {
		g.Failures++
		return nil
	}

	a := res.Accepted
	g.Chain = append(g.Chain, ChainLink{
		Word:     a.Word,
		From:     g.LastWord(),
		Relation: a.Relation,
		Label:    a.Label,
		Heat:     a.Heat,
		Stars:    a.Stars,
		IsHub:    a.IsHub,
	})
	g.TotalStars += a.Stars
	if a.IsHub {
		g.HubPenalties++
	}

	if lexicon.Normalize(a.Word) == g.Target {
		g.Finished, g.Won = true, true
	} else if len(g.Chain) >= g.MaxLinks {
		g.Finished = true
	}
	return nil
}

// GiveUp ends the game as a loss. It is a no-op on finished games.
func (g *Game) GiveUp() {
	g.Finished = true
}

// LastWord is the word the next link must connect to.
func (g *Game) LastWord() string {
	if n := len(g.Chain); n > 0 {
		return lexicon.Normalize(g.Chain[n-1].Word)
	}
	return g.Start
}

// Used lists the start word followed by every chain word (lowercase).
func (g *Game) Used() []string {
	out := make([]string, 0, len(g.Chain)+1)
	out = append(out, g.Start)
	for _, l := range g.Chain {
		out = append(out, lexicon.Normalize(l.Word))
	}
	return out
}

// Score reports the chain's current golf score.
func (g *Game) Score() Score {
	return ScoreChain(len(g.Chain), g.HubPenalties, g.TotalStars)
}

// State reports a coarse string representation of the current game state.
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// newID returns a ULID string.
func newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
