// internal/game/types.go
//
// Core type definitions for the word-chain engine.
// Defines:
//   - Reason: why a candidate word was rejected.
//   - Accept / Reject / Result: the outcome of one link validation.
//   - ChainLink: an accepted move, as stored in a game's chain.
//   - Game: state for a single in-progress or finished puzzle.

package game

import (
	"time"

	"github.com/robalobadob/wordchain/internal/lexicon"
)

// Reason is a rejection code surfaced to the player.
// Possible values:
//   - "same_word":     candidate equals the previous word.
//   - "already_used":  candidate already appears in the chain (start word included).
//   - "not_a_word":    the lexical source does not recognize the candidate.
//   - "no_connection": no relation links the previous word to the candidate.
type Reason string

const (
	ReasonSameWord     Reason = "same_word"
	ReasonAlreadyUsed  Reason = "already_used"
	ReasonNotAWord     Reason = "not_a_word"
	ReasonNoConnection Reason = "no_connection"
)

// Accept describes a candidate that legally extends the chain.
type Accept struct {
	Word      string               `json:"word"` // canonical casing from the lexical source
	Relation  lexicon.RelationKind `json:"relation"`
	Label     string               `json:"label"`
	Heat      float64              `json:"heat"`
	Stars     int                  `json:"stars"` // 1 obvious … 3 creative
	IsHub     bool                 `json:"isHub"`
	Frequency float64              `json:"frequency"`
}

// Reject describes a refused candidate. Every reason is benign and retryable.
type Reject struct {
	Word    string `json:"word"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

// Result holds exactly one of Accepted or Rejected.
type Result struct {
	Accepted *Accept `json:"accepted,omitempty"`
	Rejected *Reject `json:"rejected,omitempty"`
}

// OK reports whether the candidate was accepted.
func (r Result) OK() bool { return r.Accepted != nil }

// ChainLink is one accepted move.
type ChainLink struct {
	Word     string               `json:"word"`
	From     string               `json:"from"`
	Relation lexicon.RelationKind `json:"relation"`
	Label    string               `json:"label"`
	Heat     float64              `json:"heat"`
	Stars    int                  `json:"stars"`
	IsHub    bool                 `json:"isHub"`
}

// Game holds the state of a single word-chain puzzle.
type Game struct {
	ID           string      // Unique game identifier (ULID).
	Start        string      // Start word (lowercase).
	Target       string      // Target word (lowercase).
	Chain        []ChainLink // Accepted links, in order.
	HubPenalties int         // Number of accepted hub words.
	TotalStars   int         // Sum of creativity stars over the chain.
	Failures     int         // Rejected submissions.
	MaxLinks     int         // Chain length cap; reaching it without the target loses.
	StartedAt    time.Time
	Finished     bool // True once the game is over (won or lost).
	Won          bool // True if the target word was reached.
}
