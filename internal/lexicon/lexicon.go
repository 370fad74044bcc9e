// internal/lexicon/lexicon.go
//
// Lexical data source contract for the word-chain engine.
// Defines:
//   - RelationKind: the fixed, priority-ordered set of lexical relations.
//   - Source: the two lookups the engine needs (word existence, related words).
//   - Verified / Related: result shapes returned by a Source.
//
// Implementations live alongside this file (Datamuse HTTP client, TTL cache).

package lexicon

import (
	"context"
	"strings"
)

// RelationKind identifies one category of lexical association.
type RelationKind string

const (
	RelSynonym          RelationKind = "synonym"
	RelTrigger          RelationKind = "trigger"
	RelNounForAdjective RelationKind = "noun_for_adjective"
	RelAdjectiveForNoun RelationKind = "adjective_for_noun"
	RelFollows          RelationKind = "follows"
	RelPrecedes         RelationKind = "precedes"
	RelSoundsLike       RelationKind = "sounds_like"
)

// Relations lists every kind in priority order: earlier kinds are the more obvious links.
var Relations = []RelationKind{
	RelSynonym,
	RelTrigger,
	RelNounForAdjective,
	RelAdjectiveForNoun,
	RelFollows,
	RelPrecedes,
	RelSoundsLike,
}

var relationLabels = map[RelationKind]string{
	RelSynonym:          "Synonym",
	RelTrigger:          "Association",
	RelNounForAdjective: "Describes",
	RelAdjectiveForNoun: "Described by",
	RelFollows:          "Often followed by",
	RelPrecedes:         "Often preceded by",
	RelSoundsLike:       "Sounds similar",
}

// Label returns the human-facing name of the relation.
func (k RelationKind) Label() string {
	if l, ok := relationLabels[k]; ok {
		return l
	}
	return string(k)
}

// Valid reports whether k is one of Relations.
func (k RelationKind) Valid() bool {
	_, ok := relationLabels[k]
	return ok
}

// Verified is a dictionary hit for a word.
type Verified struct {
	Word      string  // canonical casing as reported by the source
	Frequency float64 // normalized 0..1, 0 when unknown
}

// Related is one entry of a related-words query, best match first.
type Related struct {
	Word  string
	Score float64
}

// Source answers the two questions the link validator asks.
// Implementations may be slow or fail; callers decide how to degrade.
type Source interface {
	// VerifyWord reports whether word is a recognized dictionary entry.
	VerifyWord(ctx context.Context, word string) (Verified, bool, error)

	// QueryRelated returns up to max words related to word under kind.
	QueryRelated(ctx context.Context, word string, kind RelationKind, max int) ([]Related, error)
}

// Normalize lower-cases and trims a word for comparison.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}
