// internal/game/resolver.go
//
// Relation resolver: finds the single most obvious relation linking two words.
//
// Algorithm:
//   - Walk lexicon.Relations in priority order.
//   - For each kind, fetch up to MaxResults words related to the source word.
//   - The first kind whose list contains the target (case-insensitive) wins.
//
// A failing lookup counts as an empty list for that kind. That can turn a transient
// outage into a "no connection" rejection, which is accepted behavior.
//
// In parallel mode all kinds are fetched at once; the winner is still the
// highest-priority kind with a match, never the fastest one.

package game

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordchain/internal/lexicon"
)

// DefaultMaxResults bounds every related-words query.
const DefaultMaxResults = 100

// Match is a found relation between two words.
type Match struct {
	Kind     lexicon.RelationKind
	Score    float64 // relevance of the target in the result list
	TopScore float64 // best relevance in the same list
}

// Resolver finds relations through a lexical Source.
type Resolver struct {
	src        lexicon.Source
	maxResults int
	parallel   bool
}

// NewResolver returns a sequential resolver. maxResults <= 0 uses DefaultMaxResults.
func NewResolver(src lexicon.Source, maxResults int, parallel bool) *Resolver {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Resolver{src: src, maxResults: maxResults, parallel: parallel}
}

// Resolve returns the highest-priority relation from source to target.
// Both words are expected to be normalized.
func (r *Resolver) Resolve(ctx context.Context, source, target string) (Match, bool) {
	if r.parallel {
		return r.resolveParallel(ctx, source, target)
	}
	for _, kind := range lexicon.Relations {
		if m, ok := findIn(kind, r.query(ctx, source, kind), target); ok {
			return m, true
		}
	}
	return Match{}, false
}

func (r *Resolver) resolveParallel(ctx context.Context, source, target string) (Match, bool) {
	results := make([][]lexicon.Related, len(lexicon.Relations))
	var g errgroup.Group
	for i, kind := range lexicon.Relations {
		i, kind := i, kind
		g.Go(func() error {
			results[i] = r.query(ctx, source, kind)
			return nil
		})
	}
	_ = g.Wait()

	for i, kind := range lexicon.Relations {
		if m, ok := findIn(kind, results[i], target); ok {
			return m, true
		}
	}
	return Match{}, false
}

// query degrades source failures to an empty list.
func (r *Resolver) query(ctx context.Context, source string, kind lexicon.RelationKind) []lexicon.Related {
	res, err := r.src.QueryRelated(ctx, source, kind, r.maxResults)
	if err != nil {
		log.Warn().Err(err).Str("word", source).Str("relation", string(kind)).Msg("related lookup failed; treating as empty")
		return nil
	}
	return res
}

func findIn(kind lexicon.RelationKind, list []lexicon.Related, target string) (Match, bool) {
	if len(list) == 0 {
		return Match{}, false
	}
	top := list[0].Score
	for _, rel := range list {
		if rel.Score > top {
			top = rel.Score
		}
	}
	for _, rel := range list {
		if lexicon.Normalize(rel.Word) == target {
			return Match{Kind: kind, Score: rel.Score, TopScore: top}, true
		}
	}
	return Match{}, false
}
