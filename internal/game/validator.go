// internal/game/validator.go
//
// Link validator: decides whether one candidate word may extend a chain.
//
// Order of checks (cheap local checks never pay for a network round trip):
//   1. Normalize previous and candidate (lowercase, trimmed).
//   2. same_word: candidate equals the previous word.
//   3. already_used: candidate appears among the used words (start word included).
//   4. not_a_word: the lexical source does not verify the candidate.
//   5. no_connection: no relation kind links previous → candidate.
//   6. Accept with heat, stars, hub flag and the source's canonical casing.
//
// The validator never mutates chain state; callers append links themselves.

package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordchain/internal/lexicon"
)

// Validator is the sole entry point for judging a move.
type Validator struct {
	src      lexicon.Source
	resolver *Resolver
	rarity   float64
}

// Options tunes a Validator. Zero values select the defaults.
type Options struct {
	MaxResults      int
	Parallel        bool
	// RarityThreshold overrides DefaultRarityThreshold when set. Zero disables the clamp.
	RarityThreshold *float64
}

// NewValidator builds a Validator over src.
func NewValidator(src lexicon.Source, opts Options) *Validator {
	rarity := DefaultRarityThreshold
	if opts.RarityThreshold != nil {
		rarity = *opts.RarityThreshold
	}
	return &Validator{
		src:      src,
		resolver: NewResolver(src, opts.MaxResults, opts.Parallel),
		rarity:   rarity,
	}
}

// ValidateLink judges candidate as the successor of previous given the words already used.
// It always returns a Result; data-source failures surface as rejections.
func (v *Validator) ValidateLink(ctx context.Context, previous, candidate string, used []string) Result {
	prev := lexicon.Normalize(previous)
	cand := lexicon.Normalize(candidate)

	if cand == "" {
		return reject(candidate, ReasonNotAWord, "Please enter a word")
	}
	if cand == prev {
		return reject(candidate, ReasonSameWord, "That's the same word!")
	}
	for _, u := range used {
		if lexicon.Normalize(u) == cand {
			return reject(candidate, ReasonAlreadyUsed, fmt.Sprintf("You've already used %q", cand))
		}
	}

	verified, ok, err := v.src.VerifyWord(ctx, cand)
	if err != nil {
		log.Warn().Err(err).Str("word", cand).Msg("word lookup failed; treating as unknown")
		ok = false
	}
	if !ok {
		return reject(candidate, ReasonNotAWord, fmt.Sprintf("%q is not a valid word", cand))
	}

	m, found := v.resolver.Resolve(ctx, prev, cand)
	if !found {
		return reject(candidate, ReasonNoConnection, fmt.Sprintf("No connection found between %q and %q", prev, cand))
	}

	heat := Heat(m.Score, m.TopScore)
	word := verified.Word
	if word == "" {
		word = cand
	}
	return Result{Accepted: &Accept{
		Word:      word,
		Relation:  m.Kind,
		Label:     m.Kind.Label(),
		Heat:      heat,
		Stars:     Stars(heat, verified.Frequency, v.rarity),
		IsHub:     IsHubWord(cand),
		Frequency: verified.Frequency,
	}}
}

func reject(word string, reason Reason, msg string) Result {
	return Result{Rejected: &Reject{Word: word, Reason: reason, Message: msg}}
}
