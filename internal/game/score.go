package game

import (
	"math"

	"github.com/robalobadob/wordchain/internal/lexicon"
)

// starValue is how much one creativity star takes off the step count.
const starValue = 0.5

// hubWords are generic words that cost a penalty step without blocking the move.
var hubWords = map[string]struct{}{
	"thing": {}, "stuff": {}, "make": {}, "get": {}, "go": {}, "do": {},
	"have": {}, "be": {}, "take": {}, "good": {}, "bad": {}, "big": {},
	"small": {}, "way": {}, "one": {}, "people": {}, "time": {}, "place": {},
	"object": {}, "item": {}, "person": {}, "something": {}, "anything": {},
	"everything": {},
}

// IsHubWord reports whether word is a penalized hub word.
func IsHubWord(word string) bool {
	_, ok := hubWords[lexicon.Normalize(word)]
	return ok
}

// Score is the golf-style result of a chain. Lower Final is better.
type Score struct {
	Steps          int     `json:"steps"`
	EffectiveSteps int     `json:"effectiveSteps"`
	StarBonus      float64 `json:"starBonus"`
	Final          float64 `json:"finalScore"`
}

// ScoreChain aggregates a finished chain's counters into a Score.
func ScoreChain(chainLength, hubPenalties, totalStars int) Score {
	eff := chainLength + hubPenalties
	bonus := float64(totalStars) * starValue
	final := math.Round((float64(eff)-bonus)*10) / 10
	if final < 0 {
		final = 0
	}
	return Score{
		Steps:          chainLength,
		EffectiveSteps: eff,
		StarBonus:      bonus,
		Final:          final,
	}
}

// MostCreativeLink picks the link with the most stars; the lower heat wins ties,
// then the earlier link. ok is false for an empty chain.
func MostCreativeLink(chain []ChainLink) (best ChainLink, ok bool) {
	for i, l := range chain {
		if i == 0 || l.Stars > best.Stars || (l.Stars == best.Stars && l.Heat < best.Heat) {
			best = l
		}
	}
	return best, len(chain) > 0
}
