package game

// Creativity thresholds. Heat at or above obviousHeat is obvious; heat below creativeHeat is creative.
const (
	obviousHeat  = 0.66
	creativeHeat = 0.40

	// DefaultRarityThreshold is the frequency below which a 3-star rating is clamped to 2.
	DefaultRarityThreshold = 0.01
)

// Heat normalizes a match score against the best score of its query, into (0,1].
// A non-positive top score counts as fully obvious.
func Heat(matchScore, topScore float64) float64 {
	if topScore <= 0 {
		return 1
	}
	h := matchScore / topScore
	if h > 1 {
		return 1
	}
	if h <= 0 {
		// keep the range open at zero: the weakest possible match is still a match
		return 1e-6
	}
	return h
}

// Stars rates a link 1 (obvious), 2 (moderate) or 3 (creative).
// Rare words (frequency below rarity) cannot earn 3 stars.
func Stars(heat, frequency, rarity float64) int {
	var stars int
	switch {
	case heat >= obviousHeat:
		stars = 1
	case heat >= creativeHeat:
		stars = 2
	default:
		stars = 3
	}
	if stars == 3 && frequency < rarity {
		stars = 2
	}
	return stars
}
