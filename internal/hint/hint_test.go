package hint

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordchain/internal/game"
	"github.com/robalobadob/wordchain/internal/lexicon"
)

type fixedSuggester struct {
	words []string
	err   error
	calls int
}

func (f *fixedSuggester) Suggest(ctx context.Context, from, target string, used []string) ([]string, error) {
	f.calls++
	return f.words, f.err
}

func hintSource() *lexicon.Static {
	return lexicon.NewStatic().
		AddWord("ice", 0.4).AddWord("Snow", 0.3).
		AddRelated(lexicon.RelTrigger, "cold", "ice", 100).
		AddRelated(lexicon.RelTrigger, "cold", "snow", 80)
}

func TestEngineReturnsFirstLegalCandidate(t *testing.T) {
	v := game.NewValidator(hintSource(), game.Options{})
	g := game.New("cold", "fire", 0)
	s := &fixedSuggester{words: []string{"cold", "zzzq", "ice", "snow"}}

	h, err := NewEngine(s, v).For(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, "ice", h.Word)
	assert.Equal(t, lexicon.RelTrigger, h.Accept.Relation)
	assert.Empty(t, g.Chain, "hints never modify the game")
}

func TestEngineSkipsUsedWords(t *testing.T) {
	ctx := context.Background()
	v := game.NewValidator(hintSource(), game.Options{})
	g := game.New("cold", "fire", 0)
	g.Chain = append(g.Chain, game.ChainLink{Word: "ice"})
	// from "ice" nothing connects, so every candidate is rejected
	s := &fixedSuggester{words: []string{"snow", "Snow"}}

	_, err := NewEngine(s, v).For(ctx, g)
	assert.ErrorIs(t, err, ErrNoHint)
}

func TestEngineSuggesterError(t *testing.T) {
	boom := errors.New("quota")
	v := game.NewValidator(hintSource(), game.Options{})
	_, err := NewEngine(&fixedSuggester{err: boom}, v).For(context.Background(), game.New("cold", "fire", 0))
	assert.ErrorIs(t, err, boom)
}

func TestParseCandidates(t *testing.T) {
	got, err := parseCandidates("```yaml\ncandidates:\n  - ice\n  - snow\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"ice", "snow"}, got)

	_, err = parseCandidates("candidates: [unterminated")
	assert.Error(t, err)
}

func TestRenderPrompt(t *testing.T) {
	p, err := renderPrompt("cold", "fire", []string{"start", "cold"}, 5)
	require.NoError(t, err)
	assert.Contains(t, p, "Current word: cold")
	assert.Contains(t, p, "Target word: fire")
	assert.Contains(t, p, "start, cold")
	assert.Contains(t, p, "up to 5")
}
