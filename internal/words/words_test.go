package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoadsEmbeddedTable(t *testing.T) {
	require.NoError(t, Init())

	all := Puzzles()
	require.NotEmpty(t, all)
	for _, p := range all {
		assert.NotEqual(t, p.Start, p.Target)
		assert.True(t, isWord(p.Start), p.Start)
		assert.True(t, isWord(p.Target), p.Target)
	}

	by, total := Stats()
	assert.Equal(t, len(all), total)
	assert.Positive(t, by["easy"])

	p := RandomPuzzle()
	assert.Contains(t, all, p)
	assert.Equal(t, all[0], At(len(all)))
}

func TestParse(t *testing.T) {
	raw := []byte(`
puzzles:
  - {start: " Cold ", target: FIRE, difficulty: easy}
  - {start: same, target: same}
  - {start: "two words", target: fire}
  - {start: river, target: bank}
`)
	got, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, []Puzzle{
		{Start: "cold", Target: "fire", Difficulty: "easy"},
		{Start: "river", Target: "bank", Difficulty: "medium"},
	}, got)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("puzzles: [oops"))
	assert.Error(t, err)

	_, err = Parse([]byte("puzzles: []"))
	assert.Error(t, err)
}
