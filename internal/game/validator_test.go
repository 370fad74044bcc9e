package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordchain/internal/lexicon"
)

func newTestSource() *lexicon.Static {
	return lexicon.NewStatic().
		AddWord("cold", 0.5).
		AddWord("ice", 0.4).
		AddWord("frigid", 0.02).
		AddWord("gelid", 0.001).
		AddWord("Paris", 0.3).
		AddWord("thing", 0.9).
		AddWord("rocket", 0.2).
		AddRelated(lexicon.RelSynonym, "cold", "chilly", 100).
		AddRelated(lexicon.RelSynonym, "cold", "frigid", 20).
		AddRelated(lexicon.RelSynonym, "cold", "gelid", 10).
		AddRelated(lexicon.RelTrigger, "cold", "ice", 800).
		AddRelated(lexicon.RelTrigger, "cold", "thing", 500).
		AddRelated(lexicon.RelTrigger, "france", "paris", 1000)
}

func TestValidateLinkSameWord(t *testing.T) {
	src := newTestSource()
	v := NewValidator(src, Options{})

	for _, w := range []string{"cold", "COLD", "  Cold  "} {
		res := v.ValidateLink(context.Background(), "cold", w, nil)
		require.False(t, res.OK())
		assert.Equal(t, ReasonSameWord, res.Rejected.Reason)
		assert.Equal(t, w, res.Rejected.Word)
	}
	assert.Zero(t, src.Calls(), "local rejections never reach the source")
}

func TestValidateLinkAlreadyUsed(t *testing.T) {
	src := newTestSource()
	v := NewValidator(src, Options{})
	used := []string{"Start", "cold", "Ice"}

	res := v.ValidateLink(context.Background(), "cold", "ICE", used)
	require.False(t, res.OK())
	assert.Equal(t, ReasonAlreadyUsed, res.Rejected.Reason)

	res = v.ValidateLink(context.Background(), "cold", "start", used)
	require.False(t, res.OK())
	assert.Equal(t, ReasonAlreadyUsed, res.Rejected.Reason, "the start word counts as used")
	assert.Zero(t, src.Calls())
}

func TestValidateLinkNotAWord(t *testing.T) {
	v := NewValidator(newTestSource(), Options{})

	res := v.ValidateLink(context.Background(), "cold", "qwzx", []string{"cold"})
	require.False(t, res.OK())
	assert.Equal(t, ReasonNotAWord, res.Rejected.Reason)

	res = v.ValidateLink(context.Background(), "cold", "   ", []string{"cold"})
	require.False(t, res.OK())
	assert.Equal(t, ReasonNotAWord, res.Rejected.Reason)
}

func TestValidateLinkNoConnection(t *testing.T) {
	v := NewValidator(newTestSource(), Options{})

	res := v.ValidateLink(context.Background(), "Cold", "rocket", []string{"cold"})
	require.False(t, res.OK())
	assert.Equal(t, ReasonNoConnection, res.Rejected.Reason)
	assert.Contains(t, res.Rejected.Message, `"cold"`)
}

func TestValidateLinkAccept(t *testing.T) {
	v := NewValidator(newTestSource(), Options{})

	res := v.ValidateLink(context.Background(), "cold", "ice", []string{"cold"})
	require.True(t, res.OK())
	a := res.Accepted
	assert.Equal(t, "ice", a.Word)
	assert.Equal(t, lexicon.RelTrigger, a.Relation)
	assert.Equal(t, "Association", a.Label)
	assert.Equal(t, 1.0, a.Heat)
	assert.Equal(t, 1, a.Stars)
	assert.False(t, a.IsHub)
	assert.Equal(t, 0.4, a.Frequency)
}

func TestValidateLinkUsesCanonicalCasing(t *testing.T) {
	v := NewValidator(newTestSource(), Options{})

	res := v.ValidateLink(context.Background(), "France", "pARIS", nil)
	require.True(t, res.OK())
	assert.Equal(t, "Paris", res.Accepted.Word)
}

func TestValidateLinkCreativityAndClamp(t *testing.T) {
	v := NewValidator(newTestSource(), Options{})

	// frigid: heat 0.2, common enough for 3 stars.
	res := v.ValidateLink(context.Background(), "cold", "frigid", nil)
	require.True(t, res.OK())
	assert.Equal(t, lexicon.RelSynonym, res.Accepted.Relation)
	assert.InDelta(t, 0.2, res.Accepted.Heat, 1e-12)
	assert.Equal(t, 3, res.Accepted.Stars)

	// gelid: heat 0.1 but rare, clamped to 2.
	res = v.ValidateLink(context.Background(), "cold", "gelid", nil)
	require.True(t, res.OK())
	assert.Equal(t, 2, res.Accepted.Stars)
}

func TestValidateLinkRarityThreshold(t *testing.T) {
	off := 0.0
	res := NewValidator(newTestSource(), Options{RarityThreshold: &off}).
		ValidateLink(context.Background(), "cold", "gelid", nil)
	require.True(t, res.OK())
	assert.Equal(t, 3, res.Accepted.Stars, "zero threshold disables the clamp")

	strict := 0.05
	res = NewValidator(newTestSource(), Options{RarityThreshold: &strict}).
		ValidateLink(context.Background(), "cold", "frigid", nil)
	require.True(t, res.OK())
	assert.Equal(t, 2, res.Accepted.Stars)
}

func TestValidateLinkFlagsHubWords(t *testing.T) {
	v := NewValidator(newTestSource(), Options{})

	res := v.ValidateLink(context.Background(), "cold", "Thing", nil)
	require.True(t, res.OK())
	assert.True(t, res.Accepted.IsHub)
}

func TestValidateLinkSourceFailureDegradesToReject(t *testing.T) {
	src := newTestSource()
	src.Err = errors.New("network down")
	v := NewValidator(src, Options{})

	res := v.ValidateLink(context.Background(), "cold", "ice", nil)
	require.False(t, res.OK())
	assert.Equal(t, ReasonNotAWord, res.Rejected.Reason)

	// Verification succeeds but every relation lookup fails.
	flaky := flakySource{Static: newTestSource(), fail: map[lexicon.RelationKind]bool{}}
	for _, k := range lexicon.Relations {
		flaky.fail[k] = true
	}
	res = NewValidator(flaky, Options{}).ValidateLink(context.Background(), "cold", "ice", nil)
	require.False(t, res.OK())
	assert.Equal(t, ReasonNoConnection, res.Rejected.Reason)
}

func TestValidateLinkIsIdempotent(t *testing.T) {
	v := NewValidator(newTestSource(), Options{Parallel: true})
	ctx := context.Background()
	used := []string{"cold"}

	for _, cand := range []string{"ice", "rocket", "cold", "frigid"} {
		first := v.ValidateLink(ctx, "cold", cand, used)
		second := v.ValidateLink(ctx, "cold", cand, used)
		assert.Equal(t, first, second, "candidate %q", cand)
	}
	assert.Equal(t, []string{"cold"}, used)
}
