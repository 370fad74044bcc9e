package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordchain/internal/lexicon"
)

func chainSource() *lexicon.Static {
	return lexicon.NewStatic().
		AddWord("fire", 0.5).AddWord("smoke", 0.3).AddWord("thing", 0.9).AddWord("water", 0.6).
		AddRelated(lexicon.RelTrigger, "cold", "fire", 10).
		AddRelated(lexicon.RelTrigger, "cold", "ice", 100).
		AddRelated(lexicon.RelTrigger, "fire", "smoke", 100).
		AddRelated(lexicon.RelTrigger, "fire", "thing", 50).
		AddRelated(lexicon.RelTrigger, "thing", "water", 100).
		AddRelated(lexicon.RelSynonym, "smoke", "fire", 100)
}

func TestGameWin(t *testing.T) {
	ctx := context.Background()
	v := NewValidator(chainSource(), Options{})
	g := New(" Cold ", "SMOKE", 0)
	assert.Equal(t, "cold", g.Start)
	assert.Equal(t, "smoke", g.Target)
	assert.Equal(t, DefaultMaxLinks, g.MaxLinks)
	assert.NotEmpty(t, g.ID)

	res, err := g.Submit(ctx, v, "fire")
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, 3, res.Accepted.Stars)
	assert.Equal(t, "playing", g.State())
	assert.Equal(t, "fire", g.LastWord())

	res, err = g.Submit(ctx, v, "smoke")
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, "won", g.State())
	assert.Equal(t, []string{"cold", "fire", "smoke"}, g.Used())
	assert.Equal(t, "fire", g.Chain[1].From)

	s := g.Score()
	assert.Equal(t, 2, s.Steps)
	assert.Equal(t, 4, g.TotalStars)
	assert.Equal(t, 0.0, s.Final)

	_, err = g.Submit(ctx, v, "water")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestGameTracksFailuresAndHubs(t *testing.T) {
	ctx := context.Background()
	v := NewValidator(chainSource(), Options{})
	g := New("cold", "water", 0)

	res, err := g.Submit(ctx, v, "cold")
	require.NoError(t, err)
	assert.Equal(t, ReasonSameWord, res.Rejected.Reason)

	_, _ = g.Submit(ctx, v, "fire")
	res, _ = g.Submit(ctx, v, "thing")
	require.True(t, res.OK())
	assert.True(t, res.Accepted.IsHub)

	res, _ = g.Submit(ctx, v, "water")
	require.True(t, res.OK())

	assert.Equal(t, 1, g.Failures)
	assert.Equal(t, 1, g.HubPenalties)
	assert.True(t, g.Won)
	assert.Equal(t, 4, g.Score().EffectiveSteps)
}

func TestGameLinkCap(t *testing.T) {
	ctx := context.Background()
	v := NewValidator(chainSource(), Options{})
	g := New("cold", "water", 1)

	res, err := g.Submit(ctx, v, "fire")
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, "lost", g.State())
}

func TestGameRejectionLeavesChainUntouched(t *testing.T) {
	ctx := context.Background()
	v := NewValidator(chainSource(), Options{})
	g := New("cold", "water", 0)

	_, _ = g.Submit(ctx, v, "fire")
	res, _ := g.Submit(ctx, v, "COLD")
	assert.Equal(t, ReasonAlreadyUsed, res.Rejected.Reason)
	assert.Len(t, g.Chain, 1)
	assert.Equal(t, "fire", g.LastWord())
}

func TestGiveUpAndNewChecked(t *testing.T) {
	g, err := NewChecked("cold", "water", 5)
	require.NoError(t, err)
	g.GiveUp()
	assert.Equal(t, "lost", g.State())

	_, err = NewChecked("cold", " COLD", 5)
	assert.ErrorIs(t, err, ErrInvalidPuzzle)
	_, err = NewChecked("", "water", 5)
	assert.ErrorIs(t, err, ErrInvalidPuzzle)
}

func TestApplyRefusesFinishedGames(t *testing.T) {
	g := New("cold", "ice", 5)
	require.NoError(t, g.Apply(Result{Accepted: &Accept{Word: "Ice", Stars: 1}}))
	assert.Equal(t, "won", g.State())
	assert.Equal(t, "cold", g.Chain[0].From)

	assert.ErrorIs(t, g.Apply(Result{Rejected: &Reject{Reason: ReasonNotAWord}}), ErrFinished)
	assert.Zero(t, g.Failures)
}
