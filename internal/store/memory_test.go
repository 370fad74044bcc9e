package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordchain/internal/game"
)

func TestMemorySaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New("cold", "fire", 0)

	require.NoError(t, s.Save(ctx, g))
	got, err := s.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Same(t, g, got)

	require.NoError(t, s.Delete(ctx, g.ID))
	_, err = s.Get(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New("cold", "fire", 0)
	require.NoError(t, s.Save(ctx, g))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, g.ID, func(g *game.Game) error {
				g.Failures++
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, g.Failures)

	boom := errors.New("boom")
	assert.ErrorIs(t, s.Update(ctx, g.ID, func(*game.Game) error { return boom }), boom)
	assert.ErrorIs(t, s.Update(ctx, "missing", func(*game.Game) error { return nil }), ErrNotFound)
}
